package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

const (
	// DefaultHost is the canonical public documentation host.
	DefaultHost = "https://nextjs.org"

	// DefaultStripPrefix is removed from repository paths before URL derivation.
	DefaultStripPrefix = "docs/"
)

var (
	// orderingPrefix matches numeric ordering prefixes like "02-".
	orderingPrefix = regexp.MustCompile(`^\d+-`)

	// markdownExt matches a trailing markdown extension.
	markdownExt = regexp.MustCompile(`\.(md|mdx)$`)
)

// Normaliser turns fetched markdown into parsed documents.
// It is stateless and safe for concurrent use.
type Normaliser struct {
	host        string
	stripPrefix string
}

// New creates a markdown normaliser producing URLs on host.
// stripPrefix is removed from the start of every path before the URL is built.
func New(host, stripPrefix string) *Normaliser {
	if host == "" {
		host = DefaultHost
	}
	return &Normaliser{
		host:        strings.TrimSuffix(host, "/"),
		stripPrefix: stripPrefix,
	}
}

// Parse splits front matter from the body and derives the source URL.
// It never fails: malformed front matter yields an empty mapping.
func (n *Normaliser) Parse(doc domain.FetchedDocument) domain.ParsedDocument {
	fm, body := SplitFrontMatter(doc.RawContent)
	return domain.ParsedDocument{
		Path:        doc.Path,
		RawContent:  doc.RawContent,
		Body:        body,
		FrontMatter: fm,
		SourceURL:   n.SourceURL(doc.Path),
	}
}

// SourceURL derives the public URL for a repository path.
//
//	docs/01-app/02-building/01-defining-routes.mdx -> https://nextjs.org/app/building/defining-routes
func (n *Normaliser) SourceURL(path string) string {
	urlPath := strings.TrimPrefix(path, n.stripPrefix)

	segments := strings.Split(urlPath, "/")
	for i, segment := range segments {
		segments[i] = orderingPrefix.ReplaceAllString(segment, "")
	}
	urlPath = strings.Join(segments, "/")
	urlPath = markdownExt.ReplaceAllString(urlPath, "")

	return n.host + "/" + urlPath
}

// SplitFrontMatter separates a leading front matter block from the body.
// "---" fences hold YAML, "+++" fences hold TOML. Without a complete block
// the whole input is the body.
func SplitFrontMatter(raw string) (map[string]any, string) {
	content := strings.TrimPrefix(raw, "\ufeff")

	var unmarshal func([]byte, any) error
	var fence string
	switch {
	case isFenceLine(firstLine(content), "---"):
		fence, unmarshal = "---", yaml.Unmarshal
	case isFenceLine(firstLine(content), "+++"):
		fence, unmarshal = "+++", toml.Unmarshal
	default:
		return map[string]any{}, raw
	}

	rest := content[len(firstLine(content)):]
	rest = strings.TrimPrefix(strings.TrimPrefix(rest, "\r"), "\n")

	var block strings.Builder
	for rest != "" {
		line := firstLine(rest)
		rest = rest[len(line):]
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, "\r"), "\n")

		if isFenceLine(line, fence) {
			return decodeMapping(block.String(), unmarshal), rest
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}

	// Unterminated block: not front matter.
	return map[string]any{}, raw
}

// decodeMapping parses src into a map, returning an empty map on any error.
func decodeMapping(src string, unmarshal func([]byte, any) error) map[string]any {
	fm := map[string]any{}
	if strings.TrimSpace(src) == "" {
		return fm
	}
	if err := unmarshal([]byte(src), &fm); err != nil || fm == nil {
		return map[string]any{}
	}
	for k, v := range fm {
		fm[k] = stringKeys(v)
	}
	return fm
}

// stringKeys rewrites nested maps with non-string keys (YAML allows
// `14: foo`) as map[string]any so metadata stays JSON-encodable.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	default:
		return v
	}
}

// firstLine returns s up to, not including, the first '\n' (and any '\r').
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r")
	}
	return s
}

func isFenceLine(line, fence string) bool {
	return strings.TrimRight(line, " \t") == fence
}
