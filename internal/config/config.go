// Package config loads docsync settings.
//
// Sources are applied in order, later wins: built-in defaults, the optional
// TOML file passed with --config, then the process environment. A .env file
// in the working directory is loaded into the environment first; it never
// overrides variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// apiKeyPrefix is the prefix of every Mixedbread API key.
const apiKeyPrefix = "mxb_"

// dryRunStoreID names the in-memory store when no store is configured.
const dryRunStoreID = "dry-run"

// Config holds all runtime settings. Fields without a default tag keep
// their current value when the variable is unset, so file values survive.
type Config struct {
	// Credentials come from the environment only.
	APIKey      string `envconfig:"MXBAI_API_KEY"`
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	StoreID       string `envconfig:"MXBAI_STORE_ID"`
	StoreBaseURL  string `envconfig:"MXBAI_BASE_URL"`
	GitHubBaseURL string `envconfig:"GITHUB_BASE_URL"`

	RepoOwner  string   `envconfig:"DOCSYNC_REPO_OWNER"`
	RepoName   string   `envconfig:"DOCSYNC_REPO_NAME"`
	RepoBranch string   `envconfig:"DOCSYNC_REPO_BRANCH"`
	PathPrefix string   `envconfig:"DOCSYNC_PATH_PREFIX"`
	Extensions []string `envconfig:"DOCSYNC_EXTENSIONS"`

	SourceURLHost        string `envconfig:"DOCSYNC_SOURCE_URL_HOST"`
	SourceURLStripPrefix string `envconfig:"DOCSYNC_SOURCE_URL_STRIP_PREFIX"`

	FetchConcurrency  int           `envconfig:"DOCSYNC_FETCH_CONCURRENCY"`
	UploadConcurrency int           `envconfig:"DOCSYNC_UPLOAD_CONCURRENCY"`
	HTTPTimeout       time.Duration `envconfig:"DOCSYNC_HTTP_TIMEOUT"`
	PollInterval      time.Duration `envconfig:"DOCSYNC_POLL_INTERVAL"`
	PollTimeout       time.Duration `envconfig:"DOCSYNC_POLL_TIMEOUT"`
	GitHubRPS         float64       `envconfig:"DOCSYNC_GITHUB_RPS"`

	PushgatewayURL string `envconfig:"DOCSYNC_PUSHGATEWAY_URL"`

	// DryRun swaps the content store for an in-memory one. Set by the CLI.
	DryRun bool `ignored:"true"`
}

// fileConfig is the TOML file layout. Credentials are not accepted here.
type fileConfig struct {
	StoreID              string   `toml:"store_id"`
	StoreBaseURL         string   `toml:"store_base_url"`
	GitHubBaseURL        string   `toml:"github_base_url"`
	RepoOwner            string   `toml:"repo_owner"`
	RepoName             string   `toml:"repo_name"`
	RepoBranch           string   `toml:"repo_branch"`
	PathPrefix           *string  `toml:"path_prefix"`
	Extensions           []string `toml:"extensions"`
	SourceURLHost        string   `toml:"source_url_host"`
	SourceURLStripPrefix *string  `toml:"source_url_strip_prefix"`
	FetchConcurrency     int      `toml:"fetch_concurrency"`
	UploadConcurrency    int      `toml:"upload_concurrency"`
	HTTPTimeout          string   `toml:"http_timeout"`
	PollInterval         string   `toml:"poll_interval"`
	PollTimeout          string   `toml:"poll_timeout"`
	GitHubRPS            *float64 `toml:"github_requests_per_second"`
	PushgatewayURL       string   `toml:"pushgateway_url"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		StoreBaseURL:         "https://api.mixedbread.com",
		RepoOwner:            "vercel",
		RepoName:             "next.js",
		RepoBranch:           "canary",
		PathPrefix:           "docs/",
		Extensions:           []string{".md", ".mdx"},
		SourceURLHost:        "https://nextjs.org",
		SourceURLStripPrefix: "docs/",
		FetchConcurrency:     30,
		UploadConcurrency:    100,
		HTTPTimeout:          30 * time.Second,
		PollInterval:         time.Second,
		PollTimeout:          5 * time.Minute,
		GitHubRPS:            10,
	}
}

// Load reads configuration from .env, the optional TOML file at path and
// the environment. It does not validate; call Validate once flags are applied.
func Load(path string) (*Config, error) {
	return load(path, DefaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, envFile, err)
		}
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return cfg, nil
}

// mergeFile overlays the non-empty values of a TOML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrConfiguration, path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrConfiguration, path, err)
	}

	setString(&c.StoreID, fc.StoreID)
	setString(&c.StoreBaseURL, fc.StoreBaseURL)
	setString(&c.GitHubBaseURL, fc.GitHubBaseURL)
	setString(&c.RepoOwner, fc.RepoOwner)
	setString(&c.RepoName, fc.RepoName)
	setString(&c.RepoBranch, fc.RepoBranch)
	setString(&c.SourceURLHost, fc.SourceURLHost)
	setString(&c.PushgatewayURL, fc.PushgatewayURL)
	if fc.PathPrefix != nil {
		c.PathPrefix = *fc.PathPrefix
	}
	if fc.SourceURLStripPrefix != nil {
		c.SourceURLStripPrefix = *fc.SourceURLStripPrefix
	}
	if len(fc.Extensions) > 0 {
		c.Extensions = fc.Extensions
	}
	if fc.FetchConcurrency != 0 {
		c.FetchConcurrency = fc.FetchConcurrency
	}
	if fc.UploadConcurrency != 0 {
		c.UploadConcurrency = fc.UploadConcurrency
	}
	if fc.GitHubRPS != nil {
		c.GitHubRPS = *fc.GitHubRPS
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"http_timeout", fc.HTTPTimeout, &c.HTTPTimeout},
		{"poll_interval", fc.PollInterval, &c.PollInterval},
		{"poll_timeout", fc.PollTimeout, &c.PollTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%w: %s: invalid %s %q", domain.ErrConfiguration, path, d.key, d.raw)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks everything an ingestion run needs. Errors wrap
// domain.ErrConfiguration and name the offending variable.
//
//nolint:gocyclo // Flat list of independent checks
func (c *Config) Validate() error {
	if c.DryRun {
		if c.StoreID == "" {
			c.StoreID = dryRunStoreID
		}
	} else if err := c.ValidateStore(); err != nil {
		return err
	}

	if c.GitHubToken == "" {
		return missing("GITHUB_TOKEN")
	}
	if c.GitHubBaseURL != "" {
		if err := checkURL("GITHUB_BASE_URL", c.GitHubBaseURL); err != nil {
			return err
		}
	}
	if c.RepoOwner == "" {
		return missing("DOCSYNC_REPO_OWNER")
	}
	if c.RepoName == "" {
		return missing("DOCSYNC_REPO_NAME")
	}
	if c.RepoBranch == "" {
		return missing("DOCSYNC_REPO_BRANCH")
	}
	if len(c.Extensions) == 0 {
		return missing("DOCSYNC_EXTENSIONS")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return invalid("DOCSYNC_EXTENSIONS", fmt.Sprintf("%q must start with a dot", ext))
		}
	}
	if err := checkURL("DOCSYNC_SOURCE_URL_HOST", c.SourceURLHost); err != nil {
		return err
	}
	if c.FetchConcurrency < 1 {
		return invalid("DOCSYNC_FETCH_CONCURRENCY", "must be at least 1")
	}
	if c.UploadConcurrency < 1 {
		return invalid("DOCSYNC_UPLOAD_CONCURRENCY", "must be at least 1")
	}
	if c.HTTPTimeout <= 0 {
		return invalid("DOCSYNC_HTTP_TIMEOUT", "must be positive")
	}
	if c.PollInterval <= 0 {
		return invalid("DOCSYNC_POLL_INTERVAL", "must be positive")
	}
	if c.PollTimeout < c.PollInterval {
		return invalid("DOCSYNC_POLL_TIMEOUT", "must not be shorter than the poll interval")
	}
	if math.IsNaN(c.GitHubRPS) || math.IsInf(c.GitHubRPS, 0) {
		return invalid("DOCSYNC_GITHUB_RPS", "must be a finite number")
	}
	if c.PushgatewayURL != "" {
		if err := checkURL("DOCSYNC_PUSHGATEWAY_URL", c.PushgatewayURL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStore checks the content store settings only.
// The search command needs nothing else.
func (c *Config) ValidateStore() error {
	if c.APIKey == "" {
		return missing("MXBAI_API_KEY")
	}
	if !strings.HasPrefix(c.APIKey, apiKeyPrefix) {
		return invalid("MXBAI_API_KEY", "must start with "+apiKeyPrefix)
	}
	if c.StoreID == "" {
		return missing("MXBAI_STORE_ID")
	}
	return checkURL("MXBAI_BASE_URL", c.StoreBaseURL)
}

// RepoRef returns the configured source revision.
func (c *Config) RepoRef() domain.RepoRef {
	return domain.RepoRef{Owner: c.RepoOwner, Repo: c.RepoName, Branch: c.RepoBranch}
}

// Filter returns the configured candidate filter.
func (c *Config) Filter() domain.SourceFilter {
	return domain.SourceFilter{PathPrefix: c.PathPrefix, Extensions: c.Extensions}
}

func missing(name string) error {
	return fmt.Errorf("%w: %s is required", domain.ErrConfiguration, name)
}

func invalid(name, reason string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrConfiguration, name, reason)
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(name, fmt.Sprintf("is not an absolute URL: %q", raw))
	}
	return nil
}
