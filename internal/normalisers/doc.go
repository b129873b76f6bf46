// Package normalisers holds content parsers that turn fetched documents into
// upload-ready form. The markdown subpackage splits front matter from the
// body and derives each document's public URL.
package normalisers
