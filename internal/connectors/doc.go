// Package connectors groups the source repository implementations.
// Each connector knows how to enumerate a repository tree and download raw
// file bodies from one hosting provider (currently GitHub only).
//
// Connectors implement driven.SourceRepository and are constructed in
// cmd/docsync from the loaded configuration.
package connectors
