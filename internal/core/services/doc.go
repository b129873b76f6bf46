// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion pipeline is split into small stages, each a service of its
// own: Guard checks whether the target store is already populated, Lister
// enumerates candidate paths, Fetcher downloads bodies under a concurrency
// ceiling and Uploader pushes parsed documents to the store. IngestService
// wires the stages together and produces a RunReport.
//
// Services are pure Go with no CGO or external dependencies.
package services
