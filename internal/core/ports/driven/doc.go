// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceRepository: tree listing and raw content (GitHub connector)
//   - ContentStore: store status and upload-and-poll (Mixedbread, or memory for dry runs)
//   - ProgressReporter: console progress (CLI)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PipelineMetrics: Prometheus telemetry. Without it nothing is recorded.
//   - StoreSearcher: only used by the search command.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
