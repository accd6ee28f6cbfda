// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DatasetStore: Remote search-store dataset management and bulk chunk upload
//   - MarkdownExtractor: Turns one documentation file into chunk records
//   - SpecExtractor: Turns one API specification into chunk records
//   - ContentResolver: Lists the documentation paths to process
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunJournal: Local run history. Without it, runs are simply not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or resolver package
package driven
