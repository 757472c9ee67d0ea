// Package driving provides interfaces for application entry points
// (primary/inbound ports). The REST API, CLI and TUI depend on these
// interfaces; internal/core/services implements them.
package driving
