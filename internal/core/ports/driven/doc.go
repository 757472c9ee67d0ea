// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and LLM providers, the vector
// store, document loaders and local sinks. Services depend on these
// interfaces only; concrete adapters live under internal/adapters/driven.
package driven
