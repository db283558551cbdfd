// Package driving provides interfaces for user-facing adapters
// (primary/inbound ports). The CLI consumes these; the core services
// implement them.
package driving
