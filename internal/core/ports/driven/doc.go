// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the document store, the embedding and
// completion services, and the prompt store.
package driven
