// Package domain contains the core business types for DocVault:
// collections, chunks, embedding vectors, conversations, settings,
// and the sentinel errors shared across layers.
//
// The domain layer has no dependencies on adapters or external
// services; everything here is plain data and pure functions.
package domain
