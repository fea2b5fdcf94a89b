// Package modelsafe implements the model engine: construction with
// defaults, validation with per-attribute reports, and recursive, depth-
// bounded serialization and deserialization of instance graphs described
// by pkg/schema descriptor tables.
// See docs/ARCHITECTURE.md § Engine.
package modelsafe
