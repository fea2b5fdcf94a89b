// Package schema defines the descriptor tables that drive the modelsafe
// engine: attribute and association descriptors, lazy references, custom
// validation rules, the model registry, and standard error types.
// See docs/ARCHITECTURE.md § Descriptor Tables.
package schema
