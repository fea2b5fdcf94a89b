package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Definition errors. These signal a model misconfiguration, are always
// surfaced immediately, and never appear inside a validation report.
var (
	ErrUnresolvedTarget = errors.New("association target cannot be resolved")
	ErrInvalidKind      = errors.New("invalid association kind")
	ErrDuplicateModel   = errors.New("model already registered")
	ErrModelNotFound    = errors.New("model not found")
)

// Well-known property error kinds.
const (
	KindRequired = "attribute.required"
	KindType     = "attribute.type"
	KindEnum     = "attribute.enum"
	KindLength   = "attribute.length"
	KindUnknown  = "unknown"
)

// PropertyError is a single per-attribute validation failure, tagged with a
// machine-readable kind. Errors raised by type validators or custom rules
// that are not already a *PropertyError are coerced into one with kind
// "unknown", preserving the message.
type PropertyError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewPropertyError creates a property error with the given kind and message.
func NewPropertyError(kind, message string) *PropertyError {
	return &PropertyError{Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Report maps attribute names to their ordered validation failures.
// An empty report means the instance is valid.
type Report map[string][]PropertyError

// Add appends errors for the given attribute. Appending rather than
// replacing keeps earlier entries when the same key is validated more
// than once, as in layered validation flows.
func (r Report) Add(key string, errs ...PropertyError) {
	if len(errs) == 0 {
		return
	}
	r[key] = append(r[key], errs...)
}

// Keys returns the attribute names present in the report, sorted.
func (r Report) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError carries the owning model name and the full per-attribute
// report. It is raised by Validate after every attribute has been checked,
// never partially, and propagated unchanged through Deserialize.
type ValidationError struct {
	Model  string `json:"model"`
	Report Report `json:"report"`
}

// NewValidationError creates a validation error for the named model.
func NewValidationError(model string, report Report) *ValidationError {
	return &ValidationError{Model: model, Report: report}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	keys := e.Report.Keys()
	return fmt.Sprintf("%s is invalid: %s", e.Model, strings.Join(keys, ", "))
}
