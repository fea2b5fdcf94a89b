package modelsafe

import (
	"errors"

	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// requiredMessage is the message recorded for a missing required attribute.
const requiredMessage = "Value is required"

// ValidateOptions controls Validate.
type ValidateOptions struct {
	// Required enables the missing-value check for non-optional attributes.
	Required bool
}

// DefaultValidateOptions returns the standard validation options.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{Required: true}
}

// Validate checks every registered attribute of the instance and returns a
// *schema.ValidationError carrying the full per-attribute report, or nil if
// the instance is valid. All attributes and all rules run before anything is
// raised; a single call reports every failure at once. A nil opts means
// DefaultValidateOptions.
//
// Per attribute: a nil value on an optional attribute skips every check. A
// nil value on a required attribute records an "attribute.required" error
// (suppressed when Required is disabled) and in both cases still falls
// through to the type and custom checks, substituting the attribute's
// default (lazy defaults resolved) for the type check so a field without a
// runtime value is checked against the shape its default will take. Errors
// thrown by type validators or custom rules that are not
// *schema.PropertyError are coerced to kind "unknown". Custom rules run
// independently; one failure never stops the rest.
func Validate(in *Instance, opts *ValidateOptions) error {
	if opts == nil {
		o := DefaultValidateOptions()
		opts = &o
	}

	report := make(schema.Report)
	for key, a := range in.model.Attributes {
		value := in.fields[key]

		var errs []schema.PropertyError
		if value == nil {
			if a.Optional {
				continue
			}
			if opts.Required {
				errs = append(errs, schema.PropertyError{
					Kind:    schema.KindRequired,
					Message: requiredMessage,
				})
			}
		}

		if a.Type != nil {
			checked := value
			if checked == nil && a.Default != nil {
				checked = resolveDefault(a.Default)
			}
			if err := a.Type.Validate(key, checked); err != nil {
				errs = append(errs, coerceError(err))
			}
		}

		for _, rule := range in.model.Rules(key) {
			if rule.Check == nil {
				continue
			}
			if err := rule.Check(key, value, rule.Options); err != nil {
				errs = append(errs, coerceError(err))
			}
		}

		report.Add(key, errs...)
	}

	if len(report) > 0 {
		return schema.NewValidationError(in.model.Name, report)
	}
	return nil
}

// coerceError converts any validator or rule failure into a PropertyError,
// preserving the message but collapsing unknown error types to kind "unknown".
func coerceError(err error) schema.PropertyError {
	var pe *schema.PropertyError
	if errors.As(err, &pe) {
		return *pe
	}
	return schema.PropertyError{Kind: schema.KindUnknown, Message: err.Error()}
}
