package modelsafe

import (
	"encoding/json"

	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// Instance is a mutable model instance: an explicit field store keyed by
// attribute (and, once populated, association) names, bound to the
// descriptor table of its runtime type. The binding makes the facade
// methods dispatch on the most-derived type without reflection.
type Instance struct {
	model  *schema.Model
	fields map[string]any
}

// ConstructOptions controls New.
type ConstructOptions struct {
	// Defaults applies declared default values before merging caller data.
	Defaults bool
}

// DefaultConstructOptions returns the standard construction options.
func DefaultConstructOptions() ConstructOptions {
	return ConstructOptions{Defaults: true}
}

// New creates an instance of the given model. With Defaults enabled, every
// attribute with a declared default is set first; lazy defaults are invoked
// fresh per construction and concrete container defaults are cloned, so no
// two instances ever share a mutable default object. Caller data is then
// deep-merged on top, so caller values win and nested objects merge
// recursively rather than being replaced wholesale. No validation runs here.
// A nil opts means DefaultConstructOptions.
func New(model *schema.Model, data map[string]any, opts *ConstructOptions) *Instance {
	if opts == nil {
		o := DefaultConstructOptions()
		opts = &o
	}

	in := &Instance{model: model, fields: make(map[string]any, len(model.Attributes))}
	if opts.Defaults {
		for key, a := range model.Attributes {
			if a.Default == nil {
				continue
			}
			in.fields[key] = resolveDefault(a.Default)
		}
	}
	mergeInto(in.fields, data)
	return in
}

// Of creates an instance from a type that describes its own descriptor table.
func Of(d schema.Describer, data map[string]any, opts *ConstructOptions) *Instance {
	return New(d.Describe(), data, opts)
}

// Model returns the descriptor table this instance is bound to.
func (in *Instance) Model() *schema.Model {
	return in.model
}

// Get returns the current value of the named field, or nil if unset.
func (in *Instance) Get(key string) any {
	return in.fields[key]
}

// Has reports whether the named field is set, even to nil.
func (in *Instance) Has(key string) bool {
	_, ok := in.fields[key]
	return ok
}

// Set assigns the named field. Association fields hold *Instance for
// one-kind associations and []*Instance for many-kind associations.
func (in *Instance) Set(key string, value any) {
	in.fields[key] = value
}

// Fields returns a copy of the field store. Container values are cloned;
// nested instances are shared by reference.
func (in *Instance) Fields() map[string]any {
	return cloneMap(in.fields)
}

// Serialize projects the instance to a plain key/value structure using this
// instance's own model. A nil opts means DefaultSerializeOptions.
func (in *Instance) Serialize(opts *SerializeOptions) (map[string]any, error) {
	return Serialize(in, opts)
}

// Validate runs the validation engine against this instance's own model.
// A nil opts means DefaultValidateOptions.
func (in *Instance) Validate(opts *ValidateOptions) error {
	return Validate(in, opts)
}

// MarshalJSON implements json.Marshaler via Serialize with default options.
func (in *Instance) MarshalJSON() ([]byte, error) {
	m, err := Serialize(in, nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
