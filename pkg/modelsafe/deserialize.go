package modelsafe

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// ErrInvalidData reports input that cannot be normalized to a plain
// key/value structure.
var ErrInvalidData = errors.New("data cannot be normalized to a plain object")

// dateLayouts are the textual forms accepted for date-typed attributes,
// tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DeserializeOptions controls Deserialize.
type DeserializeOptions struct {
	// Validate runs the validation engine on the constructed instance.
	Validate bool

	// Associations enables reconstruction of association fields.
	Associations bool

	// Depth is the number of association levels still permitted, with the
	// same decrement semantics as SerializeOptions.Depth.
	Depth int
}

// DefaultDeserializeOptions returns the standard deserialization options.
func DefaultDeserializeOptions() DeserializeOptions {
	return DeserializeOptions{Validate: true, Associations: true, Depth: 1}
}

// Deserialize constructs a model instance from untyped data. The input is
// normalized to a plain structure (cloned when already plain, so caller data
// is never mutated; coerced through JSON for foreign shapes), restricted to
// registered attribute keys, and constructed without defaults so the result
// reflects exactly what was provided. Textual values of date-typed
// attributes are parsed into time values.
//
// With associations enabled, every association key present and non-nil in
// the source is reconstructed against its resolved target type: many-kind
// values deserialize element-wise with depth-1, concurrently and
// order-preserving; one-kind values deserialize as a single nested instance
// with depth-1. A many-kind source value that is not a sequence yields an
// empty slice. Once the depth falls below zero the association key is left
// unset even if present in the source. An unresolvable target fails
// immediately.
//
// With Validate enabled the fully constructed instance is validated with
// default options and any *schema.ValidationError propagates unchanged;
// nested association deserialization recurses through this same contract, so
// an invalid nested instance fails the whole call with no partial result.
// A nil opts means DefaultDeserializeOptions.
func Deserialize(model *schema.Model, data any, opts *DeserializeOptions) (*Instance, error) {
	if opts == nil {
		o := DefaultDeserializeOptions()
		opts = &o
	}

	plain, err := normalize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize %s: %w", model.Name, err)
	}

	attrs := make(map[string]any, len(model.Attributes))
	for key := range model.Attributes {
		if v, ok := plain[key]; ok {
			attrs[key] = v
		}
	}
	in := New(model, attrs, &ConstructOptions{Defaults: false})
	coerceDates(in)

	if opts.Associations {
		if err := deserializeAssociations(in, plain, opts); err != nil {
			return nil, err
		}
	}

	if opts.Validate {
		if err := Validate(in, nil); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// deserializeAssociations reconstructs association fields from the source
// data onto the instance. Sibling associations and sibling elements within
// a many-kind value run concurrently, each owning its result slot.
func deserializeAssociations(in *Instance, plain map[string]any, opts *DeserializeOptions) error {
	childOpts := DeserializeOptions{
		Validate:     opts.Validate,
		Associations: opts.Associations,
		Depth:        opts.Depth - 1,
	}

	type slot struct {
		key   string
		value any
	}
	var (
		g     errgroup.Group
		slots []*slot
	)
	for key, assoc := range in.model.Associations {
		raw, ok := plain[key]
		if !ok || raw == nil {
			continue
		}
		target, err := assoc.Target.Resolve()
		if err != nil {
			return fmt.Errorf("deserialize %s.%s: %w", in.model.Name, key, err)
		}
		if opts.Depth < 0 {
			// Beyond the depth bound the key stays unset.
			continue
		}

		s := &slot{key: key}
		slots = append(slots, s)

		switch assoc.Kind {
		case schema.KindMany:
			items, ok := raw.([]any)
			if !ok {
				s.value = []*Instance{}
				continue
			}
			results := make([]*Instance, len(items))
			s.value = results
			for i, item := range items {
				i, item := i, item
				g.Go(func() error {
					child, err := Deserialize(target, item, &childOpts)
					if err != nil {
						return err
					}
					results[i] = child
					return nil
				})
			}

		default:
			g.Go(func() error {
				child, err := Deserialize(target, raw, &childOpts)
				if err != nil {
					return err
				}
				s.value = child
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, s := range slots {
		in.fields[s.key] = s.value
	}
	return nil
}

// normalize coerces arbitrary input into a plain map. Plain maps are deep-
// cloned so the caller's data is never mutated; instances expose their field
// store; anything else round-trips through JSON, which also rejects shapes
// that are not object-like.
func normalize(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return nil, ErrInvalidData
	case map[string]any:
		return cloneMap(v), nil
	case *Instance:
		return v.Fields(), nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return m, nil
}

// coerceDates replaces textual values of date-typed attributes with parsed
// time values. Unparseable strings stay put for the type validator to report.
func coerceDates(in *Instance) {
	for key, a := range in.model.Attributes {
		if _, ok := a.Type.(schema.DateTyped); !ok {
			continue
		}
		s, ok := in.fields[key].(string)
		if !ok {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				in.fields[key] = t
				break
			}
		}
	}
}
