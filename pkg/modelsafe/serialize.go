package modelsafe

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// ErrNotInstance reports an association field holding something other than
// a model instance. This is a programming error, not a validation failure.
var ErrNotInstance = errors.New("association value is not a model instance")

// SerializeOptions controls Serialize.
type SerializeOptions struct {
	// Associations enables expansion of association fields.
	Associations bool

	// Depth is the number of association levels still permitted. It is
	// decremented by one at each traversal; once it falls below zero the
	// current level emits plain attributes only.
	Depth int
}

// DefaultSerializeOptions returns the standard serialization options.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{Associations: true, Depth: 1}
}

// Serialize projects an instance to a plain key/value structure. The output
// is restricted to exactly the registered attribute keys; any extraneous
// fields on the instance are dropped. With associations enabled and a
// non-negative depth, every non-nil association field is expanded alongside
// the attributes: many-kind values serialize element-wise with depth-1,
// concurrently and order-preserving, and one-kind values serialize as a
// single nested object with depth-1. A many-kind field holding a value that
// is not a sequence of instances serializes to an empty array rather than
// failing. An unresolvable association target fails immediately. A nil opts
// means DefaultSerializeOptions.
func Serialize(in *Instance, opts *SerializeOptions) (map[string]any, error) {
	if opts == nil {
		o := DefaultSerializeOptions()
		opts = &o
	}

	out := make(map[string]any, len(in.model.Attributes))
	for key := range in.model.Attributes {
		if v, ok := in.fields[key]; ok {
			out[key] = cloneValue(v)
		}
	}

	if !opts.Associations || opts.Depth < 0 {
		return out, nil
	}

	childOpts := SerializeOptions{Associations: opts.Associations, Depth: opts.Depth - 1}

	// Sibling associations share no state beyond their own result slot,
	// so they are fired together and awaited jointly.
	type slot struct {
		key   string
		value any
	}
	var (
		g     errgroup.Group
		slots []*slot
	)
	for key, assoc := range in.model.Associations {
		value, ok := in.fields[key]
		if !ok || value == nil {
			continue
		}
		if _, err := assoc.Target.Resolve(); err != nil {
			return nil, fmt.Errorf("serialize %s.%s: %w", in.model.Name, key, err)
		}

		s := &slot{key: key}
		slots = append(slots, s)

		switch assoc.Kind {
		case schema.KindMany:
			items, ok := instanceSlice(value)
			if !ok {
				s.value = []map[string]any{}
				continue
			}
			results := make([]map[string]any, len(items))
			s.value = results
			for i, item := range items {
				i, item := i, item
				g.Go(func() error {
					m, err := Serialize(item, &childOpts)
					if err != nil {
						return err
					}
					results[i] = m
					return nil
				})
			}

		default:
			item, ok := value.(*Instance)
			if !ok {
				return nil, fmt.Errorf("serialize %s.%s: %w", in.model.Name, key, ErrNotInstance)
			}
			g.Go(func() error {
				m, err := Serialize(item, &childOpts)
				if err != nil {
					return err
				}
				s.value = m
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, s := range slots {
		out[s.key] = s.value
	}
	return out, nil
}

// instanceSlice normalizes a many-kind association value to its elements.
// Returns false when the value is not a sequence of model instances.
func instanceSlice(value any) ([]*Instance, bool) {
	switch items := value.(type) {
	case []*Instance:
		return items, true
	case []any:
		out := make([]*Instance, len(items))
		for i, e := range items {
			in, ok := e.(*Instance)
			if !ok {
				return nil, false
			}
			out[i] = in
		}
		return out, true
	}
	return nil, false
}
