package schema

// Association kinds. A "one" association holds a single target instance;
// a "many" association holds an ordered collection of target instances.
// Belongs-to, has-one, has-many and many-to-many relationships all reduce
// to these two shapes for serialization purposes.
const (
	KindOne  = "one"
	KindMany = "many"
)

// validKinds is the set of recognized association kinds.
var validKinds = map[string]bool{
	KindOne:  true,
	KindMany: true,
}

// IsValidKind reports whether the given string is a recognized association kind.
func IsValidKind(kind string) bool {
	return validKinds[kind]
}

// Validator is the optional validation capability of an attribute type.
// Validate checks the given value for the named attribute and returns a
// *PropertyError (or any error, coerced to kind "unknown") on mismatch.
type Validator interface {
	Validate(key string, value any) error
}

// DateTyped marks attribute types whose values are points in time.
// Deserialization replaces textual values of date-typed attributes with
// parsed time.Time values.
type DateTyped interface {
	DateType()
}

// LazyDefault is a deferred default value. It is invoked fresh at each
// construction so distinct instances never share a mutable default, and so
// defaults may reference types that are not yet defined at registration time.
type LazyDefault func() any

// IsLazy reports whether the given default or target value is a deferred
// resolver rather than a concrete value.
func IsLazy(v any) bool {
	_, ok := v.(LazyDefault)
	return ok
}

// Attribute describes a single model field.
type Attribute struct {
	// Type is the attribute's type capability; nil means the value is
	// never type-checked.
	Type Validator

	// Default is the value assigned at construction when the caller
	// provides none. Either a concrete value or a LazyDefault.
	Default any

	// Optional marks the attribute as allowed to be nil. A non-optional
	// attribute without a default must carry a value to validate.
	Optional bool
}

// Association describes a typed reference from one model to another.
type Association struct {
	// Kind is one of KindOne or KindMany.
	Kind string

	// Target identifies the associated model type, directly or deferred.
	Target TargetRef
}

// RuleFunc is a custom validation callback. It receives the attribute key,
// the current value, and the options the rule was registered with.
type RuleFunc func(key string, value any, options map[string]any) error

// Rule is a custom validation rule registered against a single attribute.
// Rules run independently; one rule's failure does not stop the others.
type Rule struct {
	Check   RuleFunc
	Options map[string]any
}

// Model is the static descriptor table for a model type. It is the unit
// the engine queries for attributes, associations, and validation rules;
// it carries no instance state and is read-only once registered.
type Model struct {
	// Name identifies the model, unique within a Registry.
	Name string

	// Attributes maps attribute names to their descriptors.
	Attributes map[string]Attribute

	// Associations maps association names to their descriptors.
	Associations map[string]Association

	// Validations maps attribute names to their ordered custom rules.
	Validations map[string][]Rule
}

// Rules returns the ordered custom validation rules for the given attribute.
// Returns nil if none are registered.
func (m *Model) Rules(key string) []Rule {
	if m.Validations == nil {
		return nil
	}
	return m.Validations[key]
}

// Describer is implemented by Go types that expose a modelsafe descriptor
// table. It is the registration-call alternative to building a Model by hand.
type Describer interface {
	Describe() *Model
}
