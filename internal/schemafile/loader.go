// Package schemafile loads declarative model definitions from YAML files
// into a schema.Registry. Association targets are wired as deferred
// registry lookups, so mutually referencing models load in any order.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sorakthunly/modelsafe/pkg/attr"
	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// Loader errors.
var (
	ErrNoModels     = errors.New("schema file defines no models")
	ErrUnknownType  = errors.New("unknown attribute type")
	ErrUnknownModel = errors.New("association target is not a defined model")
)

// Attribute type names accepted in schema files.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeDate   = "date"
	TypeUUID   = "uuid"
	TypeEnum   = "enum"
	TypeObject = "object"
	TypeOpaque = "any"
)

// defaultNow is the schema-file spelling for a construction-time timestamp.
const defaultNow = "now"

// fileDef is the root of a schema file.
type fileDef struct {
	Models map[string]modelDef `yaml:"models"`
}

// modelDef defines one model.
type modelDef struct {
	Attributes   map[string]attributeDef   `yaml:"attributes"`
	Associations map[string]associationDef `yaml:"associations"`
}

// attributeDef defines one attribute.
type attributeDef struct {
	Type      string   `yaml:"type"`
	Optional  bool     `yaml:"optional"`
	Default   any      `yaml:"default"`
	MaxLength int      `yaml:"max_length"`
	Values    []string `yaml:"values"`
}

// associationDef defines one association.
type associationDef struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target"`
}

// Load reads and parses the schema file at the given path.
func Load(path string) (*schema.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML schema-file content. Every association
// target must name a model defined in the same file; targets are still wired
// as deferred lookups so definition order never matters.
func Parse(data []byte) (*schema.Registry, error) {
	var def fileDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	if len(def.Models) == 0 {
		return nil, ErrNoModels
	}

	reg := schema.NewRegistry()
	for name, md := range def.Models {
		m, err := buildModel(reg, name, md, def.Models)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// buildModel converts one model definition into a descriptor table.
func buildModel(reg *schema.Registry, name string, md modelDef, all map[string]modelDef) (*schema.Model, error) {
	m := &schema.Model{
		Name:         name,
		Attributes:   make(map[string]schema.Attribute, len(md.Attributes)),
		Associations: make(map[string]schema.Association, len(md.Associations)),
	}

	for key, ad := range md.Attributes {
		a, err := buildAttribute(name, key, ad)
		if err != nil {
			return nil, err
		}
		m.Attributes[key] = a
	}

	for key, sd := range md.Associations {
		if _, ok := all[sd.Target]; !ok {
			return nil, fmt.Errorf("%s.%s -> %q: %w", name, key, sd.Target, ErrUnknownModel)
		}
		m.Associations[key] = schema.Association{
			Kind:   sd.Kind,
			Target: reg.Deferred(sd.Target),
		}
	}
	return m, nil
}

// buildAttribute converts one attribute definition into a descriptor.
func buildAttribute(model, key string, ad attributeDef) (schema.Attribute, error) {
	a := schema.Attribute{Optional: ad.Optional, Default: ad.Default}

	switch ad.Type {
	case TypeString:
		a.Type = attr.String{MaxLength: ad.MaxLength}
	case TypeInt:
		a.Type = attr.Int{}
	case TypeFloat:
		a.Type = attr.Float{}
	case TypeBool:
		a.Type = attr.Bool{}
	case TypeDate:
		a.Type = attr.Date{}
		if ad.Default == defaultNow {
			a.Default = schema.LazyDefault(func() any { return time.Now().UTC() })
		}
	case TypeUUID:
		a.Type = attr.UUID{}
	case TypeEnum:
		a.Type = attr.Enum{Values: ad.Values}
	case TypeObject:
		a.Type = attr.Object{}
	case TypeOpaque, "":
		// Unchecked attribute; values pass type validation untouched.
	default:
		return schema.Attribute{}, fmt.Errorf("%s.%s: %q: %w", model, key, ad.Type, ErrUnknownType)
	}
	return a, nil
}
