package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Schema represents one schema fragment of an OpenAPI document.
//
// A Schema carrying a Ref must be resolved to its concrete target before
// synthesis; everything else is usable as-is. Property order follows the
// source document.
type Schema struct {
	// Reference
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Type validation
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
	Enum  []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any    `yaml:"const,omitempty" json:"const,omitempty"`

	// Format (documentation-level refinement, e.g. "date-time", "int64")
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Object validation
	Properties           *OrderedMap[*Schema]  `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string              `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties *AdditionalProperties `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`

	// Array validation
	Items *Schema `yaml:"items,omitempty" json:"items,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`

	// OAS 3.0 nullability marker
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

// IsRef reports whether the schema is a bare reference.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// HasProperties reports whether the schema declares any properties.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}

// HasComposition reports whether the schema uses allOf, oneOf, or anyOf.
func (s *Schema) HasComposition() bool {
	return s != nil && (len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0)
}

// IsRequired reports whether the named property is in the required set.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AdditionalProperties is either a boolean toggle or a nested schema.
// `additionalProperties: true` allows arbitrary values;
// `additionalProperties: {type: string}` constrains them.
type AdditionalProperties struct {
	// Allowed is non-nil when the document used a boolean form
	Allowed *bool
	// Schema is non-nil when the document used a schema form
	Schema *Schema
}

// UnmarshalYAML decodes either the boolean or the schema form.
func (a *AdditionalProperties) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("additionalProperties must be a boolean or a schema: %w", err)
		}
		a.Allowed = &b
		return nil
	case yaml.MappingNode:
		var s Schema
		if err := value.Decode(&s); err != nil {
			return err
		}
		a.Schema = &s
		return nil
	default:
		return fmt.Errorf("additionalProperties must be a boolean or a schema, got %s", nodeKindName(value.Kind))
	}
}

// MarshalYAML re-emits the original form.
func (a *AdditionalProperties) MarshalYAML() (any, error) {
	if a.Allowed != nil {
		return *a.Allowed, nil
	}
	return a.Schema, nil
}
