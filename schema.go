// schema.go: declarative YAML schemas for registry bootstrap.
//
// A schema file declares a whole scope up front, matching the intended
// lifecycle: declarations happen once during initialization, values flow
// afterwards.
//
//	types:
//	  - name: EnderecoIp
//	    variants:
//	      - name: V4
//	        fields: [u8, u8, u8, u8]
//	      - name: V6
//	        fields: [str]
//	  - name: Forma
//	    generic: true
//	    variants:
//	      - name: Rotulada
//	        fields: [T, str]
//
// Field types use the spelling of ParseType (types.go).
package sumtype

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Schema is a parsed, validated set of declarations in document order.
type Schema struct {
	Types []TypeSchema `mapstructure:"types"`
}

// TypeSchema declares one sum type.
type TypeSchema struct {
	Name     string          `mapstructure:"name"`
	Generic  bool            `mapstructure:"generic"`
	Variants []VariantSchema `mapstructure:"variants"`
}

// VariantSchema declares one variant; Fields are type spellings.
type VariantSchema struct {
	Name   string   `mapstructure:"name"`
	Fields []string `mapstructure:"fields"`
}

// LoadSchema reads a YAML schema and validates its shape. Registry-level
// rules (duplicates, unknown type references) are enforced by Apply.
func LoadSchema(r io.Reader) (*Schema, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	var s Schema
	if err := decode(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchemaFile is LoadSchema over a file path.
func LoadSchemaFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSchema(f)
}

// Validate checks the schema shape: names present, field types parseable,
// the generic parameter only used under generic: true.
func (s *Schema) Validate() error {
	if len(s.Types) == 0 {
		return fmt.Errorf("schema declares no types")
	}
	for _, t := range s.Types {
		if t.Name == "" {
			return fmt.Errorf("schema: type name is required")
		}
		for _, v := range t.Variants {
			if v.Name == "" {
				return fmt.Errorf("schema: type %q: variant name is required", t.Name)
			}
			for i, f := range v.Fields {
				ft, err := ParseType(f)
				if err != nil {
					return fmt.Errorf("schema: %s::%s field %d: %w", t.Name, v.Name, i, err)
				}
				if ft.Kind == KindParam && !t.Generic {
					return fmt.Errorf("schema: %s::%s field %d: T used in a non-generic type", t.Name, v.Name, i)
				}
			}
		}
	}
	return nil
}

// Apply declares every schema type into reg, in document order. The first
// registry error aborts; earlier declarations stay registered, consistent
// with write-once semantics.
func (s *Schema) Apply(reg *Registry) error {
	for _, t := range s.Types {
		specs := make([]VariantSpec, len(t.Variants))
		for i, v := range t.Variants {
			fields := make([]Type, len(v.Fields))
			for j, f := range v.Fields {
				ft, err := ParseType(f)
				if err != nil {
					return fmt.Errorf("schema: %s::%s field %d: %w", t.Name, v.Name, j, err)
				}
				fields[j] = ft
			}
			specs[i] = VariantSpec{Name: v.Name, Fields: fields}
		}
		if _, err := reg.Declare(t.Name, t.Generic, specs...); err != nil {
			return fmt.Errorf("schema: declaring %q: %w", t.Name, err)
		}
	}
	return nil
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
