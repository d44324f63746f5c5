// Package sumtype implements closed sum types for Go hosts: declared
// variant shapes, tagged immutable values, a predefined Optional wrapper,
// and exhaustiveness-checked pattern matching.
//
// A Registry is a declaration scope. Declarations are write-once and live
// for the lifetime of their Registry; values reference their declaration
// and never outlive its meaning. Matching is validated eagerly when a
// MatchSet is built, so a non-exhaustive match fails before any value
// flows through it.
package sumtype

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// VariantSpec describes one variant for Declare: a name plus the ordered
// field slot types.
type VariantSpec struct {
	Name   string
	Fields []Type
}

// VariantDecl is one declared variant of a sum type. Immutable after
// declaration.
type VariantDecl struct {
	name   string
	fields []Type
	index  int // declaration order within the sum type
}

func (v *VariantDecl) Name() string { return v.name }
func (v *VariantDecl) Arity() int   { return len(v.fields) }

// Index is the variant's position in declaration order.
func (v *VariantDecl) Index() int { return v.index }

// Fields returns the ordered slot types. The slice is a copy; slot types
// are fixed at declaration time.
func (v *VariantDecl) Fields() []Type {
	out := make([]Type, len(v.fields))
	copy(out, v.fields)
	return out
}

// SumTypeDecl is a registered sum type: an ordered, closed set of variants,
// optionally generic over a single type parameter. Created by
// Registry.Declare, immutable thereafter.
type SumTypeDecl struct {
	name     string
	generic  bool
	variants []*VariantDecl
	byName   map[string]*VariantDecl
	reg      *Registry
}

func (d *SumTypeDecl) Name() string  { return d.name }
func (d *SumTypeDecl) Generic() bool { return d.generic }

// Variants returns the declared variants in declaration order. The order is
// load-bearing: exhaustiveness errors and generated listings follow it.
func (d *SumTypeDecl) Variants() []*VariantDecl {
	out := make([]*VariantDecl, len(d.variants))
	copy(out, d.variants)
	return out
}

// Variant resolves a variant by name.
func (d *SumTypeDecl) Variant(name string) (*VariantDecl, error) {
	v, ok := d.byName[name]
	if !ok {
		return nil, &Error{Kind: UnknownVariant, Type: d.name, Variant: name, Slot: -1, Msg: "declared: " + variantNames(d)}
	}
	return v, nil
}

// Registry is a declaration scope: a write-once mapping from names to sum
// type declarations. Two independent registries may reuse a name; within
// one registry re-declaration is rejected. Every registry starts with the
// Optional type already declared.
type Registry struct {
	mu    sync.RWMutex
	decls map[string]*SumTypeDecl
	order []*SumTypeDecl

	optional *SumTypeDecl
}

// NewRegistry creates an empty scope and bootstraps Optional.
func NewRegistry() *Registry {
	r := &Registry{decls: map[string]*SumTypeDecl{}}
	opt, err := r.Declare(OptionalName, true,
		VariantSpec{Name: SomeVariant, Fields: []Type{Param}},
		VariantSpec{Name: NoneVariant},
	)
	if err != nil {
		// Unreachable: the registry is empty at this point.
		panic(fmt.Sprintf("sumtype: Optional bootstrap failed: %v", err))
	}
	r.optional = opt
	return r
}

// Declare registers a sum type. It fails with DuplicateDeclaration if the
// name is taken in this registry and with DuplicateVariant if two variants
// share a name. Field slots referencing other sum types must already be
// declared, except for references to the type being declared (recursive
// types). The generic parameter may appear in slots only when generic is
// true. Declarations are write-once; no variant can be added later.
func (r *Registry) Declare(name string, generic bool, variants ...VariantSpec) (*SumTypeDecl, error) {
	if !isIdent(name) {
		return nil, fmt.Errorf("sumtype: invalid type name %q", name)
	}

	decl := &SumTypeDecl{
		name:    name,
		generic: generic,
		byName:  map[string]*VariantDecl{},
		reg:     r,
	}
	for i, spec := range variants {
		if !isIdent(spec.Name) {
			return nil, fmt.Errorf("sumtype: type %q: invalid variant name %q", name, spec.Name)
		}
		if _, dup := decl.byName[spec.Name]; dup {
			return nil, &Error{Kind: DuplicateVariant, Type: name, Variant: spec.Name, Slot: -1}
		}
		v := &VariantDecl{name: spec.Name, fields: make([]Type, len(spec.Fields)), index: i}
		copy(v.fields, spec.Fields)
		for slot, ft := range v.fields {
			if err := r.checkFieldType(name, spec.Name, slot, ft, generic); err != nil {
				return nil, err
			}
		}
		decl.variants = append(decl.variants, v)
		decl.byName[spec.Name] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.decls[name]; taken {
		return nil, &Error{Kind: DuplicateDeclaration, Type: name, Slot: -1}
	}
	r.decls[name] = decl
	r.order = append(r.order, decl)
	return decl, nil
}

func (r *Registry) checkFieldType(typeName, variantName string, slot int, ft Type, generic bool) error {
	switch ft.Kind {
	case KindInvalid:
		return fmt.Errorf("sumtype: type %q, variant %q, slot %d: invalid field type", typeName, variantName, slot)
	case KindParam:
		if !generic {
			return fmt.Errorf("sumtype: type %q, variant %q, slot %d: type parameter used in a non-generic declaration", typeName, variantName, slot)
		}
	case KindSum:
		if ft.Name == typeName {
			return nil // self-reference, legal for recursive types
		}
		r.mu.RLock()
		_, known := r.decls[ft.Name]
		r.mu.RUnlock()
		if !known {
			return &Error{Kind: UnknownType, Type: ft.Name, Slot: -1,
				Msg: fmt.Sprintf("referenced by %s::%s slot %d", typeName, variantName, slot)}
		}
	}
	return nil
}

// Lookup resolves a declared sum type by name.
func (r *Registry) Lookup(name string) (*SumTypeDecl, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	if !ok {
		known := maps.Keys(r.decls)
		sort.Strings(known)
		return nil, &Error{Kind: UnknownType, Type: name, Slot: -1, Msg: "declared: " + joinOrNone(known)}
	}
	return d, nil
}

// Types returns every declaration of this registry in declaration order,
// Optional first.
func (r *Registry) Types() []*SumTypeDecl {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*SumTypeDecl, len(r.order))
	copy(out, r.order)
	return out
}

// Optional returns the registry's predefined Optional declaration.
func (r *Registry) Optional() *SumTypeDecl { return r.optional }

func variantNames(d *SumTypeDecl) string {
	names := make([]string, len(d.variants))
	for i, v := range d.variants {
		names[i] = v.name
	}
	return joinOrNone(names)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}
