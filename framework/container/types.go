package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ── Constructor descriptors ───────────────────────────────────────────────────

// Param describes one constructor parameter.
type Param struct {
	Name string

	// Type is the abstract resolved through Make when no override is given.
	// Empty for primitives (strings, numbers, booleans), which are only ever
	// filled from overrides or Default.
	Type string

	Default    any
	HasDefault bool
}

// Needs declares a parameter auto-resolved from the container by abstract.
func Needs(name, abstract string) Param {
	return Param{Name: name, Type: abstract}
}

// Primitive declares a parameter that must be supplied as an override.
func Primitive(name string) Param {
	return Param{Name: name}
}

// Optional declares a primitive parameter with a default value.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// WithDefault returns a copy of p carrying a default value.
func (p Param) WithDefault(def any) Param {
	p.Default = def
	p.HasDefault = true
	return p
}

// Primitive reports whether the parameter is never auto-resolved.
func (p Param) Primitive() bool { return p.Type == "" }

// Args are the resolved constructor arguments, in declaration order.
type Args struct {
	names  []string
	values []any
}

// NewArgs pairs names with values. It is mostly useful in tests.
func NewArgs(names []string, values []any) Args {
	return Args{names: names, values: values}
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a.values) }

// At returns the i-th argument.
func (a Args) At(i int) any { return a.values[i] }

// Value returns the argument for the named parameter.
func (a Args) Value(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	return nil, false
}

// Arg returns the named argument as T. Overrides are passed to constructors
// unchecked, so a mismatch is reported here.
//
//	host, err := container.Arg[string](args, "smtpHost")
func Arg[T any](a Args, name string) (T, error) {
	var zero T
	raw, ok := a.Value(name)
	if !ok {
		return zero, fmt.Errorf("argument $%s not supplied", name)
	}
	if raw == nil {
		return zero, nil
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("argument $%s: got %T, want %T", name, raw, zero)
	}
	return typed, nil
}

// Constructor builds an instance from resolved arguments.
type Constructor func(args Args) (any, error)

// Type is the static descriptor of a constructible (or abstract) type.
type Type struct {
	Name string

	// Abstract marks interfaces: known to the catalog, never constructible.
	Abstract bool

	Params []Param
	New    Constructor
}

// Define builds a Type descriptor for T from a typed constructor.
//
//	container.Define("EmailService", func(a container.Args) (*EmailService, error) {
//	    ...
//	}, container.Needs("logger", "Logger"), container.Optional("smtpPort", 587))
func Define[T any](name string, ctor func(Args) (T, error), params ...Param) Type {
	return Type{
		Name:   name,
		Params: params,
		New: func(args Args) (any, error) {
			return ctor(args)
		},
	}
}

// Interface builds an abstract Type descriptor.
func Interface(name string) Type {
	return Type{Name: name, Abstract: true}
}

// ── Types catalog ─────────────────────────────────────────────────────────────

// Types is the catalog of constructor descriptors consulted by the build step.
// A name missing from the catalog is reported as "class not found".
type Types struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewTypes creates an empty catalog.
func NewTypes() *Types {
	return &Types{types: make(map[string]Type)}
}

// Register adds or replaces a descriptor.
func (r *Types) Register(types ...Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		if t.Name == "" {
			return fmt.Errorf("container: type descriptor without a name")
		}
		if !t.Abstract && t.New == nil {
			return fmt.Errorf("container: type [%s] has no constructor", t.Name)
		}
		seen := make(map[string]bool, len(t.Params))
		for _, p := range t.Params {
			if p.Name == "" {
				return fmt.Errorf("container: type [%s] has an unnamed parameter", t.Name)
			}
			if seen[p.Name] {
				return fmt.Errorf("container: type [%s] declares parameter $%s twice", t.Name, p.Name)
			}
			seen[p.Name] = true
		}
		r.types[t.Name] = t
	}
	return nil
}

// MustRegister is Register that panics on an invalid descriptor.
func (r *Types) MustRegister(types ...Type) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Types) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered type names, sorted.
func (r *Types) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key. Pointers are dereferenced.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "github.com/acme/app.UserRepository"
func TypeKey(v any) string {
	return typeName(reflect.TypeOf(v))
}

// KeyOf is TypeKey for a type parameter; it also works for interfaces.
//
//	c.Singleton(container.KeyOf[services.Logger](), container.TypeRef(container.KeyOf[*services.FileLogger]()))
func KeyOf[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
