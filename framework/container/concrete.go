package container

import "fmt"

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// Lifecycle is the caching policy of a binding.
type Lifecycle string

const (
	// Transient builds a new instance on every Make.
	Transient Lifecycle = "transient"

	// Singleton builds once and reuses the instance until ClearInstances.
	Singleton Lifecycle = "singleton"

	// PerRequest builds once per request generation (see StartNewRequest).
	PerRequest Lifecycle = "per-request"
)

// Valid reports whether l is one of the three recognised lifecycles.
func (l Lifecycle) Valid() bool {
	switch l {
	case Transient, Singleton, PerRequest:
		return true
	}
	return false
}

func (l Lifecycle) String() string { return string(l) }

// ParseLifecycle converts a lifecycle name. The empty string means Transient.
func ParseLifecycle(s string) (Lifecycle, error) {
	if s == "" {
		return Transient, nil
	}
	l := Lifecycle(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown lifecycle %q (want transient, singleton or per-request)", s)
	}
	return l, nil
}

// ── Concrete descriptors ──────────────────────────────────────────────────────

// Concrete describes what an abstract resolves to. It is one of TypeRef,
// Factory or Prebuilt.
type Concrete interface {
	concrete()
}

// TypeRef names a type in the container's type catalog.
//
//	c.Singleton("Logger", container.TypeRef("FileLogger"))
type TypeRef string

// Factory builds the value itself. params are the overrides given to MakeWith,
// passed through untouched; the factory decides whether to honour them.
//
//	c.Bind("db", container.Factory(func(c *container.Container, _ container.Params) (any, error) {
//	    return database.NewConnection(cfg.DB), nil
//	}), container.Singleton)
type Factory func(c *Container, params Params) (any, error)

// Prebuilt returns Value from every build. Unlike Instance, the value still
// goes through the binding's lifecycle cache.
type Prebuilt struct {
	Value any
}

func (TypeRef) concrete()  {}
func (Factory) concrete()  {}
func (Prebuilt) concrete() {}

// Params are named overrides for constructor parameters.
type Params map[string]any

// Binding is one entry of the binding table.
type Binding struct {
	Concrete  Concrete
	Lifecycle Lifecycle
}

// Shared reports whether instances of the binding are cached.
func (b Binding) Shared() bool {
	return b.Lifecycle == Singleton || b.Lifecycle == PerRequest
}

// describe renders a concrete descriptor for logs and debug output.
func describe(c Concrete) string {
	switch v := c.(type) {
	case TypeRef:
		return string(v)
	case Factory:
		return "factory"
	case Prebuilt:
		return fmt.Sprintf("prebuilt(%T)", v.Value)
	default:
		return fmt.Sprintf("%T", c)
	}
}

// Describe returns a printable form of the binding's concrete descriptor:
// the type name, "factory" or "prebuilt(<go type>)".
func (b Binding) Describe() string { return describe(b.Concrete) }
