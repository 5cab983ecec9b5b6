package container

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps abstract identifiers to construction strategies and caches
// instances according to each binding's lifecycle.
//
// It holds:
//   - the binding table (abstract → concrete descriptor + lifecycle)
//   - direct instances registered with Instance
//   - the singleton cache (lives until ClearInstances)
//   - the per-request cache (dropped by StartNewRequest)
//   - the current request identifier
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]Binding

	// abstract → value registered with Instance; never cleared
	instances map[string]any

	// abstract → built singleton
	singletons map[string]any

	// abstract → built per-request instance
	requestInstances map[string]any

	requestID  string
	generation uint64

	// bumped by ClearInstances
	epoch uint64

	// serializes RunRequest callers
	requestGate sync.Mutex

	types  *Types
	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTypes shares a type catalog between containers.
func WithTypes(types *Types) Option {
	return func(c *Container) {
		if types != nil {
			c.types = types
		}
	}
}

// New creates an empty container with a fresh request identifier.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:         make(map[string]Binding),
		instances:        make(map[string]any),
		singletons:       make(map[string]any),
		requestInstances: make(map[string]any),
		requestID:        newRequestID(),
		types:            NewTypes(),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Types returns the catalog consulted when building type references.
func (c *Container) Types() *Types { return c.types }

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger { return c.logger }

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers or overwrites the binding for abstract. A nil concrete binds
// abstract to itself. Unknown lifecycles are rejected with KindInvalidLifecycle.
//
// Re-binding never touches instances already cached under abstract.
//
//	err := c.Bind("Logger", container.TypeRef("FileLogger"), container.Transient)
func (c *Container) Bind(abstract string, concrete Concrete, lifecycle Lifecycle) error {
	if !lifecycle.Valid() {
		return errInvalidLifecycle(abstract, string(lifecycle))
	}
	if concrete == nil {
		concrete = TypeRef(abstract)
	}

	c.mu.Lock()
	c.bindings[abstract] = Binding{Concrete: concrete, Lifecycle: lifecycle}
	c.mu.Unlock()

	c.logger.Debug("container: bound",
		zap.String("abstract", abstract),
		zap.String("concrete", describe(concrete)),
		zap.Stringer("lifecycle", lifecycle),
	)
	return nil
}

// Singleton binds abstract with the singleton lifecycle.
func (c *Container) Singleton(abstract string, concrete Concrete) {
	_ = c.Bind(abstract, concrete, Singleton)
}

// PerRequest binds abstract with the per-request lifecycle.
func (c *Container) PerRequest(abstract string, concrete Concrete) {
	_ = c.Bind(abstract, concrete, PerRequest)
}

// Transient binds abstract with the transient lifecycle.
func (c *Container) Transient(abstract string, concrete Concrete) {
	_ = c.Bind(abstract, concrete, Transient)
}

// Instance registers a pre-built value. Make(abstract) returns exactly this
// value from now on, ahead of any binding, and no cache operation drops it.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[abstract] = value
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves abstract with no parameter overrides.
func (c *Container) Make(abstract string) (any, error) {
	return c.MakeWith(abstract, nil)
}

// MakeWith resolves abstract. params override constructor parameters by name.
//
// Order: direct instance, cached singleton, cached per-request instance,
// then a fresh build cached according to the binding's lifecycle. Unbound
// type names are built and never cached.
func (c *Container) MakeWith(abstract string, params Params) (any, error) {
	c.mu.RLock()
	if inst, ok := c.instances[abstract]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	b, bound := c.bindings[abstract]
	if bound {
		if inst, ok := c.cacheFor(b.Lifecycle)[abstract]; ok {
			c.mu.RUnlock()
			c.logger.Debug("container: cache hit",
				zap.String("abstract", abstract),
				zap.Stringer("lifecycle", b.Lifecycle),
			)
			return inst, nil
		}
	}
	generation, epoch := c.generation, c.epoch
	c.mu.RUnlock()

	instance, err := c.build(abstract, params)
	if err != nil {
		return nil, err
	}

	if !bound || !b.Shared() {
		return instance, nil
	}
	return c.store(abstract, b.Lifecycle, generation, epoch, instance), nil
}

// cacheFor returns the cache backing lifecycle, or nil (must hold mu).
func (c *Container) cacheFor(lifecycle Lifecycle) map[string]any {
	switch lifecycle {
	case Singleton:
		return c.singletons
	case PerRequest:
		return c.requestInstances
	}
	return nil
}

// store caches instance unless another caller got there first, in which case
// the earlier instance wins. An instance whose build started before the last
// ClearInstances, or a per-request instance built in an older request
// generation, is returned to its caller but not cached.
func (c *Container) store(abstract string, lifecycle Lifecycle, generation, epoch uint64, instance any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return instance
	}
	if lifecycle == PerRequest && generation != c.generation {
		return instance
	}
	cache := c.cacheFor(lifecycle)
	if existing, ok := cache[abstract]; ok {
		return existing
	}
	cache[abstract] = instance
	return instance
}

// build constructs a fresh instance of abstract.
func (c *Container) build(abstract string, params Params) (any, error) {
	target := abstract

	c.mu.RLock()
	b, bound := c.bindings[abstract]
	c.mu.RUnlock()

	if bound {
		switch concrete := b.Concrete.(type) {
		case Factory:
			c.logger.Debug("container: building from factory", zap.String("abstract", abstract))
			return concrete(c, params)
		case Prebuilt:
			return concrete.Value, nil
		case TypeRef:
			target = string(concrete)
		}
	}

	t, ok := c.types.Lookup(target)
	if !ok {
		return nil, errClassNotFound(target)
	}
	if t.Abstract {
		return nil, errNotInstantiable(target)
	}

	args, err := c.resolveDependencies(t, params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("container: building",
		zap.String("abstract", abstract),
		zap.String("type", t.Name),
		zap.Int("args", args.Len()),
	)

	instance, err := t.New(args)
	if err != nil {
		return nil, errConstructorFailed(t.Name, err)
	}
	return instance, nil
}

// resolveDependencies fills the constructor parameters of t in order:
// override, then auto-resolution of non-primitive types, then default.
//
// A non-primitive parameter whose type is missing or not instantiable falls
// back to its default. Any other resolution failure is reported as
// KindUnresolvableDependency naming the parameter, with the underlying error
// as Cause.
func (c *Container) resolveDependencies(t Type, params Params) (Args, error) {
	args := Args{
		names:  make([]string, 0, len(t.Params)),
		values: make([]any, 0, len(t.Params)),
	}

	for _, p := range t.Params {
		var value any

		if override, ok := params[p.Name]; ok {
			value = override
		} else if !p.Primitive() {
			dep, err := c.Make(p.Type)
			switch {
			case err == nil:
				value = dep
			case p.HasDefault && unbuildable(err):
				value = p.Default
			default:
				return Args{}, errUnresolvable(p.Name, t.Name, err)
			}
		} else if p.HasDefault {
			value = p.Default
		} else {
			return Args{}, errUnresolvable(p.Name, t.Name, nil)
		}

		args.names = append(args.names, p.Name)
		args.values = append(args.values, value)
	}
	return args, nil
}

// unbuildable reports whether err says the type itself cannot be built, as
// opposed to one of its own dependencies failing.
func unbuildable(err error) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == KindClassNotFound || ce.Kind == KindNotInstantiable
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	users, err := container.Resolve[*services.UserService](c, "UserService")
func Resolve[T any](c *Container, abstract string) (T, error) {
	return ResolveWith[T](c, abstract, nil)
}

// ResolveWith is Resolve with parameter overrides.
func ResolveWith[T any](c *Container, abstract string, params Params) (T, error) {
	var zero T
	instance, err := c.MakeWith(abstract, params)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, want %T", abstract, instance, zero)
	}
	return typed, nil
}

// MustResolve is Resolve that panics on failure. Use it in bootstrap code
// where a missing binding is a programming error.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether abstract has a binding or a direct instance.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, hasBinding := c.bindings[abstract]
	_, hasInstance := c.instances[abstract]
	return hasBinding || hasInstance
}

// Bindings returns a copy of the binding table. Mutating it does not affect
// the container.
func (c *Container) Bindings() map[string]Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Binding, len(c.bindings))
	for k, b := range c.bindings {
		out[k] = b
	}
	return out
}

// Resolved reports whether abstract currently has a cached or direct instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.instances[abstract]; ok {
		return true
	}
	if _, ok := c.singletons[abstract]; ok {
		return true
	}
	_, ok := c.requestInstances[abstract]
	return ok
}

// ── Lifecycle control ─────────────────────────────────────────────────────────

// ClearInstances drops every cached singleton and per-request instance.
// Direct instances and the binding table are kept.
func (c *Container) ClearInstances() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.singletons = make(map[string]any)
	c.requestInstances = make(map[string]any)
	c.epoch++
	c.logger.Debug("container: instances cleared")
}

// StartNewRequest begins a new request generation: a fresh request ID and an
// empty per-request cache. Singletons and direct instances are untouched.
func (c *Container) StartNewRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestID = newRequestID()
	c.generation++
	c.requestInstances = make(map[string]any)
	c.logger.Debug("container: request started", zap.String("request_id", c.requestID))
}

// RequestID returns the identifier of the current request generation.
// Treat it as opaque.
func (c *Container) RequestID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestID
}

// RunRequest starts a new request generation and runs fn inside it. Callers
// are serialized, so fn never observes another caller's per-request instances.
//
// RunRequest is not reentrant: calling it from inside fn, directly or through
// schedule.Scheduler.Run or the HTTP request scope, blocks forever. Code that
// already runs in a request resolves from the container directly.
//
//	err := c.RunRequest(func(requestID string) error {
//	    users, err := container.Resolve[*services.UserService](c, "UserService")
//	    ...
//	})
func (c *Container) RunRequest(fn func(requestID string) error) error {
	c.requestGate.Lock()
	defer c.requestGate.Unlock()

	c.StartNewRequest()
	return fn(c.RequestID())
}

func newRequestID() string {
	return "request_" + uuid.NewString()
}
