package container

import "go.uber.org/zap"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bindings.
//
// Register is called first for every provider; Boot runs after all providers
// are registered, so Boot may resolve bindings made by other providers.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("Logger", container.TypeRef("FileLogger"))
//	}
//
//	func (p *AppServiceProvider) Boot(app *container.Container) {
//	    logger := container.MustResolve[services.Logger](app, "Logger")
//	    logger.Log("application booted")
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider registers.
	Provides() []string

	// IsDeferred returns true if the provider should only be registered when
	// one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one container.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider not yet loaded
	loaded     map[ServiceProvider]bool
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		loaded:     make(map[ServiceProvider]bool),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered immediately (and
// booted immediately if the registry is already booted); registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
			r.intercept(abstract, provider)
		}
		return
	}

	provider.Register(r.app)
	r.loaded[provider] = true
	r.eager = append(r.eager, provider)

	if r.booted {
		provider.Boot(r.app)
	}
}

// intercept binds a transient factory for abstract that loads the deferred
// provider on first resolution and then resolves the real binding. A provider
// that does not rebind abstract leaves it unresolvable.
func (r *ProviderRegistry) intercept(abstract string, provider ServiceProvider) {
	r.app.Transient(abstract, Factory(func(c *Container, params Params) (any, error) {
		if r.loaded[provider] {
			return nil, errClassNotFound(abstract)
		}
		r.load(provider)
		return c.MakeWith(abstract, params)
	}))
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	if r.loaded[provider] {
		return
	}
	r.loaded[provider] = true
	for _, abstract := range provider.Provides() {
		delete(r.deferred, abstract)
	}

	r.app.logger.Debug("container: loading deferred provider", zap.Strings("provides", provider.Provides()))
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all eager providers. Further calls are no-ops.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Deferred returns the abstracts whose providers have not been loaded yet.
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for abstract := range r.deferred {
		out = append(out, abstract)
	}
	return out
}
