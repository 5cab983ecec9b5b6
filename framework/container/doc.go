// Package container provides a dependency-injection container with automatic
// constructor injection and three lifecycles: transient, singleton and
// per-request.
//
// # Overview
//
// Services are requested by an abstract identifier (an interface name, a type
// name or any alias). A binding maps the abstract to a concrete descriptor:
//
//   - TypeRef: a type from the container's type catalog, built by resolving
//     its constructor parameters
//   - Factory: a function that builds the value itself
//   - Prebuilt: a fixed value
//
// Because Go has no runtime constructor reflection, constructible types are
// described up front in a Types catalog: name, ordered parameters (with their
// declared abstract or a default) and a constructor.
//
//	types := c.Types()
//	types.MustRegister(
//	    container.Interface("Logger"),
//	    container.Define("FileLogger", func(a container.Args) (*FileLogger, error) {
//	        path, err := container.Arg[string](a, "logFile")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return NewFileLogger(path), nil
//	    }, container.Optional("logFile", "/tmp/app.log")),
//	)
//
// # Bindings
//
//	// Transient: new instance every Make()
//	err := c.Bind("Logger", container.TypeRef("FileLogger"), container.Transient)
//
//	// Singleton: created once, reused until ClearInstances
//	c.Singleton("Logger", container.TypeRef("FileLogger"))
//
//	// Per-request: created once per request generation
//	c.PerRequest("UserService", nil)
//
//	// Factory
//	c.Singleton("db", container.Factory(func(c *container.Container, _ container.Params) (any, error) {
//	    return database.NewConnection(cfg.DB), nil
//	}))
//
//	// Pre-built value, returned as-is forever
//	c.Instance("config", cfg)
//
// # Resolving
//
//	raw, err := c.Make("UserService")
//	users, err := container.Resolve[*UserService](c, "UserService")
//	custom, err := c.MakeWith("UserService", container.Params{"serviceName": "Custom"})
//
// Constructor parameters are filled in declaration order from, in priority:
// the override map, Make on the parameter's declared abstract, the default.
// Anything else fails with KindUnresolvableDependency naming the parameter;
// the reason the dependency could not be built is its Cause.
//
// # Requests
//
// StartNewRequest drops per-request instances and issues a new RequestID.
// RunRequest wraps a unit of work (an HTTP request, a scheduled job) in its
// own request generation and serializes such units container-wide. It is not
// reentrant.
//
// # Limitations
//
// There is no cycle detection: a type that depends on itself, directly or
// through other types, recurses until the goroutine stack overflows.
package container
