package ioc

import (
	"cmp"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// Container is an inversion-of-control container.
//
// It maps service types to components and resolves services by first
// resolving the dependencies of their constructors.
//
// A single mutex guards every read and write of the registry. The mutex is
// never held while constructors or installers run, so both may call back into
// the Container.
type Container struct {
	id         uuid.UUID
	mu         sync.Mutex
	components map[reflect.Type]*component
	catalog    *Catalog
	log        *zap.Logger
}

var _ Registry = (*Container)(nil)

// NewContainer creates a new [Container] with the provided options.
//
// The Container registers itself as the [Resolver] and [Registry] services,
// so resolving either returns the Container.
//
// Available options:
//   - [WithLogger] sets the logger.
//   - [WithCatalog] sets the catalog used by [Container.InstallFromAllAssemblies].
//   - [WithComponent], [WithInstance] and [WithAssembly] register services.
//   - [WithInstallers] and [WithInstallFromAllAssemblies] run installers.
//   - [WithModule] applies a group of options.
func NewContainer(opts ...ContainerOption) (*Container, error) {
	c := &Container{
		id:         uuid.New(),
		components: make(map[reflect.Type]*component),
		catalog:    DefaultCatalog,
	}
	c.setLogger(zap.NewNop())

	err := c.applyOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "ioc.NewContainer")
	}

	return c, nil
}

// ContainerOption is used to configure a new [Container] when calling [NewContainer].
type ContainerOption interface {
	order() optionOrder
	applyContainer(*Container) error
}

func (c *Container) applyOptions(opts []ContainerOption) error {
	opts = flattenModules(opts)
	opts = append(opts, newContainerOption(orderSelf, (*Container).registerSelf))

	// Sort options by precedence
	// Use stable sort because the registration order of services matters
	slices.SortStableFunc(opts, func(a, b ContainerOption) int {
		return cmp.Compare(a.order(), b.order())
	})

	var errs errors.MultiError
	for _, o := range opts {
		errs = errs.Append(o.applyContainer(c))
	}

	return errs.Join()
}

func (c *Container) registerSelf() error {
	var errs errors.MultiError
	errs = errs.Append(c.RegisterInstance(typeResolver, c))
	errs = errs.Append(c.RegisterInstance(typeRegistry, c))
	return errs.Join()
}

func (c *Container) setLogger(l *zap.Logger) {
	c.log = l.Named("ioc").With(zap.Stringer("container", c.id))
}

// ID returns the unique identifier of the Container. It is attached to every log entry.
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Contains returns true if the [Container] has a component registered for the given type.
func (c *Container) Contains(t reflect.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.components[t]
	return ok
}

// Services returns the registered service types sorted by [TypeName].
func (c *Container) Services() []reflect.Type {
	c.mu.Lock()
	types := make([]reflect.Type, 0, len(c.components))
	for t := range c.components {
		types = append(types, t)
	}
	c.mu.Unlock()

	sortTypes(types)
	return types
}

// Cached returns the instance stored for a service: the registered instance,
// or the value built by the most recent [Container.Resolve].
//
// The cache is never used to satisfy a resolution.
func (c *Container) Cached(t reflect.Type) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comp, ok := c.components[t]
	if !ok || comp.instance == nil {
		return nil, false
	}

	return comp.instance, true
}

// Close clears the registry.
//
// Resolved services are not closed. The Container may still be used after
// Close; it behaves like a Container with nothing registered, including the
// [Resolver] and [Registry] self-registrations.
func (c *Container) Close() error {
	c.mu.Lock()
	n := len(c.components)
	clear(c.components)
	c.mu.Unlock()

	c.log.Debug("container closed", zap.Int("components", n))
	return nil
}

type optionOrder int8

const (
	orderConfig optionOrder = iota
	orderSelf
	orderService
	orderInstall
)

func newContainerOption(order optionOrder, fn func(*Container) error) ContainerOption {
	return containerOption{fn: fn, ord: order}
}

type containerOption struct {
	fn  func(*Container) error
	ord optionOrder
}

func (o containerOption) order() optionOrder {
	return o.ord
}

func (o containerOption) applyContainer(c *Container) error {
	return o.fn(c)
}
