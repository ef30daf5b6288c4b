package ioc

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// RegisterComponent registers a component for the service type.
//
// The implementation is either a [reflect.Type] or a constructor function:
//   - A struct or pointer-to-struct type is built from its zero value
//     (a pointer type is allocated with new).
//   - A function may take any number of arguments which are resolved from the
//     Container when the service is resolved. It may also accept a
//     [context.Context], and a variadic last argument is treated as optional.
//     It must return the implementation, or the implementation and an error.
//
// The implementation type must be assignable to the service type.
//
// Returns an error wrapping [ErrAlreadyRegistered] if the service is already
// registered, or [ErrNoConstructor] if the implementation type cannot be constructed.
func (c *Container) RegisterComponent(service reflect.Type, impl any) error {
	if service == nil {
		return errors.Wrap(invalidComponent("service type is nil"), "register component")
	}

	return c.addComponent(service, true, func() (*component, error) {
		ctor, err := newConstructor(impl)
		if err != nil {
			return nil, err
		}

		if !ctor.impl.AssignableTo(service) {
			return nil, invalidComponent("type %s not assignable to %s", ctor.impl, service)
		}

		return newConstructedComponent(service, ctor), nil
	})
}

// RegisterType registers a self-implementing component.
//
// The service type is the implementation itself when impl is a [reflect.Type],
// or the return type when impl is a constructor function.
// See [Container.RegisterComponent].
func (c *Container) RegisterType(impl any) error {
	switch impl := impl.(type) {
	case nil:
		return errors.Wrap(invalidComponent("implementation is nil"), "register type")
	case reflect.Type:
		return c.RegisterComponent(impl, impl)
	}

	ctor, err := newConstructor(impl)
	if err != nil {
		return errors.Wrapf(err, "register type %T", impl)
	}

	return c.addComponent(ctor.impl, true, func() (*component, error) {
		return newConstructedComponent(ctor.impl, ctor), nil
	})
}

// RegisterInstance registers a pre-built instance for the service type.
//
// Resolving the service returns the instance unchanged.
// The instance must be non-nil and assignable to the service type.
func (c *Container) RegisterInstance(service reflect.Type, instance any) error {
	if service == nil {
		return errors.Wrap(invalidComponent("service type is nil"), "register instance")
	}

	return c.addComponent(service, true, func() (*component, error) {
		if isNil(instance) {
			return nil, invalidComponent("instance is nil")
		}

		if t := reflect.TypeOf(instance); !t.AssignableTo(service) {
			return nil, invalidComponent("type %s not assignable to %s", t, service)
		}

		return newInstanceComponent(service, instance), nil
	})
}

// RegisterValue registers a pre-built instance under its own dynamic type.
func (c *Container) RegisterValue(instance any) error {
	if isNil(instance) {
		return errors.Wrap(invalidComponent("instance is nil"), "register value")
	}

	return c.RegisterInstance(reflect.TypeOf(instance), instance)
}

// addComponent inserts the component built by newComponent.
//
// The service is checked before newComponent runs, so a duplicate registration
// is reported ahead of any problem with the implementation. When strict is false
// a duplicate is skipped without error.
func (c *Container) addComponent(service reflect.Type, strict bool, newComponent func() (*component, error)) error {
	comp, err := c.insert(service, strict, newComponent)
	if err != nil {
		var compErr *ComponentError
		if errors.As(err, &compErr) {
			return err
		}
		return errors.Wrapf(err, "register %s", TypeName(service))
	}

	if comp == nil {
		c.log.Debug("skipped registered service", zap.String("service", TypeName(service)))
		return nil
	}

	c.log.Debug("registered component",
		zap.String("service", TypeName(service)),
		zap.String("implementation", TypeName(comp.impl)),
		zap.Bool("instance", comp.ctor == nil),
	)
	return nil
}

func (c *Container) insert(service reflect.Type, strict bool, newComponent func() (*component, error)) (*component, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.components[service]; ok {
		if strict {
			return nil, &ComponentError{Service: service, Err: ErrAlreadyRegistered}
		}
		return nil, nil
	}

	comp, err := newComponent()
	if err != nil {
		return nil, err
	}

	c.components[service] = comp
	return comp, nil
}

// RegisterComponent registers impl for the Service type.
// See [Container.RegisterComponent].
func RegisterComponent[Service any](c *Container, impl any) error {
	return c.RegisterComponent(reflect.TypeFor[Service](), impl)
}

// RegisterComponentAs registers the Impl type as the component for the Service type.
// Impl is built from its zero value; see [Container.RegisterComponent].
func RegisterComponentAs[Service, Impl any](c *Container) error {
	return c.RegisterComponent(reflect.TypeFor[Service](), reflect.TypeFor[Impl]())
}

// RegisterSelf registers the Service type as its own implementation.
func RegisterSelf[Service any](c *Container) error {
	t := reflect.TypeFor[Service]()
	return c.RegisterComponent(t, t)
}

// RegisterInstance registers a pre-built instance for the Service type.
// See [Container.RegisterInstance].
func RegisterInstance[Service any](c *Container, instance Service) error {
	return c.RegisterInstance(reflect.TypeFor[Service](), instance)
}
