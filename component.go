package ioc

import (
	"reflect"
)

// component is a registry entry describing how to produce a service.
//
// Exactly one of ctor or instance is set at registration. Resolving a
// constructed component overwrites instance with the newly built value.
type component struct {
	service  reflect.Type
	impl     reflect.Type
	ctor     *constructor
	instance any
}

func newConstructedComponent(service reflect.Type, ctor *constructor) *component {
	return &component{
		service: service,
		impl:    ctor.impl,
		ctor:    ctor,
	}
}

func newInstanceComponent(service reflect.Type, instance any) *component {
	return &component{
		service:  service,
		impl:     reflect.TypeOf(instance),
		instance: instance,
	}
}

func (c *component) String() string {
	return TypeName(c.service)
}
