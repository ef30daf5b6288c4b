package ioc

import (
	"context"
	"reflect"
)

// Resolver allows you to resolve services.
//
// Resolver is implemented by *Container, and every Container registers itself
// as the Resolver service. A constructor can take a Resolver argument to
// resolve services later.
type Resolver interface {
	// Contains returns true if the Resolver has a service of the given type.
	Contains(t reflect.Type) bool

	// Resolve returns a service of the given type.
	Resolve(ctx context.Context, t reflect.Type) (any, error)

	// TryResolve returns a service of the given type, or false if it is not registered.
	TryResolve(ctx context.Context, t reflect.Type) (any, bool, error)
}

// Registry is a [Resolver] that can also register services and run installers.
//
// Every Container registers itself as the Registry service, so a constructor
// can take a Registry argument to add services while it runs.
type Registry interface {
	Resolver

	RegisterComponent(service reflect.Type, impl any) error
	RegisterType(impl any) error
	RegisterInstance(service reflect.Type, instance any) error
	RegisterValue(instance any) error
	RegisterAllFromAssembly(asm *Assembly, excludes ...TypeFilter) error
	Install(installers ...Installer) error
	InstallFromAllAssemblies() error
}

// Resolve a service of type T from the [Resolver].
func Resolve[T any](ctx context.Context, r Resolver) (T, error) {
	var val T
	anyVal, err := r.Resolve(ctx, reflect.TypeFor[T]())
	if anyVal != nil {
		val = anyVal.(T)
	}

	return val, err
}

// MustResolve resolves a service of type T from the [Resolver].
//
// If the service cannot be resolved, this function will panic.
func MustResolve[T any](ctx context.Context, r Resolver) T {
	val, err := Resolve[T](ctx, r)
	if err != nil {
		panic(err)
	}
	return val
}

// TryResolve resolves a service of type T from the [Resolver] if it is registered.
func TryResolve[T any](ctx context.Context, r Resolver) (T, bool, error) {
	var val T
	anyVal, ok, err := r.TryResolve(ctx, reflect.TypeFor[T]())
	if anyVal != nil {
		val = anyVal.(T)
	}

	return val, ok, err
}
