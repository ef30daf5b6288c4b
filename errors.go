package ioc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sectrean/ioc-kit/internal/errors"
)

var (
	// ErrNotRegistered is returned when a service is resolved that has no component.
	ErrNotRegistered = errors.New("service not registered")
	// ErrAlreadyRegistered is returned when a service is registered twice.
	ErrAlreadyRegistered = errors.New("service already registered")
	// ErrNoConstructor is returned when a component type cannot be constructed.
	ErrNoConstructor = errors.New("no public constructor")
	// ErrCircularDependency is returned when a service depends on itself.
	ErrCircularDependency = errors.New("dependency cycle detected")
	// ErrInvalidComponent is returned for malformed registrations.
	ErrInvalidComponent = errors.New("invalid component")
	// ErrDuplicateAssembly is returned when two assemblies share a name in a [Catalog].
	ErrDuplicateAssembly = errors.New("duplicate assembly")
)

// ComponentError describes a registration or resolution failure for a single service.
//
// Use [errors.Is] with one of the Err* sentinels to check the cause.
type ComponentError struct {
	// Service is the service type, or the implementation type for ErrNoConstructor.
	Service reflect.Type
	// Err is the sentinel describing the failure.
	Err error
	// Trail is the dependency chain for ErrCircularDependency.
	Trail []reflect.Type
}

func (e *ComponentError) Error() string {
	name := TypeName(e.Service)

	switch e.Err {
	case ErrNotRegistered:
		return fmt.Sprintf("Component for service of type %s is not registered.", name)
	case ErrAlreadyRegistered:
		return fmt.Sprintf("Component for service of type %s is already registered.", name)
	case ErrNoConstructor:
		return fmt.Sprintf("Cannot register component of type %s it has no public constructor.", name)
	case ErrCircularDependency:
		trail := make([]string, len(e.Trail))
		for i, t := range e.Trail {
			trail[i] = TypeName(t)
		}
		return fmt.Sprintf("Component for service of type %s has a circular dependency: %s.",
			name, strings.Join(trail, " -> "))
	}

	return fmt.Sprintf("service %s: %v", name, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

func invalidComponent(format string, args ...any) error {
	return errors.Errorf("%w: %s", ErrInvalidComponent, fmt.Sprintf(format, args...))
}
