package ioc

import (
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// Assembly is a named manifest of the types a package offers for bulk registration.
//
// Go cannot enumerate the types of a package at runtime, so each package lists
// them explicitly:
//
//	var Assembly = ioc.MustAssembly("github.com/acme/app/store",
//		reflect.TypeFor[Repository](),  // capability interface
//		reflect.TypeFor[*memoryRepo](), // built with new(memoryRepo)
//		NewSQLRepository,               // constructor function
//	)
type Assembly struct {
	name       string
	types      []reflect.Type
	interfaces []reflect.Type
	ctors      map[reflect.Type][]*constructor
}

// NewAssembly creates an [Assembly] from the given members.
//
// Each member is one of:
//   - an interface [reflect.Type]: a capability that concrete types are registered as;
//   - a struct or pointer-to-struct [reflect.Type]: a concrete type built from its zero value;
//   - any other [reflect.Type]: a type with no constructor, which scans skip;
//   - a constructor function returning a concrete type (see [Container.RegisterComponent]).
//
// A type may have several constructors. The first one listed is used.
func NewAssembly(name string, members ...any) (*Assembly, error) {
	if name == "" {
		return nil, errors.New("ioc.NewAssembly: name is empty")
	}

	a := &Assembly{
		name:  name,
		ctors: make(map[reflect.Type][]*constructor),
	}

	var errs errors.MultiError
	for _, m := range members {
		errs = errs.Append(a.add(m))
	}

	if err := errs.Wrap("ioc.NewAssembly " + name); err != nil {
		return nil, err
	}

	return a, nil
}

// MustAssembly is like [NewAssembly] but panics on error.
// It is intended for package-level variables.
func MustAssembly(name string, members ...any) *Assembly {
	a, err := NewAssembly(name, members...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Assembly) add(member any) error {
	switch m := member.(type) {
	case nil:
		return invalidComponent("member is nil")

	case reflect.Type:
		if m.Kind() == reflect.Interface {
			if !slices.Contains(a.interfaces, m) {
				a.interfaces = append(a.interfaces, m)
			}
			return nil
		}

		if slices.Contains(a.types, m) {
			return nil
		}
		a.types = append(a.types, m)

		if ctor, ok := newDefaultConstructor(m); ok {
			a.ctors[m] = append(a.ctors[m], ctor)
		}
		return nil
	}

	if reflect.TypeOf(member).Kind() != reflect.Func {
		return invalidComponent("member %T is not a type or a constructor function", member)
	}

	ctor, err := newFuncConstructor(member)
	if err != nil {
		return errors.Wrapf(err, "member %T", member)
	}

	if ctor.impl.Kind() == reflect.Interface {
		return invalidComponent("member %T: constructor must return a concrete type", member)
	}

	if !slices.Contains(a.types, ctor.impl) {
		a.types = append(a.types, ctor.impl)
	}
	a.ctors[ctor.impl] = append(a.ctors[ctor.impl], ctor)

	return nil
}

// Name returns the name of the assembly.
func (a *Assembly) Name() string {
	return a.name
}

// Types returns the non-interface types of the assembly in the order they were listed.
func (a *Assembly) Types() []reflect.Type {
	return slices.Clone(a.types)
}

// Interfaces returns the capability interfaces of the assembly.
func (a *Assembly) Interfaces() []reflect.Type {
	return slices.Clone(a.interfaces)
}

func (a *Assembly) constructor(t reflect.Type) *constructor {
	if ctors := a.ctors[t]; len(ctors) > 0 {
		return ctors[0]
	}
	return nil
}

func (a *Assembly) defaultConstructor(t reflect.Type) *constructor {
	for _, ctor := range a.ctors[t] {
		if ctor.isDefault() {
			return ctor
		}
	}
	return nil
}

// capabilities returns the interfaces t is registered as during a scan.
func (a *Assembly) capabilities(t reflect.Type) []reflect.Type {
	var caps []reflect.Type
	for _, iface := range a.interfaces {
		if t.Implements(iface) {
			caps = append(caps, iface)
		}
	}

	if t.Implements(typeInstaller) && !slices.Contains(caps, typeInstaller) {
		caps = append(caps, typeInstaller)
	}

	return caps
}

// TypeFilter reports whether a type should be excluded from an assembly scan.
type TypeFilter func(t reflect.Type) bool

// ExcludeTypes excludes the given types.
func ExcludeTypes(types ...reflect.Type) TypeFilter {
	return func(t reflect.Type) bool {
		return slices.Contains(types, t)
	}
}

// ExcludeType excludes the type T.
func ExcludeType[T any]() TypeFilter {
	return ExcludeTypes(reflect.TypeFor[T]())
}

// ExcludeImplementing excludes types that implement the iface interface.
func ExcludeImplementing(iface reflect.Type) TypeFilter {
	return func(t reflect.Type) bool {
		return iface.Kind() == reflect.Interface && t.Implements(iface)
	}
}

// RegisterAllFromAssembly registers every constructible type of the assembly.
//
// A type is skipped if any filter returns true for it. A type is registered once
// under each capability interface of the assembly it implements, plus [Installer];
// a type that implements none is registered under its own type. Every registration
// has its own component, so each resolves to an independently built instance.
//
// Services that are already registered are skipped without error; the first
// registration wins.
func (c *Container) RegisterAllFromAssembly(asm *Assembly, excludes ...TypeFilter) error {
	if asm == nil {
		return errors.New("ioc.Container.RegisterAllFromAssembly: assembly is nil")
	}

	var errs errors.MultiError
	for _, t := range asm.types {
		ctor := asm.constructor(t)
		if ctor == nil || excluded(t, excludes) {
			continue
		}

		services := asm.capabilities(t)
		if len(services) == 0 {
			services = []reflect.Type{t}
		}

		for _, service := range services {
			err := c.addComponent(service, false, func() (*component, error) {
				return newConstructedComponent(service, ctor), nil
			})
			errs = errs.Append(err)
		}
	}

	c.log.Debug("registered assembly", zap.String("assembly", asm.name))
	return errs.Wrap("ioc.Container.RegisterAllFromAssembly " + asm.name)
}

func excluded(t reflect.Type, filters []TypeFilter) bool {
	for _, f := range filters {
		if f != nil && f(t) {
			return true
		}
	}
	return false
}
