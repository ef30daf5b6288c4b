/*
Package ioc is a small inversion-of-control container.

A [Container] maps service types to components. A component is either a
pre-built instance or a constructor: a function whose parameters are the
services it depends on, or a struct type built from its zero value.
Resolving a service resolves the constructor parameters first, in order.

	c, err := ioc.NewContainer(ioc.WithLogger(logger))
	if err != nil {
		return err
	}

	err = ioc.RegisterComponent[Greeter](c, NewEnglishGreeter)
	if err != nil {
		return err
	}

	greeter, err := ioc.Resolve[Greeter](ctx, c)

Every Resolve builds new instances of the service and its dependencies.
There is no singleton or scoped lifetime; register an instance to share a value.

Registration can be composed with [Installer]s, and a package can describe its
types in an [Assembly] so that [Container.RegisterAllFromAssembly] registers
all of them under the interfaces they implement. Assemblies added to the
[DefaultCatalog] with [RegisterAssembly] are searched for installers by
[Container.InstallFromAllAssemblies].
*/
package ioc
