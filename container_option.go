package ioc

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// WithLogger sets the logger used by the Container. The default logger discards everything.
func WithLogger(l *zap.Logger) ContainerOption {
	return newContainerOption(orderConfig, func(c *Container) error {
		if l == nil {
			return errors.New("with logger: logger is nil")
		}

		c.setLogger(l)
		return nil
	})
}

// WithCatalog sets the [Catalog] used by [Container.InstallFromAllAssemblies].
// The default is [DefaultCatalog].
func WithCatalog(cat *Catalog) ContainerOption {
	return newContainerOption(orderConfig, func(c *Container) error {
		if cat == nil {
			return errors.New("with catalog: catalog is nil")
		}

		c.catalog = cat
		return nil
	})
}

// WithComponent registers a component when calling [NewContainer].
// See [Container.RegisterComponent].
func WithComponent(service reflect.Type, impl any) ContainerOption {
	return newContainerOption(orderService, func(c *Container) error {
		return errors.Wrap(c.RegisterComponent(service, impl), "with component")
	})
}

// WithType registers a self-implementing component when calling [NewContainer].
// See [Container.RegisterType].
func WithType(impl any) ContainerOption {
	return newContainerOption(orderService, func(c *Container) error {
		return errors.Wrap(c.RegisterType(impl), "with type")
	})
}

// WithInstance registers a pre-built instance when calling [NewContainer].
// See [Container.RegisterInstance].
func WithInstance(service reflect.Type, instance any) ContainerOption {
	return newContainerOption(orderService, func(c *Container) error {
		return errors.Wrap(c.RegisterInstance(service, instance), "with instance")
	})
}

// WithAssembly registers the types of an assembly when calling [NewContainer].
// See [Container.RegisterAllFromAssembly].
func WithAssembly(asm *Assembly, excludes ...TypeFilter) ContainerOption {
	return newContainerOption(orderService, func(c *Container) error {
		return errors.Wrap(c.RegisterAllFromAssembly(asm, excludes...), "with assembly")
	})
}

// WithInstallers runs installers when calling [NewContainer].
//
// Installers run after all other services have been registered.
func WithInstallers(installers ...Installer) ContainerOption {
	return newContainerOption(orderInstall, func(c *Container) error {
		return errors.Wrap(c.Install(installers...), "with installers")
	})
}

// WithInstallFromAllAssemblies runs every installer of the Container's [Catalog]
// when calling [NewContainer]. See [Container.InstallFromAllAssemblies].
func WithInstallFromAllAssemblies() ContainerOption {
	return newContainerOption(orderInstall, func(c *Container) error {
		return errors.Wrap(c.InstallFromAllAssemblies(), "with install from all assemblies")
	})
}
