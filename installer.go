package ioc

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// Installer registers a group of services with a [Container].
//
// Installers make startup modular: each package can ship an Installer that
// registers its own services, and the program installs them all.
type Installer interface {
	Install(c *Container) error
}

// InstallerFunc adapts a function to the [Installer] interface.
type InstallerFunc func(c *Container) error

// Install calls f(c).
func (f InstallerFunc) Install(c *Container) error {
	return f(c)
}

// Install runs the installers in order, passing the Container.
// It stops at the first error.
func (c *Container) Install(installers ...Installer) error {
	for _, installer := range installers {
		if installer == nil {
			return errors.New("ioc.Container.Install: installer is nil")
		}

		name := fmt.Sprintf("%T", installer)
		c.log.Debug("installing", zap.String("installer", name))

		if err := installer.Install(c); err != nil {
			return errors.Wrapf(err, "install %s", name)
		}
	}

	return nil
}

// InstallFromAllAssemblies runs every installer found in the Container's [Catalog].
//
// Assemblies are visited in name order and types in the order they were listed.
// Each type implementing [Installer] is built with its first constructor that
// takes no arguments. Types listed without any constructor are skipped; an
// installer type whose constructors all take arguments is an error wrapping
// [ErrNoConstructor].
func (c *Container) InstallFromAllAssemblies() error {
	installers, err := discoverInstallers(c.catalog)
	if err != nil {
		return errors.Wrap(err, "ioc.Container.InstallFromAllAssemblies")
	}

	c.log.Debug("discovered installers", zap.Int("installers", len(installers)))
	return c.Install(installers...)
}

func discoverInstallers(cat *Catalog) ([]Installer, error) {
	var installers []Installer
	seen := make(map[reflect.Type]struct{})

	for _, asm := range cat.Assemblies() {
		for _, t := range asm.types {
			if _, ok := seen[t]; ok || !t.Implements(typeInstaller) {
				continue
			}
			// Listed types without a constructor cannot be instantiated.
			if asm.constructor(t) == nil {
				continue
			}
			seen[t] = struct{}{}

			ctor := asm.defaultConstructor(t)
			if ctor == nil {
				return nil, &ComponentError{Service: t, Err: ErrNoConstructor}
			}

			val, err := ctor.call(nil)
			if err != nil {
				return nil, errors.Wrapf(err, "construct %s", TypeName(t))
			}

			installer, ok := val.(Installer)
			if !ok {
				return nil, invalidComponent("constructor for %s returned nil", TypeName(t))
			}
			installers = append(installers, installer)
		}
	}

	return installers, nil
}
