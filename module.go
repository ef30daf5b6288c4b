package ioc

// A Module is a collection of container options.
// It can be used to export a re-usable group of related registrations.
//
// Example:
//
//	var StoreModule = ioc.Module{
//		ioc.WithType(NewDB),
//		ioc.WithComponent(reflect.TypeFor[Repository](), NewRepository),
//		ioc.WithInstallers(migrations.Installer{}),
//	}
type Module []ContainerOption

func (Module) applyContainer(*Container) error { return nil }
func (Module) order() optionOrder              { return orderService }

// WithModule applies the options in a [Module] when calling [NewContainer].
//
// Example:
//
//	c, err := ioc.NewContainer(
//		ioc.WithModule(StoreModule),
//		ioc.WithType(NewHandler), // NewHandler(*zap.Logger, Repository) *Handler
//	)
func WithModule(m Module) ContainerOption {
	return m
}

func flattenModules(opts []ContainerOption) []ContainerOption {
	flat := make([]ContainerOption, 0, len(opts))
	for _, opt := range opts {
		if mod, ok := opt.(Module); ok {
			flat = append(flat, flattenModules(mod)...)
			continue
		}
		flat = append(flat, opt)
	}

	return flat
}
