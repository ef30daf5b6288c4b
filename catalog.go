package ioc

import (
	"cmp"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// Catalog is the set of assemblies a program makes available to
// [Container.InstallFromAllAssemblies]. It is safe for concurrent use.
type Catalog struct {
	assemblies *xsync.MapOf[string, *Assembly]
}

// DefaultCatalog is used by containers created without [WithCatalog].
// Packages add their assembly to it with [RegisterAssembly].
var DefaultCatalog = NewCatalog()

// NewCatalog creates an empty [Catalog].
func NewCatalog() *Catalog {
	return &Catalog{
		assemblies: xsync.NewMapOf[string, *Assembly](),
	}
}

// Add adds assemblies to the catalog.
//
// Adding the same assembly twice is a no-op. Adding a different assembly with
// the name of one already present returns an error wrapping [ErrDuplicateAssembly].
func (c *Catalog) Add(asms ...*Assembly) error {
	var errs errors.MultiError
	for _, asm := range asms {
		if asm == nil {
			errs = errs.Append(errors.New("assembly is nil"))
			continue
		}

		actual, loaded := c.assemblies.LoadOrStore(asm.name, asm)
		if loaded && actual != asm {
			errs = errs.Append(errors.Wrapf(ErrDuplicateAssembly, "assembly %s", asm.name))
		}
	}

	return errs.Wrap("ioc.Catalog.Add")
}

// Assemblies returns the assemblies sorted by name.
func (c *Catalog) Assemblies() []*Assembly {
	asms := make([]*Assembly, 0, c.assemblies.Size())
	c.assemblies.Range(func(_ string, asm *Assembly) bool {
		asms = append(asms, asm)
		return true
	})

	slices.SortFunc(asms, func(a, b *Assembly) int {
		return cmp.Compare(a.name, b.name)
	})
	return asms
}

// Len returns the number of assemblies.
func (c *Catalog) Len() int {
	return c.assemblies.Size()
}

// RegisterAssembly adds an assembly to the [DefaultCatalog].
// It is intended to be called from init functions and panics on error.
func RegisterAssembly(asm *Assembly) {
	if err := DefaultCatalog.Add(asm); err != nil {
		panic(err)
	}
}
