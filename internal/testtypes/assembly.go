package testtypes

import (
	"reflect"

	"github.com/sectrean/ioc-kit"
)

// AssemblyName is the name of [Assembly].
const AssemblyName = "github.com/sectrean/ioc-kit/internal/testtypes"

// Assembly lists the fixture types for bulk registration.
var Assembly = ioc.MustAssembly(AssemblyName,
	reflect.TypeFor[MyInterface](),
	reflect.TypeFor[*MyService](),
	reflect.TypeFor[*MyServiceWithInterface](),
	reflect.TypeFor[*MyInstaller](),
	reflect.TypeFor[*Fixture](),
	reflect.TypeFor[Names](),
	NewGreeter,
)

func init() {
	ioc.RegisterAssembly(Assembly)
}

// MyService implements no interfaces.
type MyService struct {
	Name string
}

// MyInterface is implemented by *MyServiceWithInterface.
type MyInterface interface {
	F() string
}

type MyServiceWithInterface struct {
	Name string
}

func (s *MyServiceWithInterface) F() string {
	return "F"
}

// MyInstaller registers every type of [Assembly].
type MyInstaller struct{}

func (*MyInstaller) Install(c *ioc.Container) error {
	return c.RegisterAllFromAssembly(Assembly)
}

// Fixture stands in for a test type that lives in the assembly.
type Fixture struct {
	Name string
}

// Names has no constructor and is skipped by scans.
type Names map[string]string

// Greeter is built by a constructor function with a dependency.
type Greeter struct {
	Service *MyService
}

func NewGreeter(svc *MyService) *Greeter {
	return &Greeter{Service: svc}
}
