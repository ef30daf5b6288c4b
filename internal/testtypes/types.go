package testtypes

import (
	"context"
	"errors"
	"reflect"
)

var (
	TypeStructA    = reflect.TypeFor[StructA]()
	TypeStructAPtr = reflect.TypeFor[*StructA]()
	TypeInterfaceA = reflect.TypeFor[InterfaceA]()

	TypeStructBPtr = reflect.TypeFor[*StructB]()
	TypeInterfaceB = reflect.TypeFor[InterfaceB]()

	TypeStructCPtr = reflect.TypeFor[*StructC]()
	TypeInterfaceC = reflect.TypeFor[InterfaceC]()
)

var ErrConstructor = errors.New("constructor failed")

type InterfaceA interface {
	A()
}

type InterfaceB interface {
	B()
}

type InterfaceC interface {
	C()
}

type StructA struct {
	Tag any
}

func (*StructA) A() {}

type StructB struct {
	A InterfaceA
}

func (*StructB) B() {}

type StructC struct {
	A InterfaceA
	B InterfaceB
}

func (*StructC) C() {}

func NewInterfaceA() InterfaceA {
	return &StructA{}
}

func NewStructAPtr() *StructA {
	return &StructA{}
}

func NewInterfaceB(a InterfaceA) InterfaceB {
	return &StructB{A: a}
}

func NewInterfaceC(a InterfaceA, b InterfaceB) InterfaceC {
	return &StructC{A: a, B: b}
}

func NewStructCPtr(a InterfaceA, b InterfaceB) *StructC {
	return &StructC{A: a, B: b}
}

// NewInterfaceAError always fails.
func NewInterfaceAError() (InterfaceA, error) {
	return nil, ErrConstructor
}

// StructCtx records the context passed to its constructor.
type StructCtx struct {
	Ctx context.Context
}

func NewStructCtx(ctx context.Context) *StructCtx {
	return &StructCtx{Ctx: ctx}
}

// StructVariadic takes an optional InterfaceA.
type StructVariadic struct {
	As []InterfaceA
}

func NewStructVariadic(as ...InterfaceA) *StructVariadic {
	return &StructVariadic{As: as}
}

// CycleX and CycleY depend on each other.
type CycleX struct {
	Y *CycleY
}

type CycleY struct {
	X *CycleX
}

func NewCycleX(y *CycleY) *CycleX {
	return &CycleX{Y: y}
}

func NewCycleY(x *CycleX) *CycleY {
	return &CycleY{X: x}
}

// Counter counts constructor calls.
type Counter struct {
	Calls int
}

func (c *Counter) NewStructA() *StructA {
	c.Calls++
	return &StructA{Tag: c.Calls}
}
