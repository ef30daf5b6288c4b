package ioc

import (
	"context"
	"reflect"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// Resolve a service of the given type.
//
// Every call runs the constructors of the service and of all its dependencies
// again, so each call returns a new instance. Services registered with an
// instance return that instance.
//
// Returns an error wrapping [ErrNotRegistered] if the service, or any of its
// dependencies, is not registered.
func (c *Container) Resolve(ctx context.Context, t reflect.Type) (any, error) {
	val, _, err := c.resolve(ctx, t, true)
	return val, err
}

// TryResolve resolves a service of the given type if it is registered.
//
// If the service is not registered it returns false and no error.
// Dependencies of a registered service must still be registered.
func (c *Container) TryResolve(ctx context.Context, t reflect.Type) (any, bool, error) {
	return c.resolve(ctx, t, false)
}

func (c *Container) resolve(ctx context.Context, t reflect.Type, required bool) (any, bool, error) {
	if t == nil {
		return nil, false, errors.New("ioc.Container.Resolve: type is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if _, ok := c.components[t]; !ok && !required {
		c.mu.Unlock()
		return nil, false, nil
	}
	res, err := c.plan(t, make(resolveVisitor))
	c.mu.Unlock()

	if err != nil {
		return nil, false, err
	}

	val, err := c.build(ctx, res)
	if err != nil {
		return nil, false, err
	}

	c.log.Debug("resolved service", zap.String("service", TypeName(t)))
	return val, true, nil
}

type argKind uint8

const (
	argService argKind = iota
	argContext
	argOptional
)

// resolution is a snapshot of the components needed to build a service.
type resolution struct {
	comp     *component
	instance any
	args     []argument
}

type argument struct {
	kind argKind
	t    reflect.Type
	// res is nil for context arguments and missing optional arguments.
	res *resolution
}

// plan walks the dependencies of t depth-first in declared order.
// c.mu must be held.
func (c *Container) plan(t reflect.Type, visitor resolveVisitor) (*resolution, error) {
	comp, ok := c.components[t]
	if !ok {
		return nil, &ComponentError{Service: t, Err: ErrNotRegistered}
	}

	res := &resolution{comp: comp}
	if comp.ctor == nil {
		res.instance = comp.instance
		return res, nil
	}

	if !visitor.Enter(comp) {
		return nil, &ComponentError{
			Service: t,
			Err:     ErrCircularDependency,
			Trail:   visitor.Trail(comp),
		}
	}
	defer visitor.Leave(comp)

	deps := comp.ctor.deps
	if len(deps) == 0 {
		return res, nil
	}

	res.args = make([]argument, len(deps))
	for i, dep := range deps {
		arg := argument{t: dep}

		switch {
		case dep == typeContext:
			arg.kind = argContext

		case comp.ctor.variadic && i == len(deps)-1:
			arg.kind = argOptional
			if _, ok := c.components[dep.Elem()]; ok {
				depRes, err := c.plan(dep.Elem(), visitor)
				if err != nil {
					return nil, err
				}
				arg.res = depRes
			}

		default:
			depRes, err := c.plan(dep, visitor)
			if err != nil {
				return nil, err
			}
			arg.res = depRes
		}

		res.args[i] = arg
	}

	return res, nil
}

// build runs the constructors of a planned resolution bottom-up.
// c.mu must not be held.
func (c *Container) build(ctx context.Context, res *resolution) (any, error) {
	comp := res.comp
	if comp.ctor == nil {
		return res.instance, nil
	}

	var args []reflect.Value
	if len(res.args) > 0 {
		args = make([]reflect.Value, len(res.args))
		for i, arg := range res.args {
			val, err := c.buildArg(ctx, arg)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
	}

	val, err := comp.ctor.call(args)
	if err != nil {
		return nil, errors.Wrapf(err, "construct %s", TypeName(comp.impl))
	}

	c.mu.Lock()
	comp.instance = val
	c.mu.Unlock()

	return val, nil
}

func (c *Container) buildArg(ctx context.Context, arg argument) (reflect.Value, error) {
	switch arg.kind {
	case argContext:
		return safeReflectValue(arg.t, ctx), nil

	case argOptional:
		slice := reflect.MakeSlice(arg.t, 0, 1)
		if arg.res == nil {
			return slice, nil
		}

		val, err := c.build(ctx, arg.res)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.Append(slice, safeReflectValue(arg.t.Elem(), val)), nil
	}

	val, err := c.build(ctx, arg.res)
	if err != nil {
		return reflect.Value{}, err
	}
	return safeReflectValue(arg.t, val), nil
}

// resolveVisitor tracks the components on the current resolution path.
type resolveVisitor map[*component]int

// Enter returns false if the component is already on the path.
func (v resolveVisitor) Enter(comp *component) bool {
	if _, exists := v[comp]; exists {
		return false
	}

	v[comp] = len(v)
	return true
}

func (v resolveVisitor) Leave(comp *component) {
	delete(v, comp)
}

// Trail returns the service types on the path, ending with comp again.
func (v resolveVisitor) Trail(comp *component) []reflect.Type {
	trail := make([]reflect.Type, len(v)+1)
	for c, i := range v {
		trail[i] = c.service
	}
	trail[len(v)] = comp.service

	return trail
}
