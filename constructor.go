package ioc

import (
	"reflect"
)

// constructor builds instances of an implementation type.
//
// A constructor either wraps a function whose parameters are the dependencies,
// or, when fn is invalid, builds the zero value of a struct or pointer-to-struct.
type constructor struct {
	impl     reflect.Type
	fn       reflect.Value
	deps     []reflect.Type
	variadic bool
	hasErr   bool
}

// newConstructor accepts a reflect.Type or a constructor function.
func newConstructor(impl any) (*constructor, error) {
	switch impl := impl.(type) {
	case nil:
		return nil, invalidComponent("implementation is nil")
	case reflect.Type:
		ctor, ok := newDefaultConstructor(impl)
		if !ok {
			return nil, &ComponentError{Service: impl, Err: ErrNoConstructor}
		}
		return ctor, nil
	}

	if reflect.TypeOf(impl).Kind() != reflect.Func {
		return nil, invalidComponent("%T is not a type or a constructor function", impl)
	}

	return newFuncConstructor(impl)
}

func newDefaultConstructor(t reflect.Type) (*constructor, bool) {
	switch {
	case t.Kind() == reflect.Struct:
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
	default:
		return nil, false
	}

	return &constructor{impl: t}, true
}

func newFuncConstructor(fn any) (*constructor, error) {
	fnType := reflect.TypeOf(fn)
	fnVal := reflect.ValueOf(fn)

	if fnVal.IsNil() {
		return nil, invalidComponent("constructor %s is nil", fnType)
	}

	ctor := &constructor{
		fn:       fnVal,
		variadic: fnType.IsVariadic(),
	}

	// Get the return type
	switch {
	case fnType.NumOut() == 1:
	case fnType.NumOut() == 2 && fnType.Out(1) == typeError:
		ctor.hasErr = true
	default:
		return nil, invalidComponent("constructor %s must return Service or (Service, error)", fnType)
	}

	ctor.impl = fnType.Out(0)
	if ctor.impl == typeError || ctor.impl == typeContext {
		return nil, invalidComponent("constructor %s returns an invalid service type", fnType)
	}

	if fnType.NumIn() > 0 {
		ctor.deps = make([]reflect.Type, fnType.NumIn())
		for i := range ctor.deps {
			ctor.deps[i] = fnType.In(i)
		}
	}

	return ctor, nil
}

// isDefault reports whether the constructor takes no dependencies.
func (k *constructor) isDefault() bool {
	return len(k.deps) == 0
}

// call invokes the constructor with dependencies in declared order.
func (k *constructor) call(args []reflect.Value) (any, error) {
	if !k.fn.IsValid() {
		if k.impl.Kind() == reflect.Ptr {
			return reflect.New(k.impl.Elem()).Interface(), nil
		}
		return reflect.New(k.impl).Elem().Interface(), nil
	}

	var out []reflect.Value
	if k.variadic {
		out = k.fn.CallSlice(args)
	} else {
		out = k.fn.Call(args)
	}

	val := out[0].Interface()

	if k.hasErr {
		if err, ok := out[1].Interface().(error); ok && err != nil {
			return val, err
		}
	}

	if isNil(val) {
		return nil, invalidComponent("constructor %s returned nil", k.fn.Type())
	}

	return val, nil
}
