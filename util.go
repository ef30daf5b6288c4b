package ioc

import (
	"context"
	"reflect"
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// These are commonly used types.
var (
	typeError     = reflect.TypeFor[error]()
	typeContext   = reflect.TypeFor[context.Context]()
	typeInstaller = reflect.TypeFor[Installer]()
	typeResolver  = reflect.TypeFor[Resolver]()
	typeRegistry  = reflect.TypeFor[Registry]()
)

var typeNames = xsync.NewMapOf[reflect.Type, string]()

// TypeName returns the fully-qualified name of t: the package import path
// followed by the type name, e.g. "github.com/acme/app/store.Repository".
// Pointer, slice and array types are prefixed accordingly.
//
// Error messages use TypeName to identify services.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	name, _ := typeNames.LoadOrCompute(t, func() string {
		return qualifiedName(t)
	})
	return name
}

func qualifiedName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + qualifiedName(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + qualifiedName(t.Elem())
		}
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(TypeName(a), TypeName(b))
	})
}

func safeReflectValue(t reflect.Type, val any) reflect.Value {
	if val == nil {
		return reflect.Zero(t)
	}

	return reflect.ValueOf(val)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
