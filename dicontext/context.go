// Package dicontext carries an [ioc.Resolver] on a [context.Context].
package dicontext

import (
	"context"
	"reflect"

	"github.com/sectrean/ioc-kit"
	"github.com/sectrean/ioc-kit/internal/errors"
)

type resolverContextKey struct{}

// WithResolver returns a new [context.Context] that carries the provided [ioc.Resolver].
func WithResolver(ctx context.Context, r ioc.Resolver) context.Context {
	return context.WithValue(ctx, resolverContextKey{}, r)
}

// Resolver returns the [ioc.Resolver] stored on the [context.Context], if present.
func Resolver(ctx context.Context) ioc.Resolver {
	if r, ok := ctx.Value(resolverContextKey{}).(ioc.Resolver); ok {
		return r
	}
	return nil
}

// Resolve a service of type Service from the [ioc.Resolver] stored on the
// [context.Context].
func Resolve[Service any](ctx context.Context) (Service, error) {
	var val Service

	r := Resolver(ctx)
	if r == nil {
		return val, errors.Errorf("resolve %s from context: resolver not found on context",
			ioc.TypeName(reflect.TypeFor[Service]()))
	}

	val, err := ioc.Resolve[Service](ctx, r)
	return val, errors.Wrap(err, "resolve from context")
}

// MustResolve resolves a service of type Service from the [ioc.Resolver] stored on the
// [context.Context]. It panics if the service cannot be resolved.
func MustResolve[Service any](ctx context.Context) Service {
	val, err := Resolve[Service](ctx)
	if err != nil {
		panic(err)
	}
	return val
}
