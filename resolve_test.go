package ioc_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectrean/ioc-kit"
	"github.com/sectrean/ioc-kit/internal/testtypes"
	"github.com/sectrean/ioc-kit/internal/testutils"
)

func Test_Container_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("not registered", func(t *testing.T) {
		c := newContainer(t)

		svc, err := c.Resolve(ctx, reflect.TypeFor[*testtypes.MyService]())
		testutils.LogError(t, err)

		assert.Nil(t, svc)
		assert.ErrorIs(t, err, ioc.ErrNotRegistered)
		assert.EqualError(t, err, "Component for service of type "+myServiceName+" is not registered.")
	})

	t.Run("not registered generic", func(t *testing.T) {
		c := newContainer(t)

		svc, err := ioc.Resolve[*testtypes.MyService](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, svc)
		assert.EqualError(t, err, "Component for service of type "+myServiceName+" is not registered.")
	})

	t.Run("nil type", func(t *testing.T) {
		c := newContainer(t)

		_, err := c.Resolve(ctx, nil)
		testutils.LogError(t, err)

		assert.EqualError(t, err, "ioc.Container.Resolve: type is nil")
	})

	t.Run("dependencies", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA),
			ioc.WithComponent(testtypes.TypeInterfaceB, testtypes.NewInterfaceB),
			ioc.WithComponent(testtypes.TypeInterfaceC, testtypes.NewInterfaceC),
		)
		require.NoError(t, err)

		svc, err := ioc.Resolve[testtypes.InterfaceC](ctx, c)
		require.NoError(t, err)

		structC := svc.(*testtypes.StructC)
		assert.NotNil(t, structC.A)
		require.NotNil(t, structC.B)
		assert.NotNil(t, structC.B.(*testtypes.StructB).A)

		// Every dependency is built for its own use
		assert.NotSame(t, structC.A, structC.B.(*testtypes.StructB).A)
	})

	t.Run("new instance every time", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA),
			ioc.WithComponent(testtypes.TypeInterfaceB, testtypes.NewInterfaceB),
			ioc.WithType(testtypes.NewStructCPtr),
		)
		require.NoError(t, err)

		c1, err := ioc.Resolve[*testtypes.StructC](ctx, c)
		require.NoError(t, err)
		c2, err := ioc.Resolve[*testtypes.StructC](ctx, c)
		require.NoError(t, err)

		assert.NotSame(t, c1, c2)
		assert.NotSame(t, c1.A, c2.A)
		assert.NotSame(t, c1.B, c2.B)
	})

	t.Run("constructor runs on every resolve", func(t *testing.T) {
		counter := &testtypes.Counter{}
		c, err := ioc.NewContainer(
			ioc.WithType(counter.NewStructA),
		)
		require.NoError(t, err)

		for range 3 {
			_, err := ioc.Resolve[*testtypes.StructA](ctx, c)
			require.NoError(t, err)
		}

		assert.Equal(t, 3, counter.Calls)
	})

	t.Run("cache holds last instance", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(testtypes.NewStructAPtr),
		)
		require.NoError(t, err)

		_, ok := c.Cached(testtypes.TypeStructAPtr)
		assert.False(t, ok)

		a1, err := ioc.Resolve[*testtypes.StructA](ctx, c)
		require.NoError(t, err)
		a2, err := ioc.Resolve[*testtypes.StructA](ctx, c)
		require.NoError(t, err)

		cached, ok := c.Cached(testtypes.TypeStructAPtr)
		assert.True(t, ok)
		assert.Same(t, a2, cached)
		assert.NotSame(t, a1, cached)
	})

	t.Run("dependency not registered", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceB, testtypes.NewInterfaceB),
		)
		require.NoError(t, err)

		b, err := ioc.Resolve[testtypes.InterfaceB](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, b)
		assert.ErrorIs(t, err, ioc.ErrNotRegistered)
		assert.EqualError(t, err, "Component for service of type "+
			"github.com/sectrean/ioc-kit/internal/testtypes.InterfaceA is not registered.")
	})

	t.Run("circular dependency", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(testtypes.NewCycleX),
			ioc.WithType(testtypes.NewCycleY),
		)
		require.NoError(t, err)

		x, err := ioc.Resolve[*testtypes.CycleX](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, x)
		assert.ErrorIs(t, err, ioc.ErrCircularDependency)
		assert.EqualError(t, err, "Component for service of type "+
			"*github.com/sectrean/ioc-kit/internal/testtypes.CycleX has a circular dependency: "+
			"*github.com/sectrean/ioc-kit/internal/testtypes.CycleX -> "+
			"*github.com/sectrean/ioc-kit/internal/testtypes.CycleY -> "+
			"*github.com/sectrean/ioc-kit/internal/testtypes.CycleX.")
	})

	t.Run("constructor error", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceAError),
			ioc.WithComponent(testtypes.TypeInterfaceB, testtypes.NewInterfaceB),
		)
		require.NoError(t, err)

		b, err := ioc.Resolve[testtypes.InterfaceB](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, b)
		assert.ErrorIs(t, err, testtypes.ErrConstructor)
		assert.EqualError(t, err, "construct github.com/sectrean/ioc-kit/internal/testtypes.InterfaceA: constructor failed")

		_, ok := c.Cached(testtypes.TypeInterfaceB)
		assert.False(t, ok)
	})

	t.Run("constructor returns nil", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(func() (*testtypes.StructA, error) {
				return nil, nil
			}),
		)
		require.NoError(t, err)

		a, err := ioc.Resolve[*testtypes.StructA](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, a)
		assert.ErrorIs(t, err, ioc.ErrInvalidComponent)
		assert.EqualError(t, err, "construct *github.com/sectrean/ioc-kit/internal/testtypes.StructA: "+
			"invalid component: constructor func() (*testtypes.StructA, error) returned nil")
	})

	t.Run("constructor returns nil interface", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, func() testtypes.InterfaceA {
				return nil
			}),
		)
		require.NoError(t, err)

		_, err = ioc.Resolve[testtypes.InterfaceA](ctx, c)
		testutils.LogError(t, err)

		assert.ErrorIs(t, err, ioc.ErrInvalidComponent)
	})

	t.Run("context", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(testtypes.NewStructCtx),
		)
		require.NoError(t, err)

		ctx := testutils.ContextWithTestValue(ctx, "value")
		svc, err := ioc.Resolve[*testtypes.StructCtx](ctx, c)
		require.NoError(t, err)

		assert.Equal(t, "value", testutils.TestValue(svc.Ctx))
	})

	t.Run("variadic dependency not registered", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(testtypes.NewStructVariadic),
		)
		require.NoError(t, err)

		svc, err := ioc.Resolve[*testtypes.StructVariadic](ctx, c)
		require.NoError(t, err)
		assert.Empty(t, svc.As)
	})

	t.Run("variadic dependency registered", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(testtypes.NewStructVariadic),
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA),
		)
		require.NoError(t, err)

		svc, err := ioc.Resolve[*testtypes.StructVariadic](ctx, c)
		require.NoError(t, err)
		assert.Len(t, svc.As, 1)
	})

	t.Run("constructor uses resolver", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA),
			ioc.WithType(func(r ioc.Resolver) (*testtypes.StructB, error) {
				a, err := ioc.Resolve[testtypes.InterfaceA](ctx, r)
				return &testtypes.StructB{A: a}, err
			}),
		)
		require.NoError(t, err)

		b, err := ioc.Resolve[*testtypes.StructB](ctx, c)
		require.NoError(t, err)
		assert.NotNil(t, b.A)
	})

	t.Run("constructor registers through registry", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithType(func(r ioc.Registry) (*testtypes.StructB, error) {
				if !r.Contains(testtypes.TypeInterfaceA) {
					err := r.RegisterComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA)
					if err != nil {
						return nil, err
					}
				}

				a, err := ioc.Resolve[testtypes.InterfaceA](ctx, r)
				return &testtypes.StructB{A: a}, err
			}),
		)
		require.NoError(t, err)
		assert.False(t, c.Contains(testtypes.TypeInterfaceA))

		b, err := ioc.Resolve[*testtypes.StructB](ctx, c)
		require.NoError(t, err)
		assert.NotNil(t, b.A)
		assert.True(t, c.Contains(testtypes.TypeInterfaceA))
	})

	t.Run("concurrent", func(t *testing.T) {
		c, err := ioc.NewContainer(
			ioc.WithComponent(testtypes.TypeInterfaceA, testtypes.NewInterfaceA),
			ioc.WithComponent(testtypes.TypeInterfaceB, testtypes.NewInterfaceB),
			ioc.WithComponent(testtypes.TypeInterfaceC, testtypes.NewInterfaceC),
		)
		require.NoError(t, err)

		results := make([]testtypes.InterfaceC, 50)
		testutils.RunParallel(len(results), func(i int) {
			svc, err := ioc.Resolve[testtypes.InterfaceC](ctx, c)
			assert.NoError(t, err)
			results[i] = svc
		})

		for _, svc := range results {
			assert.NotNil(t, svc)
		}
	})
}

func Test_Container_TryResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("not registered", func(t *testing.T) {
		c := newContainer(t)

		svc, ok, err := c.TryResolve(ctx, reflect.TypeFor[*testtypes.MyService]())
		assert.Nil(t, svc)
		assert.False(t, ok)
		assert.NoError(t, err)
	})

	t.Run("registered", func(t *testing.T) {
		c := newContainer(t)
		require.NoError(t, ioc.RegisterSelf[*testtypes.MyService](c))

		svc, ok, err := ioc.TryResolve[*testtypes.MyService](ctx, c)
		assert.NotNil(t, svc)
		assert.True(t, ok)
		assert.NoError(t, err)
	})

	t.Run("dependency not registered", func(t *testing.T) {
		c := newContainer(t)
		require.NoError(t, ioc.RegisterComponent[testtypes.InterfaceB](c, testtypes.NewInterfaceB))

		svc, ok, err := ioc.TryResolve[testtypes.InterfaceB](ctx, c)
		testutils.LogError(t, err)

		assert.Nil(t, svc)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ioc.ErrNotRegistered)
	})
}

func Test_MustResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("registered", func(t *testing.T) {
		c := newContainer(t)
		require.NoError(t, ioc.RegisterSelf[*testtypes.MyService](c))

		assert.NotPanics(t, func() {
			svc := ioc.MustResolve[*testtypes.MyService](ctx, c)
			assert.NotNil(t, svc)
		})
	})

	t.Run("not registered", func(t *testing.T) {
		c := newContainer(t)

		assert.PanicsWithError(t, "Component for service of type "+myServiceName+" is not registered.", func() {
			ioc.MustResolve[*testtypes.MyService](ctx, c)
		})
	})
}
