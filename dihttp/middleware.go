package dihttp

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit"
	"github.com/sectrean/ioc-kit/dicontext"
	"github.com/sectrean/ioc-kit/internal/errors"
)

// NewContainerMiddleware returns middleware that stores r on each request context.
//
// Handlers can then use [dicontext.Resolver], [dicontext.Resolve], or
// [dicontext.MustResolve], or be wrapped with [Handler].
func NewContainerMiddleware(r ioc.Resolver, opts ...Option) (func(http.Handler) http.Handler, error) {
	if r == nil {
		return nil, errors.New("dihttp.NewContainerMiddleware: resolver is nil")
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "dihttp.NewContainerMiddleware")
	}

	return func(next http.Handler) http.Handler {
		return &containerMiddleware{
			r:    r,
			log:  o.log,
			next: next,
		}
	}, nil
}

type containerMiddleware struct {
	r    ioc.Resolver
	log  *zap.Logger
	next http.Handler
}

func (m *containerMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.log.Debug("serving request", zap.String("method", r.Method), zap.String("path", r.URL.Path))

	ctx := dicontext.WithResolver(r.Context(), m.r)
	m.next.ServeHTTP(w, r.WithContext(ctx))
}

// Handler returns an [http.Handler] that resolves H from the request context's
// [ioc.Resolver] and delegates to it.
//
// Every resolve runs the constructors again, so each request is served by a
// newly built H. Use [NewContainerMiddleware] to put the resolver on the context.
func Handler[H http.Handler](opts ...Option) (http.Handler, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "dihttp.Handler")
	}

	return &resolvedHandler[H]{opts: o}, nil
}

// MustHandler is like [Handler] but panics if an option is invalid.
func MustHandler[H http.Handler](opts ...Option) http.Handler {
	h, err := Handler[H](opts...)
	if err != nil {
		panic(err)
	}
	return h
}

type resolvedHandler[H http.Handler] struct {
	opts *options
}

func (h *resolvedHandler[H]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	next, err := dicontext.Resolve[H](r.Context())
	if err != nil {
		h.opts.errorHandler(w, r, err)
		return
	}

	next.ServeHTTP(w, r)
}
