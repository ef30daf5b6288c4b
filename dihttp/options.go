package dihttp

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sectrean/ioc-kit/internal/errors"
)

// ErrorHandler writes an error response to the client.
//
// It is called when a handler cannot be resolved for a request.
// The default handler logs the error and writes a 500 Internal Server Error response.
type ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error)

// Option configures [NewContainerMiddleware] and [Handler].
type Option interface {
	apply(*options) error
}

type options struct {
	log          *zap.Logger
	errorHandler ErrorHandler
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		log: zap.L(),
	}

	var errs errors.MultiError
	for _, opt := range opts {
		errs = errs.Append(opt.apply(o))
	}
	if err := errs.Join(); err != nil {
		return nil, err
	}

	o.log = o.log.Named("dihttp")
	if o.errorHandler == nil {
		o.errorHandler = o.defaultErrorHandler
	}
	return o, nil
}

func (o *options) defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	o.log.Error("error resolving HTTP handler",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type option func(*options) error

func (o option) apply(opts *options) error {
	return o(opts)
}

// WithErrorHandler sets the handler called when a service cannot be resolved.
func WithErrorHandler(h ErrorHandler) Option {
	return option(func(o *options) error {
		if h == nil {
			return errors.New("WithErrorHandler: h is nil")
		}

		o.errorHandler = h
		return nil
	})
}

// WithLogger sets the logger. The default is [zap.L].
func WithLogger(l *zap.Logger) Option {
	return option(func(o *options) error {
		if l == nil {
			return errors.New("WithLogger: l is nil")
		}

		o.log = l
		return nil
	})
}
