package verifykit

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/optimode/verifykit/types"
)

// ControllerOption configures a Controller at construction.
type ControllerOption func(*Controller)

// WithDebounce sets the quiet period between the last Trigger call and the
// request it issues. Zero disables the delay: the request is issued
// immediately on a fresh goroutine. Default: DefaultDebounce.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.debounce = d
	}
}

// WithResultHandler registers a callback invoked when a request resolves
// and has not been superseded. It runs on the request's goroutine.
func WithResultHandler(fn func(types.Result)) ControllerOption {
	return func(c *Controller) {
		c.onResult = fn
	}
}

// WithErrorHandler registers a callback invoked when a request fails and
// has not been superseded. Cancellations never reach it.
func WithErrorHandler(fn func(error)) ControllerOption {
	return func(c *Controller) {
		c.onError = fn
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = l
	}
}
