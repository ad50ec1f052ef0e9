// Package service implements the portfolio content rules on top of the store
// and mail relay: placeholder payloads for empty listings, singleton profile
// semantics, list ordering and contact-form delivery.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/apperr"
)

// Option configures a service.
type Option func(*core)

// WithTimeout bounds every store call made by the service. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *core) { c.timeout = d }
}

// WithLogger sets the logger used to report dependency failures.
func WithLogger(log *zap.Logger) Option {
	return func(c *core) {
		if log != nil {
			c.log = log
		}
	}
}

// core holds what every service shares.
type core struct {
	timeout time.Duration
	log     *zap.Logger
}

func newCore(opts []Option) core {
	c := core{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c core) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// fail passes classified errors through and turns anything else into a
// logged dependency error.
func (c core) fail(op string, err error) error {
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	c.log.Error(op, zap.Error(err))
	return apperr.Dependency(op, err)
}
