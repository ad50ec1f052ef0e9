package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/metrics"
)

// BreakerSettings configures BreakerRelay.
type BreakerSettings struct {
	Name string
	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial request.
	OpenTimeout time.Duration
}

// BreakerRelay fails fast while the wrapped relay is known to be down.
// It never retries a failed delivery.
type BreakerRelay struct {
	next Relay
	cb   *gobreaker.CircuitBreaker[struct{}]
	name string
	log  *zap.Logger
}

// NewBreakerRelay wraps next with a circuit breaker.
func NewBreakerRelay(next Relay, s BreakerSettings, log *zap.Logger) *BreakerRelay {
	if s.Name == "" {
		s.Name = "smtp"
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 3
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("mail relay circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerRelay{next: next, cb: cb, name: s.Name, log: log}
}

// Send delivers msg through the wrapped relay unless the circuit is open.
func (b *BreakerRelay) Send(ctx context.Context, msg Message) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Send(ctx, msg)
	})
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return fmt.Errorf("mail relay unavailable: %w", err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return err
	}
}

// State reports the current circuit state.
func (b *BreakerRelay) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
