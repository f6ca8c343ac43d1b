package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/pkg/client"
	"github.com/goliatone/go-predictform/pkg/payload"
	"github.com/goliatone/go-predictform/pkg/result"
)

var (
	// ErrBusy is returned when Submit is called while a request is in flight.
	// No request is issued.
	ErrBusy = errors.New("session: submission already in flight")
	// ErrStale is returned when the response arrived after the input changed.
	// The response is discarded and the result stays empty.
	ErrStale = errors.New("session: response discarded, input changed while pending")
)

// Phase is the submission state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
)

func (p Phase) String() string {
	if p == PhasePending {
		return "pending"
	}
	return "idle"
}

// PricePredictor is the transport a PriceSession submits through.
type PricePredictor interface {
	PredictPrice(ctx context.Context, req payload.PriceRequest) (client.PricePrediction, error)
}

// ImageClassifier is the transport an UploadSession submits through.
type ImageClassifier interface {
	Classify(ctx context.Context, body payload.Body) (client.Classification, error)
}

// Option configures a session.
type Option func(*core)

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *core) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// core is the single-slot in-flight gate shared by both session kinds. The
// generation counter is bumped by every input mutation; a response is only
// applied if the generation it was sent under is still current.
type core struct {
	mu         sync.Mutex
	phase      Phase
	generation uint64
	result     result.State
	logger     *zap.Logger
}

func (c *core) init(options []Option) {
	c.logger = zap.NewNop()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
}

// Phase reports whether a request is in flight.
func (c *core) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Busy reports whether the submission trigger should be disabled.
func (c *core) Busy() bool {
	return c.Phase() == PhasePending
}

// Result returns the last outcome.
func (c *core) Result() result.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// begin must be called with mu held. It clears the result, marks the session
// pending, and returns the generation the request belongs to.
func (c *core) begin() uint64 {
	c.result = result.Empty()
	c.phase = PhasePending
	return c.generation
}

// settle marks the session idle and applies outcome unless the input changed
// since begin.
func (c *core) settle(generation uint64, outcome result.State) (result.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseIdle
	if generation != c.generation {
		c.logger.Debug("discarding stale response",
			zap.Uint64("sent_generation", generation),
			zap.Uint64("current_generation", c.generation),
		)
		return c.result, ErrStale
	}
	c.result = outcome
	c.logger.Debug("submission settled", zap.Stringer("kind", outcome.Kind()))
	return c.result, nil
}
