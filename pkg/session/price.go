package session

import (
	"context"

	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/payload"
	"github.com/goliatone/go-predictform/pkg/result"
)

// PriceSession drives the structured smartphone form: field selections,
// a guarded submission, and the resulting price or error.
type PriceSession struct {
	core
	predictor PricePredictor
	state     form.State
}

// NewPriceSession starts an idle session over definition.
func NewPriceSession(predictor PricePredictor, definition model.FormModel, options ...Option) *PriceSession {
	s := &PriceSession{
		predictor: predictor,
		state:     form.NewState(definition),
	}
	s.init(options)
	return s
}

// State returns the current form snapshot.
func (s *PriceSession) State() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select records an option for an enumerated field.
func (s *PriceSession) Select(field, raw string) error {
	return s.update(func(st form.State) (form.State, error) {
		return st.Select(field, raw)
	})
}

// SetFlag sets a boolean field.
func (s *PriceSession) SetFlag(field string, value bool) error {
	return s.update(func(st form.State) (form.State, error) {
		return st.SetFlag(field, value)
	})
}

// Toggle flips a boolean field.
func (s *PriceSession) Toggle(field string) error {
	return s.update(func(st form.State) (form.State, error) {
		return st.Toggle(field)
	})
}

func (s *PriceSession) update(fn func(form.State) (form.State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return err
	}
	s.state = next
	s.generation++
	return nil
}

// Submit sends the current selections. It returns ErrBusy without sending
// when a request is already in flight and ErrStale when the input changed
// before the response arrived. Validation, transport, and server failures
// are reported through the returned result state.
func (s *PriceSession) Submit(ctx context.Context) (result.State, error) {
	s.mu.Lock()
	if s.phase == PhasePending {
		current := s.result
		s.mu.Unlock()
		return current, ErrBusy
	}
	snapshot := s.state
	if err := snapshot.Check(); err != nil {
		s.result = result.FromError(err)
		current := s.result
		s.mu.Unlock()
		return current, nil
	}
	generation := s.begin()
	s.mu.Unlock()

	prediction, err := s.predictor.PredictPrice(ctx, payload.Price(snapshot))
	if err != nil {
		return s.settle(generation, result.FromError(err))
	}
	return s.settle(generation, result.FromPrice(prediction))
}
