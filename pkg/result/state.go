package result

import (
	"errors"

	"github.com/goliatone/go-predictform/pkg/client"
	"github.com/goliatone/go-predictform/pkg/form"
)

// GenericFailure is shown when the backend answered with a body the client
// could not understand.
const GenericFailure = "Something went wrong. Please check the backend."

// Kind discriminates the ResultState union.
type Kind int

const (
	KindEmpty Kind = iota
	KindSuccess
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "empty"
	}
}

// Summary is a renderable success payload. Implementations are Price and
// Diagnosis.
type Summary interface {
	isSummary()
}

// Price summarises a price prediction.
type Price struct {
	Value float64
}

func (Price) isSummary() {}

// Diagnosis summarises an image classification.
type Diagnosis struct {
	Class           string
	Confidence      string
	ConfidenceValue float64
	Filename        string
}

func (Diagnosis) isSummary() {}

// Tier maps the numeric confidence onto a severity tier.
func (d Diagnosis) Tier() Tier {
	return TierFor(d.ConfidenceValue)
}

// State holds either nothing, the last success, or the last error message.
// The zero value is Empty.
type State struct {
	kind    Kind
	summary Summary
	message string
}

// Empty returns a cleared state.
func Empty() State {
	return State{}
}

// Succeeded wraps a success summary. A nil summary yields Empty.
func Succeeded(summary Summary) State {
	if summary == nil {
		return State{}
	}
	return State{kind: KindSuccess, summary: summary}
}

// Failed wraps an error message.
func Failed(message string) State {
	return State{kind: KindFailure, message: message}
}

// FromPrice converts a transport response into a success state.
func FromPrice(p client.PricePrediction) State {
	return Succeeded(Price{Value: p.PredictedPrice})
}

// FromClassification converts a transport response into a success state.
func FromClassification(c client.Classification) State {
	return Succeeded(Diagnosis{
		Class:           c.Prediction,
		Confidence:      c.Confidence,
		ConfidenceValue: c.ConfidenceValue,
		Filename:        c.Filename,
	})
}

// FromError maps an error from any stage of a submission onto the message
// shown to the user. A nil error yields Empty.
func FromError(err error) State {
	if err == nil {
		return State{}
	}
	return Failed(Message(err))
}

// Message returns the display text for err.
func Message(err error) string {
	var (
		validation   *form.ValidationError
		connectivity *client.ConnectivityError
		server       *client.ServerError
		decode       *client.DecodeError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Error()
	case errors.As(err, &connectivity):
		return connectivity.Error()
	case errors.As(err, &server):
		return server.Error()
	case errors.As(err, &decode):
		return GenericFailure
	default:
		return err.Error()
	}
}

// Kind reports which branch of the union is populated.
func (s State) Kind() Kind {
	return s.kind
}

// Summary returns the success payload, if any.
func (s State) Summary() (Summary, bool) {
	if s.kind != KindSuccess {
		return nil, false
	}
	return s.summary, true
}

// Message returns the error message, if any.
func (s State) Message() (string, bool) {
	if s.kind != KindFailure {
		return "", false
	}
	return s.message, true
}

// IsEmpty reports whether neither a success nor an error is held.
func (s State) IsEmpty() bool {
	return s.kind == KindEmpty
}
