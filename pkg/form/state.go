package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-predictform/pkg/model"
)

// State is the set of values currently selected in a structured form. It is
// an immutable transition record: every mutation returns a new State and
// leaves the receiver untouched, so a snapshot taken at submission time cannot
// be altered by later input.
type State struct {
	form   model.FormModel
	values map[string]any
}

// NewState seeds a State for form. Option fields start unset and boolean
// fields start false.
func NewState(form model.FormModel) State {
	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeBoolean {
			values[field.Name] = false
		}
	}
	return State{form: form, values: values}
}

// Form returns the definition the state was created for.
func (s State) Form() model.FormModel {
	return s.form
}

// Select records raw as the value of an enumerated field. Values outside the
// field's option set are rejected with a ValidationError and the receiver is
// returned unchanged.
func (s State) Select(name, raw string) (State, error) {
	field, ok := s.form.Field(name)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	switch field.Type {
	case model.FieldTypeNumber, model.FieldTypeInteger:
	default:
		return s, fmt.Errorf("%w: %s is %s", ErrFieldType, name, field.Type)
	}

	value := strings.TrimSpace(raw)
	if !field.HasOption(value) {
		return s, &ValidationError{
			Field:   name,
			Value:   raw,
			Message: fmt.Sprintf("%s: %q is not one of %s", model.Label(field), raw, strings.Join(field.Options, ", ")),
		}
	}
	return s.with(name, value), nil
}

// SetFlag sets a boolean field.
func (s State) SetFlag(name string, value bool) (State, error) {
	field, ok := s.form.Field(name)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if field.Type != model.FieldTypeBoolean {
		return s, fmt.Errorf("%w: %s is %s", ErrFieldType, name, field.Type)
	}
	return s.with(name, value), nil
}

// Toggle flips a boolean field.
func (s State) Toggle(name string) (State, error) {
	return s.SetFlag(name, !s.Flag(name))
}

// Value returns the raw value stored for name.
func (s State) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Option returns the selected option string for an enumerated field.
func (s State) Option(name string) (string, bool) {
	v, ok := s.values[name].(string)
	return v, ok
}

// Flag returns the value of a boolean field; unset reads as false.
func (s State) Flag(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Values returns a copy of the collected values.
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Missing lists the required fields that are still unset, in form order.
func (s State) Missing() []model.Field {
	var out []model.Field
	for _, field := range s.form.Fields {
		if !field.Required {
			continue
		}
		if _, ok := s.values[field.Name]; !ok {
			out = append(out, field)
		}
	}
	return out
}

// Complete reports whether every required field has a value.
func (s State) Complete() bool {
	return len(s.Missing()) == 0
}

// Check returns a ValidationError naming the unset required fields.
func (s State) Check() error {
	missing := s.Missing()
	if len(missing) == 0 {
		return nil
	}
	labels := make([]string, 0, len(missing))
	for _, field := range missing {
		labels = append(labels, model.Label(field))
	}
	return missingError(labels)
}

func (s State) with(name string, value any) State {
	values := make(map[string]any, len(s.values)+1)
	for k, v := range s.values {
		values[k] = v
	}
	values[name] = value
	return State{form: s.form, values: values}
}
