package openapi

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-predictform/pkg/model"
)

// Mismatch describes one disagreement between a form and a contract.
type Mismatch struct {
	Field   string
	Problem string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Field, m.Problem)
}

// acceptedTypes lists, per form field type, the schema types that can receive
// the value the translator puts on the wire.
var acceptedTypes = map[model.FieldType][]string{
	model.FieldTypeNumber:  {"number"},
	model.FieldTypeInteger: {"integer", "number"},
	model.FieldTypeBoolean: {"integer", "number", "boolean"},
	model.FieldTypeFile:    {"string"},
}

// Check compares form with contract. It reports fields the backend does not
// declare, wire type incompatibilities, and properties the backend requires
// that the form never sends. An empty result means the form matches.
func Check(form model.FormModel, contract Contract) []Mismatch {
	var out []Mismatch
	collected := make(map[string]struct{}, len(form.Fields))

	for _, field := range form.Fields {
		collected[field.Name] = struct{}{}
		prop, ok := contract.Property(field.Name)
		if !ok {
			out = append(out, Mismatch{Field: field.Name, Problem: "not declared by the backend"})
			continue
		}
		if prop.Type == "" {
			continue
		}
		if !accepts(field.Type, prop.Type) {
			out = append(out, Mismatch{
				Field:   field.Name,
				Problem: fmt.Sprintf("form sends %s, backend expects %s", field.Type, prop.Type),
			})
			continue
		}
		if field.Type == model.FieldTypeFile && prop.Format != "binary" {
			out = append(out, Mismatch{Field: field.Name, Problem: "backend property is not a binary upload"})
		}
	}

	var missing []string
	for _, prop := range contract.Properties {
		if !prop.Required {
			continue
		}
		if _, ok := collected[prop.Name]; !ok {
			missing = append(missing, prop.Name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		out = append(out, Mismatch{Field: name, Problem: "required by the backend but not collected"})
	}
	return out
}

func accepts(fieldType model.FieldType, schemaType string) bool {
	for _, t := range acceptedTypes[fieldType] {
		if t == schemaType {
			return true
		}
	}
	return false
}
