package model

// FieldType is the simplified enum for the inputs a prediction form collects.
type FieldType string

const (
	FieldTypeNumber  FieldType = "number"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeFile    FieldType = "file"
)

// Valid reports whether the type is one of the supported field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeNumber, FieldTypeInteger, FieldTypeBoolean, FieldTypeFile:
		return true
	default:
		return false
	}
}

// Field models an individual input inside a prediction form. Options hold the
// enumerated values a user may pick, kept as the literal strings shown in the
// form so coercion happens once, at translation time.
type Field struct {
	Name     string            `json:"name" yaml:"name"`
	Type     FieldType         `json:"type" yaml:"type"`
	Label    string            `json:"label,omitempty" yaml:"label,omitempty"`
	Unit     string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Help     string            `json:"help,omitempty" yaml:"help,omitempty"`
	Required bool              `json:"required" yaml:"required"`
	Options  []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Accept   string            `json:"accept,omitempty" yaml:"accept,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasOption reports whether value is one of the field's enumerated options.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// FormModel is the top-level representation collectors and renderers consume.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	Submit      string            `json:"submit,omitempty" yaml:"submit,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the field with the supplied name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists the field names in declaration order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
