package model

import "strings"

// DefaultLabeler converts a field name into the label shown next to the
// input: underscores become spaces and the unit, when present, is appended in
// parentheses ("ram capacity (GB)").
func DefaultLabeler(field Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	label := strings.TrimSpace(strings.ReplaceAll(field.Name, "_", " "))
	if field.Unit != "" {
		label += " (" + field.Unit + ")"
	}
	return label
}

// OptionLabel renders a single option with its unit ("8 GB").
func OptionLabel(field Field, option string) string {
	if field.Unit == "" {
		return option
	}
	return option + " " + field.Unit
}
