// Package model defines the typed form definitions consumed by collectors,
// translators, and renderers. Forms are declared in YAML (bundled under
// internal/model/forms) and describe, per field, the kind of value collected
// (number, integer, boolean, or file), the enumerated options a user may pick,
// and the unit shown next to each option. Option values are kept as the
// literal strings presented to the user; coercion into wire types happens in
// package payload.
package model
