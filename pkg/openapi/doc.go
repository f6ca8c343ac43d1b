// Package openapi checks a prediction form against the request contract the
// backend publishes in its OpenAPI document. Loaders fetch the raw document
// from a file, an fs.FS, or a URL; parsers (implemented under
// internal/openapi with kin-openapi) extract the request schema of one
// operation; Check compares that schema with the form's fields.
package openapi
