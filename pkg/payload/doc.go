// Package payload translates collected form state into the exact wire shapes
// the prediction backend expects: a JSON object for the structured variant and
// a multipart body for the upload variant. Translation is pure; nothing here
// performs I/O.
package payload
