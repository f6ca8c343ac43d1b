package openapi

import "context"

// Parser extracts the request contract of one operation from a document.
type Parser interface {
	Contract(ctx context.Context, doc Document, method, path string) (Contract, error)
}
