package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	pkgopenapi "github.com/goliatone/go-predictform/pkg/openapi"
)

// Loader reads backend OpenAPI documents. Local files and an optional fs.FS
// are read directly; URL sources are fetched with a single GET.
type Loader struct {
	files  fs.FS
	client *http.Client
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader. A caller-supplied HTTP client is copied so the request
// timeout can be applied without mutating it.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	client := &http.Client{Timeout: options.RequestTimeout}
	if options.HTTPClient != nil {
		copied := *options.HTTPClient
		if copied.Timeout == 0 {
			copied.Timeout = options.RequestTimeout
		}
		client = &copied
	}
	return &Loader{files: options.FileSystem, client: client}
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: no source given")
	}
	data, err := l.read(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) read(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		return l.readFS(ctx, src.Location())
	case pkgopenapi.SourceKindURL:
		return loadHTTP(ctx, l.client, src.Location())
	default:
		return nil, fmt.Errorf("openapi loader: cannot read %q sources", src.Kind())
	}
}

func (l *Loader) readFS(ctx context.Context, name string) ([]byte, error) {
	if l.files == nil {
		return nil, fmt.Errorf("openapi loader: %s requested but no filesystem was configured", name)
	}
	if name == "" {
		return nil, errors.New("openapi loader: empty document name")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", name, err)
	}
	return data, nil
}
