package form

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-predictform/pkg/model"
)

// DefaultAccept is used when a file field declares no accept list.
const DefaultAccept = "image/"

// File is a selected upload: its original name, the media type it declares,
// and the bytes to send.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// Preview is derived from a selected image. Width and Height are zero when the
// image header could not be decoded.
type Preview struct {
	Format string
	Width  int
	Height int
	Size   int
}

// Upload holds at most one selected file together with its preview. Like
// State it is immutable; Select returns a new value.
type Upload struct {
	field   string
	accept  []string
	file    *File
	preview *Preview
}

// NewUpload returns an empty selection for a field named "file" that accepts
// DefaultAccept.
func NewUpload() Upload {
	return NewUploadFor(model.Field{Name: "file", Type: model.FieldTypeFile})
}

// NewUploadFor returns an empty selection that validates against field's
// Accept list. Entries are comma separated; "image/" and "image/*" match a
// whole family, anything else must match the media type exactly.
func NewUploadFor(field model.Field) Upload {
	name := field.Name
	if name == "" {
		name = "file"
	}
	return Upload{field: name, accept: parseAccept(field.Accept)}
}

// Accepts reports whether mediaType passes the accept list.
func (u Upload) Accepts(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" {
		return false
	}
	accept := u.accept
	if len(accept) == 0 {
		accept = parseAccept(DefaultAccept)
	}
	for _, entry := range accept {
		if strings.HasSuffix(entry, "/") {
			if strings.HasPrefix(mediaType, entry) {
				return true
			}
			continue
		}
		if mediaType == entry {
			return true
		}
	}
	return false
}

// Select replaces the current selection with f. Files whose declared media
// type is not accepted are rejected and the receiver is returned unchanged.
func (u Upload) Select(f File) (Upload, error) {
	if !u.Accepts(f.MediaType) {
		return u, &ValidationError{
			Field:   u.fieldName(),
			Value:   f.Name,
			Message: MessageInvalidImage,
		}
	}

	clone := File{
		Name:      f.Name,
		MediaType: f.MediaType,
		Data:      append([]byte(nil), f.Data...),
	}
	preview := derivePreview(clone.Data)
	return Upload{field: u.field, accept: u.accept, file: &clone, preview: &preview}, nil
}

func (u Upload) fieldName() string {
	if u.field == "" {
		return "file"
	}
	return u.field
}

func parseAccept(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultAccept
	}
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		entry = strings.TrimSuffix(entry, "*")
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// File returns the selected file.
func (u Upload) File() (File, bool) {
	if u.file == nil {
		return File{}, false
	}
	return *u.file, true
}

// Preview returns the preview derived from the selected file.
func (u Upload) Preview() (Preview, bool) {
	if u.preview == nil {
		return Preview{}, false
	}
	return *u.preview, true
}

// Selected reports whether a file is selected.
func (u Upload) Selected() bool {
	return u.file != nil
}

// Check returns a ValidationError when no file is selected.
func (u Upload) Check() error {
	if u.file == nil {
		return &ValidationError{Field: u.fieldName(), Message: MessageNoFile}
	}
	return nil
}

// FileFromPath reads path and declares its media type from the file
// extension, falling back to content sniffing for unknown extensions.
func FileFromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("form: read %s: %w", path, err)
	}
	return File{
		Name:      filepath.Base(path),
		MediaType: DeclaredMediaType(path, data),
		Data:      data,
	}, nil
}

// DeclaredMediaType resolves the media type a browser would declare for a
// file: extension first, content sniffing otherwise. Parameters are dropped.
func DeclaredMediaType(name string, data []byte) string {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mediaType == "" && len(data) > 0 {
		mediaType = http.DetectContentType(data)
	}
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return mediaType
}

func derivePreview(data []byte) Preview {
	preview := Preview{Size: len(data)}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return preview
	}
	preview.Format = format
	preview.Width = cfg.Width
	preview.Height = cfg.Height
	return preview
}
