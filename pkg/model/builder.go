package model

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-predictform/internal/model"
)

const (
	// PhonePriceFormID identifies the structured smartphone specification form.
	PhonePriceFormID = "phone_price"
	// ImageUploadFormID identifies the single image upload form.
	ImageUploadFormID = "image_upload"
)

// Catalog resolves form definitions by id.
type Catalog interface {
	Form(id string) (FormModel, bool)
	IDs() []string
}

// LoadCatalog parses the YAML form definitions found in fsys. A nil fsys loads
// the bundled definitions.
func LoadCatalog(fsys fs.FS) (Catalog, error) {
	if fsys == nil {
		fsys = model.EmbeddedFS()
	}
	return model.LoadFS(fsys)
}

// PhonePriceForm returns the bundled smartphone price form.
func PhonePriceForm() FormModel {
	return mustForm(PhonePriceFormID)
}

// ImageUploadForm returns the bundled image classification form.
func ImageUploadForm() FormModel {
	return mustForm(ImageUploadFormID)
}

// Label returns the display label for field.
func Label(field Field) string {
	return model.DefaultLabeler(field)
}

// OptionLabel renders an option value together with the field unit.
func OptionLabel(field Field, option string) string {
	return model.OptionLabel(field, option)
}

func mustForm(id string) FormModel {
	catalog, err := model.LoadFS(model.EmbeddedFS())
	if err != nil {
		// The bundled definitions are covered by tests.
		panic(fmt.Sprintf("model: load bundled forms: %v", err))
	}
	form, ok := catalog.Form(id)
	if !ok {
		panic(fmt.Sprintf("model: bundled form %q missing", id))
	}
	return form
}
