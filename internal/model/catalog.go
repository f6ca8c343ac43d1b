package model

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Catalog indexes form definitions by id.
type Catalog struct {
	forms map[string]FormModel
}

// LoadFS walks fsys and parses every YAML form definition it contains.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{forms: make(map[string]FormModel)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("model: read %s: %w", name, err)
		}

		var form FormModel
		if err := yaml.Unmarshal(data, &form); err != nil {
			return fmt.Errorf("model: parse %s: %w", name, err)
		}
		if err := normaliseForm(&form, name); err != nil {
			return err
		}
		if _, exists := catalog.forms[form.ID]; exists {
			return fmt.Errorf("model: duplicate form %q (file %s)", form.ID, name)
		}
		catalog.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Form returns a copy of the form registered under id.
func (c *Catalog) Form(id string) (FormModel, bool) {
	if c == nil {
		return FormModel{}, false
	}
	form, ok := c.forms[id]
	if !ok {
		return FormModel{}, false
	}
	return cloneForm(form), true
}

// IDs lists the registered form ids in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isFormFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normaliseForm(form *FormModel, source string) error {
	form.ID = strings.TrimSpace(form.ID)
	if form.ID == "" {
		return fmt.Errorf("model: file %s defines a form without id", source)
	}
	form.Method = strings.ToUpper(strings.TrimSpace(form.Method))
	if form.Method == "" {
		form.Method = "POST"
	}
	if len(form.Fields) == 0 {
		return fmt.Errorf("model: form %q has no fields", form.ID)
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("model: form %q field %d has no name", form.ID, i)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: form %q declares field %q twice", form.ID, field.Name)
		}
		seen[field.Name] = struct{}{}
		if !field.Type.Valid() {
			return fmt.Errorf("model: form %q field %q has unsupported type %q", form.ID, field.Name, field.Type)
		}
		if field.Type == FieldTypeBoolean && len(field.Options) > 0 {
			return errors.New("model: boolean field " + field.Name + " cannot declare options")
		}
		field.Label = DefaultLabeler(*field)
	}
	return nil
}

func cloneForm(form FormModel) FormModel {
	out := form
	out.Metadata = cloneStrings(form.Metadata)
	out.Fields = make([]Field, len(form.Fields))
	for i, field := range form.Fields {
		clone := field
		clone.Options = append([]string(nil), field.Options...)
		clone.Metadata = cloneStrings(field.Metadata)
		out.Fields[i] = clone
	}
	return out
}

func cloneStrings(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
