package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-predictform/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct{}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser.
func New() pkgopenapi.Parser {
	return &Parser{}
}

// requestMediaTypes is the lookup order for request bodies.
var requestMediaTypes = []string{
	"application/json",
	"multipart/form-data",
	"application/x-www-form-urlencoded",
}

// Contract loads doc and returns the request body shape of method at path.
// Local $ref pointers, such as FastAPI's components/schemas entries, are
// resolved by kin-openapi.
func (p *Parser) Contract(ctx context.Context, doc pkgopenapi.Document, method, path string) (pkgopenapi.Contract, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Contract{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Contract{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Contract{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return pkgopenapi.Contract{}, errors.New("openapi parser: document does not contain any paths")
	}

	item := spec.Paths.Find(path)
	if item == nil {
		return pkgopenapi.Contract{}, fmt.Errorf("openapi parser: path %s not found", path)
	}
	method = strings.ToUpper(method)
	operation := item.GetOperation(method)
	if operation == nil {
		return pkgopenapi.Contract{}, fmt.Errorf("openapi parser: %s %s not declared", method, path)
	}

	contract := pkgopenapi.Contract{Method: method, Path: path}
	mediaType, schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return contract, fmt.Errorf("openapi parser: %s %s has no request body schema", method, path)
	}
	contract.MediaType = mediaType
	contract.Properties = properties(schema)
	return contract, nil
}

func requestSchema(body *openapi3.RequestBodyRef) (string, *openapi3.Schema) {
	if body == nil || body.Value == nil {
		return "", nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mediaType, mt.Schema.Value
		}
	}
	return "", nil
}

func properties(schema *openapi3.Schema) []pkgopenapi.Property {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]pkgopenapi.Property, 0, len(names))
	for _, name := range names {
		prop := pkgopenapi.Property{Name: name}
		if ref := schema.Properties[name]; ref != nil && ref.Value != nil {
			prop.Type, prop.Format = schemaType(ref.Value)
		}
		_, prop.Required = required[name]
		out = append(out, prop)
	}
	return out
}

// schemaType reports the effective type of s. Optional fields in FastAPI
// documents are expressed as anyOf [T, null], so the first non-null branch
// wins.
func schemaType(s *openapi3.Schema) (string, string) {
	if t := firstSchemaType(s.Type); t != "" {
		return t, s.Format
	}
	for _, branch := range append(append(openapi3.SchemaRefs{}, s.AnyOf...), s.OneOf...) {
		if branch == nil || branch.Value == nil {
			continue
		}
		if t := firstSchemaType(branch.Value.Type); t != "" && t != "null" {
			return t, branch.Value.Format
		}
	}
	return "", s.Format
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
