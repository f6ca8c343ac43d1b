package openapi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/openapi"
)

func priceContract() openapi.Contract {
	return openapi.Contract{
		Method:    "POST",
		Path:      "/predict",
		MediaType: "application/json",
		Properties: []openapi.Property{
			{Name: "ram_capacity", Type: "number", Required: true},
			{Name: "internal_memory", Type: "number", Required: true},
			{Name: "processor_speed", Type: "number", Required: true},
			{Name: "screen_size", Type: "number", Required: true},
			{Name: "battery_capacity", Type: "number", Required: true},
			{Name: "num_cores", Type: "integer", Required: true},
			{Name: "has_5g", Type: "integer", Required: true},
			{Name: "refresh_rate", Type: "number", Required: true},
		},
	}
}

func TestCheck_PriceFormMatches(t *testing.T) {
	if got := openapi.Check(model.PhonePriceForm(), priceContract()); len(got) != 0 {
		t.Fatalf("expected no mismatches, got %v", got)
	}
}

func TestCheck_BooleanAcceptsBooleanSchema(t *testing.T) {
	contract := priceContract()
	for i := range contract.Properties {
		if contract.Properties[i].Name == "has_5g" {
			contract.Properties[i].Type = "boolean"
		}
	}
	if got := openapi.Check(model.PhonePriceForm(), contract); len(got) != 0 {
		t.Fatalf("expected no mismatches, got %v", got)
	}
}

func TestCheck_ReportsDrift(t *testing.T) {
	contract := priceContract()
	contract.Properties = append(contract.Properties[1:], openapi.Property{Name: "weight", Type: "number", Required: true})
	for i := range contract.Properties {
		if contract.Properties[i].Name == "num_cores" {
			contract.Properties[i].Type = "string"
		}
	}

	got := openapi.Check(model.PhonePriceForm(), contract)
	want := []openapi.Mismatch{
		{Field: "ram_capacity", Problem: "not declared by the backend"},
		{Field: "num_cores", Problem: "form sends integer, backend expects string"},
		{Field: "weight", Problem: "required by the backend but not collected"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatches (-want +got):\n%s", diff)
	}
}

func TestCheck_UploadNeedsBinary(t *testing.T) {
	form := model.ImageUploadForm()

	ok := openapi.Contract{Properties: []openapi.Property{{Name: "file", Type: "string", Format: "binary", Required: true}}}
	if got := openapi.Check(form, ok); len(got) != 0 {
		t.Fatalf("expected no mismatches, got %v", got)
	}

	text := openapi.Contract{Properties: []openapi.Property{{Name: "file", Type: "string", Required: true}}}
	got := openapi.Check(form, text)
	want := []openapi.Mismatch{{Field: "file", Problem: "backend property is not a binary upload"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatches (-want +got):\n%s", diff)
	}
	if got[0].String() != "file: backend property is not a binary upload" {
		t.Fatalf("unexpected string %q", got[0].String())
	}
}

func TestParseSource(t *testing.T) {
	src, err := openapi.ParseSource("http://127.0.0.1:8000/openapi.json")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if src.Kind() != openapi.SourceKindURL {
		t.Fatalf("kind = %q", src.Kind())
	}

	src, err = openapi.ParseSource("./schema/openapi.json")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if src.Kind() != openapi.SourceKindFile || src.Location() != "schema/openapi.json" {
		t.Fatalf("unexpected file source %q %q", src.Kind(), src.Location())
	}

	if _, err := openapi.ParseSource("  "); err == nil {
		t.Fatal("expected error for empty source")
	}
	if got := openapi.DocumentURL("http://127.0.0.1:8000/"); got != "http://127.0.0.1:8000/openapi.json" {
		t.Fatalf("document url = %q", got)
	}
}
