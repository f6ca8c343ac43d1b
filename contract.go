// Package predictform exposes the top-level helpers for checking the bundled
// prediction forms against a backend's published OpenAPI contract.
package predictform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-predictform/pkg/model"
	pkgopenapi "github.com/goliatone/go-predictform/pkg/openapi"
)

// ContractReport pairs a form with the contract it was checked against.
type ContractReport struct {
	FormID     string
	Contract   pkgopenapi.Contract
	Mismatches []pkgopenapi.Mismatch
}

// OK reports whether the form matches the contract.
func (r ContractReport) OK() bool {
	return len(r.Mismatches) == 0
}

// CheckContract loads the OpenAPI document at source, extracts the request
// contract of the form's endpoint and compares the two.
func CheckContract(ctx context.Context, source pkgopenapi.Source, form model.FormModel, options ...pkgopenapi.LoaderOption) (ContractReport, error) {
	doc, err := NewLoader(options...).Load(ctx, source)
	if err != nil {
		return ContractReport{}, err
	}
	return CheckDocument(ctx, doc, form)
}

// CheckDocument is CheckContract for a pre-loaded document.
func CheckDocument(ctx context.Context, doc pkgopenapi.Document, form model.FormModel) (ContractReport, error) {
	if form.Endpoint == "" {
		return ContractReport{}, fmt.Errorf("predictform: form %q has no endpoint", form.ID)
	}
	contract, err := NewParser().Contract(ctx, doc, form.Method, form.Endpoint)
	if err != nil {
		return ContractReport{}, err
	}
	return ContractReport{
		FormID:     form.ID,
		Contract:   contract,
		Mismatches: pkgopenapi.Check(form, contract),
	}, nil
}
