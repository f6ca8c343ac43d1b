package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-predictform"
	"github.com/goliatone/go-predictform/pkg/model"
	pkgopenapi "github.com/goliatone/go-predictform/pkg/openapi"
)

func newContractCmd(a *app) *cobra.Command {
	var (
		source string
		formID string
	)
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Check a bundled form against the backend's OpenAPI document",
		Example: `  predict-cli contract
  predict-cli contract --form image_upload --source ./openapi.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContract(cmd, a, source, formID)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "OpenAPI document path or URL (default: <base-url>/openapi.json)")
	cmd.Flags().StringVar(&formID, "form", model.PhonePriceFormID, "Form to check: phone_price or image_upload")
	return cmd
}

func runContract(cmd *cobra.Command, a *app, source, formID string) error {
	catalog, err := model.LoadCatalog(nil)
	if err != nil {
		return err
	}
	definition, ok := catalog.Form(formID)
	if !ok {
		return fmt.Errorf("unknown form %q (expected one of %v)", formID, catalog.IDs())
	}
	// The configured path wins over the bundled endpoint.
	definition.Endpoint = a.cfg.Path

	if source == "" {
		source = pkgopenapi.DocumentURL(a.cfg.BaseURL)
	}
	src, err := pkgopenapi.ParseSource(source)
	if err != nil {
		return err
	}

	a.logger.Debug("checking contract", zap.String("source", src.Location()), zap.String("form", formID))
	report, err := predictform.CheckContract(cmd.Context(), src, definition,
		pkgopenapi.WithRequestTimeout(a.cfg.Timeout))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.OK() {
		fmt.Fprintf(out, "%s matches %s %s (%s)\n", report.FormID, report.Contract.Method, report.Contract.Path, report.Contract.MediaType)
		return nil
	}
	fmt.Fprintf(out, "%s drifts from %s %s:\n", report.FormID, report.Contract.Method, report.Contract.Path)
	for _, m := range report.Mismatches {
		fmt.Fprintf(out, "  - %s\n", m)
	}
	return errReported
}
