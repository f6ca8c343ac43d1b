package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/session"
)

func newClassifyCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:     "classify",
		Short:   "Classify an MRI scan image",
		Example: "  predict-cli classify --file scan.png",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, a, path)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Image to upload (prompted for when empty)")
	return cmd
}

func runClassify(cmd *cobra.Command, a *app, path string) error {
	ctx := cmd.Context()
	definition := model.ImageUploadForm()
	s := session.NewUploadSession(a.client(), definition, session.WithLogger(a.logger))

	if strings.TrimSpace(path) == "" {
		field, _ := definition.Field("file")
		if err := a.collector.CollectUpload(ctx, s, field); err != nil {
			return err
		}
	} else {
		file, err := form.FileFromPath(path)
		if err != nil {
			return err
		}
		if err := s.SelectFile(file); err != nil {
			if form.IsValidation(err) {
				return a.report(cmd, s.Result())
			}
			return err
		}
	}

	state, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	return a.report(cmd, state)
}
