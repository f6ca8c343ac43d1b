package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/session"
)

// FileOpener turns a path typed at the prompt into a selectable file.
type FileOpener func(path string) (form.File, error)

// Collector walks a form definition and feeds the answers into a session,
// one field at a time, the way a user fills the form by hand.
type Collector struct {
	driver   PromptDriver
	theme    Theme
	pageSize int
	logger   *zap.Logger
	open     FileOpener
}

// New constructs a Collector with defaults (survey driver, os file opener).
func New(options ...Option) *Collector {
	c := &Collector{
		driver:   newSurveyDriver(),
		pageSize: 12,
		logger:   zap.NewNop(),
		open:     form.FileFromPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// CollectPrice prompts for the named fields of the session's form, or for
// every field when names is empty. Enumerated fields use a select prompt and
// boolean fields a confirm prompt.
func (c *Collector) CollectPrice(ctx context.Context, s *session.PriceSession, names ...string) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if s == nil {
		return errors.New("tui: session is nil")
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	for _, field := range s.State().Form().Fields {
		if len(wanted) > 0 {
			if _, ok := wanted[field.Name]; !ok {
				continue
			}
		}
		if err := c.promptField(ctx, s, field); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) promptField(ctx context.Context, s *session.PriceSession, field model.Field) error {
	switch field.Type {
	case model.FieldTypeBoolean:
		return c.promptBoolean(ctx, s, field)
	case model.FieldTypeNumber, model.FieldTypeInteger:
		return c.promptOption(ctx, s, field)
	default:
		return fmt.Errorf("tui: field %s of type %s cannot be collected here", field.Name, field.Type)
	}
}

func (c *Collector) promptBoolean(ctx context.Context, s *session.PriceSession, field model.Field) error {
	answer, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: model.Label(field),
		Default: s.State().Flag(field.Name),
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	return s.SetFlag(field.Name, answer)
}

func (c *Collector) promptOption(ctx context.Context, s *session.PriceSession, field model.Field) error {
	if len(field.Options) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOptions, field.Name)
	}

	labels := make([]string, len(field.Options))
	for i, option := range field.Options {
		labels[i] = model.OptionLabel(field, option)
	}
	defaultIdx := -1
	if current, ok := s.State().Option(field.Name); ok {
		defaultIdx = indexOf(field.Options, current)
	}

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      model.Label(field),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
			PageSize:     c.pageSize,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			c.warn(ctx, fmt.Sprintf("Invalid %s selection", field.Name))
			continue
		}
		if err := s.Select(field.Name, field.Options[idx]); err != nil {
			if form.IsValidation(err) {
				c.warn(ctx, err.Error())
				continue
			}
			return err
		}
		return nil
	}
}

// CollectUpload prompts for an image path until a valid image is selected.
func (c *Collector) CollectUpload(ctx context.Context, s *session.UploadSession, field model.Field) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if s == nil {
		return errors.New("tui: session is nil")
	}

	help := field.Help
	for {
		path, err := c.driver.Input(ctx, InputConfig{
			Message: model.Label(field),
			Help:    help,
			Validator: func(value string) error {
				if strings.TrimSpace(value) == "" {
					return errors.New("a file path is required")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}

		file, err := c.open(strings.TrimSpace(path))
		if err != nil {
			c.logger.Debug("open upload failed", zap.String("path", path), zap.Error(err))
			c.warn(ctx, err.Error())
			continue
		}
		if err := s.SelectFile(file); err != nil {
			if form.IsValidation(err) {
				c.warn(ctx, err.Error())
				continue
			}
			return err
		}

		if preview, ok := s.Upload().Preview(); ok {
			c.info(ctx, describePreview(file.Name, preview))
		}
		return nil
	}
}

// Show prints msg between prompts.
func (c *Collector) Show(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return c.driver.Info(ctx, msg)
}

func (c *Collector) info(ctx context.Context, msg string) {
	_ = c.driver.Info(ctx, c.theme.InfoPrefix+msg)
}

func (c *Collector) warn(ctx context.Context, msg string) {
	_ = c.driver.Info(ctx, c.theme.ErrorPrefix+msg)
}

func describePreview(name string, p form.Preview) string {
	if p.Width > 0 && p.Height > 0 {
		return fmt.Sprintf("Selected %s (%s, %dx%d, %d bytes)", name, p.Format, p.Width, p.Height, p.Size)
	}
	return fmt.Sprintf("Selected %s (%d bytes)", name, p.Size)
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
