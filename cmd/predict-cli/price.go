package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/session"
)

type priceOptions struct {
	sets    []string
	has5G   bool
	noInput bool
}

func newPriceCmd(a *app) *cobra.Command {
	opts := &priceOptions{}
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Predict a smartphone price from its specifications",
		Example: `  predict-cli price
  predict-cli price --set ram_capacity=8 --set internal_memory=128 \
    --set processor_speed=2.8 --set screen_size=6.5 --set battery_capacity=5000 \
    --set num_cores=8 --set refresh_rate=120 --5g`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd, a, opts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Field value as field=value (repeatable)")
	cmd.Flags().BoolVar(&opts.has5G, "5g", false, "The phone supports 5G")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Never prompt; submit what the flags provide")
	return cmd
}

func runPrice(cmd *cobra.Command, a *app, opts *priceOptions) error {
	ctx := cmd.Context()
	s := session.NewPriceSession(a.client(), model.PhonePriceForm(), session.WithLogger(a.logger))

	values, err := parseSets(opts.sets)
	if err != nil {
		return err
	}
	if err := applySets(s, values); err != nil {
		return err
	}
	given5G := cmd.Flags().Changed("5g")
	if given5G {
		if err := s.SetFlag("has_5g", opts.has5G); err != nil {
			return err
		}
	}

	if !opts.noInput {
		// A bare invocation walks the whole form; otherwise only the gaps.
		bare := len(values) == 0 && !given5G
		var names []string
		if !bare {
			for _, field := range s.State().Missing() {
				names = append(names, field.Name)
			}
		}
		if bare || len(names) > 0 {
			if err := a.collector.CollectPrice(ctx, s, names...); err != nil {
				return err
			}
		}
	}

	a.logger.Debug("submitting price form", zap.Any("values", s.State().Values()))
	state, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	return a.report(cmd, state)
}

// field is one parsed --set flag.
type field struct {
	name  string
	value string
}

// parseSets splits field=value pairs, keeping flag order.
func parseSets(raw []string) ([]field, error) {
	out := make([]field, 0, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected field=value", entry)
		}
		out = append(out, field{name: name, value: strings.TrimSpace(value)})
	}
	return out, nil
}

// applySets feeds parsed values into s. Boolean fields accept the usual
// true/false spellings.
func applySets(s *session.PriceSession, values []field) error {
	definition := s.State().Form()
	for _, v := range values {
		f, ok := definition.Field(v.name)
		if !ok {
			return fmt.Errorf("unknown field %q (expected one of %s)", v.name, strings.Join(definition.FieldNames(), ", "))
		}
		if f.Type == model.FieldTypeBoolean {
			flag, err := parseBool(v.value)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			if err := s.SetFlag(v.name, flag); err != nil {
				return err
			}
			continue
		}
		if err := s.Select(v.name, v.value); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	return nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}
