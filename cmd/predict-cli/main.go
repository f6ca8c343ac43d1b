// Command predict-cli fills the smartphone price and image classification
// forms from a terminal and submits them to the prediction backend.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/internal/config"
	"github.com/goliatone/go-predictform/internal/logging"
	"github.com/goliatone/go-predictform/pkg/client"
	"github.com/goliatone/go-predictform/pkg/renderers/tui"
	"github.com/goliatone/go-predictform/pkg/result"
)

// errReported marks failures whose message has already been printed.
var errReported = errors.New("predict-cli: failure reported")

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	configFile string
	baseURL    string
	logLevel   string
	logFormat  string
	timeout    time.Duration
	plain      bool

	cfg       config.Config
	logger    *zap.Logger
	collector *tui.Collector
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "predict-cli",
		Short: "Submit smartphone specs or an MRI image to a prediction backend",
		Long: `predict-cli collects the inputs of the bundled prediction forms, posts
them to the backend (default http://127.0.0.1:8000/predict) and prints the
predicted price or classification.

Configuration is read from predictform.yaml, .env and PREDICTFORM_* variables;
flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./predictform.yaml when present)")
	flags.StringVar(&a.baseURL, "base-url", "", "Backend base URL (or set PREDICTFORM_BASE_URL)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: console or json")
	flags.DurationVar(&a.timeout, "timeout", 0, "Request timeout (0 uses the transport default)")
	flags.BoolVar(&a.plain, "plain", false, "Print results without terminal styling")

	root.AddCommand(newPriceCmd(a))
	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newContractCmd(a))
	return root
}

// setup resolves configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("plain") {
		cfg.Plain = a.plain
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	if a.collector == nil {
		a.collector = tui.New(tui.WithLogger(logger))
	}
	logger.Debug("configuration resolved",
		zap.String("endpoint", cfg.Endpoint()),
		zap.Duration("timeout", cfg.Timeout),
	)
	return nil
}

func (a *app) client() *client.Client {
	return client.New(
		client.WithBaseURL(a.cfg.BaseURL),
		client.WithPath(a.cfg.Path),
		client.WithTimeout(a.cfg.Timeout),
		client.WithLogger(a.logger),
	)
}

func (a *app) renderer() (*result.Renderer, error) {
	var options []result.Option
	if a.cfg.Plain {
		options = append(options, result.WithPlain())
	}
	return result.NewRenderer(options...)
}

// report prints state and converts a failure into errReported.
func (a *app) report(cmd *cobra.Command, state result.State) error {
	renderer, err := a.renderer()
	if err != nil {
		return err
	}
	out, err := renderer.Render(state)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if state.Kind() == result.KindFailure {
		return errReported
	}
	return nil
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
