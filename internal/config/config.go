package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (PREDICTFORM_BASE_URL, ...).
const EnvPrefix = "PREDICTFORM"

// Config is the resolved client configuration.
type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	Path      string        `mapstructure:"path"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Plain     bool          `mapstructure:"plain"`
}

// Endpoint joins the base URL and path.
func (c Config) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + c.Path
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		BaseURL:   "http://127.0.0.1:8000",
		Path:      "/predict",
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Load resolves configuration from, in increasing precedence: defaults, the
// optional config file (explicit path or predictform.yaml in the working
// directory), a .env file, and PREDICTFORM_* environment variables.
func Load(file string) (Config, error) {
	loadEnvFile()

	v := viper.New()
	defaults := Defaults()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("path", defaults.Path)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("plain", defaults.Plain)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	} else {
		v.SetConfigName("predictform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read predictform.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	normalise(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot use.
func (c Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid base_url %q: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("config: base_url %q must use http or https", c.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("config: base_url %q has no host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func normalise(cfg *Config) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Path == "" {
		cfg.Path = Defaults().Path
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
}

// loadEnvFile applies .env from the working directory when present. Existing
// environment variables win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load(".env")
}
