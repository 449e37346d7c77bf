// Package config loads go-formstate settings from JSON or YAML files with
// FORMSTATE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputHTML = "html"
	OutputJSON = "json"
)

// Duration is a time.Duration that reads "2s"-style strings from JSON and
// YAML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("config: duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds every tunable of the form and the CLI.
type Config struct {
	ISDPrefix           string            `json:"isdPrefix" yaml:"isdPrefix"`
	DateLayout          string            `json:"dateLayout" yaml:"dateLayout"`
	GenderOptions       []model.OptionRef `json:"genderOptions" yaml:"genderOptions"`
	TechOptions         []model.OptionRef `json:"techOptions" yaml:"techOptions"`
	MandatoryTech       model.OptionRef   `json:"mandatoryTech" yaml:"mandatoryTech"`
	RejectDuplicateTags bool              `json:"rejectDuplicateTags" yaml:"rejectDuplicateTags"`
	SubmitTimeout       Duration          `json:"submitTimeout" yaml:"submitTimeout"`
	OutputFormat        string            `json:"output" yaml:"output"`
	SchemaSource        string            `json:"schemaSource" yaml:"schemaSource"`
	SchemaName          string            `json:"schemaName" yaml:"schemaName"`
	LogLevel            string            `json:"logLevel" yaml:"logLevel"`
}

// Default returns the built-in profile form settings.
func Default() Config {
	return Config{
		ISDPrefix:     model.DefaultISDPrefix,
		DateLayout:    model.DateLayout,
		GenderOptions: model.DefaultGenderOptions(),
		TechOptions:   model.DefaultTechOptions(),
		MandatoryTech: model.Option("javascript", "JavaScript"),
		OutputFormat:  OutputText,
		SchemaName:    "UserProfile",
		LogLevel:      "info",
	}
}

// envConfig lists the FORMSTATE_* overrides. Load seeds it with the file
// values so unset variables keep them.
type envConfig struct {
	ISDPrefix           string        `env:"FORMSTATE_ISD_PREFIX"`
	DateLayout          string        `env:"FORMSTATE_DATE_LAYOUT"`
	RejectDuplicateTags bool          `env:"FORMSTATE_REJECT_DUPLICATE_TAGS"`
	SubmitTimeout       time.Duration `env:"FORMSTATE_SUBMIT_TIMEOUT"`
	OutputFormat        string        `env:"FORMSTATE_OUTPUT"`
	SchemaSource        string        `env:"FORMSTATE_SCHEMA_SOURCE"`
	SchemaName          string        `env:"FORMSTATE_SCHEMA_NAME"`
	LogLevel            string        `env:"FORMSTATE_LOG_LEVEL"`
}

// Load reads path (JSON or YAML) over Default, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg, err = parse(data, path, cfg)
		if err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(data []byte, source string, base Config) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	fromJSON := base
	if err := json.Unmarshal(data, &fromJSON); err == nil {
		return fromJSON, nil
	}

	fromYAML := base
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return fromYAML, nil
}

func applyEnv(cfg *Config) error {
	env := envConfig{
		ISDPrefix:           cfg.ISDPrefix,
		DateLayout:          cfg.DateLayout,
		RejectDuplicateTags: cfg.RejectDuplicateTags,
		SubmitTimeout:       time.Duration(cfg.SubmitTimeout),
		OutputFormat:        cfg.OutputFormat,
		SchemaSource:        cfg.SchemaSource,
		SchemaName:          cfg.SchemaName,
		LogLevel:            cfg.LogLevel,
	}
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("config: environment: %w", err)
	}
	cfg.ISDPrefix = env.ISDPrefix
	cfg.DateLayout = env.DateLayout
	cfg.RejectDuplicateTags = env.RejectDuplicateTags
	cfg.SubmitTimeout = Duration(env.SubmitTimeout)
	cfg.OutputFormat = env.OutputFormat
	cfg.SchemaSource = env.SchemaSource
	cfg.SchemaName = env.SchemaName
	cfg.LogLevel = env.LogLevel
	return nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.MandatoryTech.Value) == "" || strings.TrimSpace(c.MandatoryTech.Label) == "" {
		errs = append(errs, errors.New("mandatoryTech requires label and value"))
	}
	if len(c.GenderOptions) == 0 {
		errs = append(errs, errors.New("genderOptions must not be empty"))
	}
	for _, option := range c.GenderOptions {
		if !option.Selected() {
			errs = append(errs, fmt.Errorf("genderOptions: option %q has no label", option.Value))
		}
	}
	switch c.OutputFormat {
	case OutputText, OutputHTML, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output %q must be one of text, html, json", c.OutputFormat))
	}
	if c.SubmitTimeout < 0 {
		errs = append(errs, errors.New("submitTimeout must not be negative"))
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		errs = append(errs, errors.New("dateLayout is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.SchemaSource != "" && strings.TrimSpace(c.SchemaName) == "" {
		errs = append(errs, errors.New("schemaName is required with schemaSource"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("logLevel %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Timeout returns SubmitTimeout as a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.SubmitTimeout)
}
