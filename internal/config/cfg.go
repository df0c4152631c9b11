package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-scriptlink/pkg/render"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	RenderConfig struct {
		Renderer        string `yaml:"renderer" validate:"required"`
		IncludeDocument bool   `yaml:"include_document"`
		Title           string `yaml:"title,omitempty"`
		StylesheetPath  string `yaml:"stylesheet_path,omitempty"`
	}

	Config struct {
		Version  int           `yaml:"version" validate:"eq=1"`
		Logging  LoggingConfig `yaml:"logging"`
		Render   RenderConfig  `yaml:"render"`
		Validate bool          `yaml:"validate"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we defined are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path
// and superimposes its values on top of the embedded defaults. An empty path
// returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// RenderOptions turns the render section into renderer options, reading the
// stylesheet file when one is configured.
func (conf *RenderConfig) RenderOptions() (render.RenderOptions, error) {
	opts := render.RenderOptions{
		IncludeDocument: conf.IncludeDocument,
		Title:           conf.Title,
	}
	if conf.StylesheetPath == "" {
		return opts, nil
	}
	css, err := os.ReadFile(conf.StylesheetPath)
	if err != nil {
		return opts, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	opts.Stylesheet = string(css)
	return opts, nil
}
