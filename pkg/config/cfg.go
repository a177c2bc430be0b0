package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"l14lite/pkg/text"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewportConfig struct {
		Width  int `yaml:"width" validate:"min=100"`
		Height int `yaml:"height" validate:"min=100"`
	}

	LayoutConfig struct {
		HStep float64 `yaml:"hstep" validate:"gte=0"`
		VStep float64 `yaml:"vstep" validate:"gte=0"`
	}

	FontsConfig struct {
		Regular    string `yaml:"regular" validate:"omitempty,file"`
		Bold       string `yaml:"bold" validate:"omitempty,file"`
		Italic     string `yaml:"italic" validate:"omitempty,file"`
		BoldItalic string `yaml:"bold_italic" validate:"omitempty,file"`
	}

	FetchConfig struct {
		Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
		MaxRedirects int           `yaml:"max_redirects" validate:"gte=0,lte=50"`
		UserAgent    string        `yaml:"user_agent" validate:"required"`
		Parallel     int           `yaml:"parallel" validate:"min=1,max=64"`
	}

	Config struct {
		Version  int            `yaml:"version" validate:"eq=1"`
		Viewport ViewportConfig `yaml:"viewport"`
		Layout   LayoutConfig   `yaml:"layout"`
		Fonts    FontsConfig    `yaml:"fonts"`
		Fetch    FetchConfig    `yaml:"fetch"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// FontConfig converts the fonts section for text.NewTrueType.
func (fc FontsConfig) FontConfig() text.FontConfig {
	return text.FontConfig{
		Regular:    fc.Regular,
		Bold:       fc.Bold,
		Italic:     fc.Italic,
		BoldItalic: fc.BoldItalic,
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed, so no yaml.Unmarshal
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands the embedded template for defaults, then
// superimposes the file at path (if any) and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
