package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/app/config"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
)

// RawSettings represents the structure of tdd/config.yaml.
// Pointer fields distinguish "absent" from "set to the zero value".
type RawSettings struct {
	Schema    *string             `yaml:"schema"`
	Context   *string             `yaml:"context,omitempty"`
	Rules     map[string][]string `yaml:"rules,omitempty"`
	LogLevel  *string             `yaml:"log_level,omitempty"`
	Telemetry *bool               `yaml:"telemetry,omitempty"`
}

// LoadSettings loads configuration for the project rooted at paths.Root.
// Priority: environment > config.yaml > defaults
func LoadSettings(fs afero.Fs, paths app.Paths, getenv func(string) string) (*config.AppConfig, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	settings := &RawSettings{}
	configSource := "default"
	configPath := ""

	data, err := afero.ReadFile(fs, paths.Config)
	switch {
	case err == nil:
		if err := decodeSettings(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", paths.Config, err)
		}
		configSource = "yaml"
		configPath = paths.Config
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", paths.Config, err)
	}

	applyEnvOverrides(settings, getenv)
	applyDefaults(settings)

	return buildAppConfig(settings, configSource, configPath), nil
}

// decodeSettings rejects unknown keys so typos in config.yaml surface early
func decodeSettings(data []byte, settings *RawSettings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	if settings.Schema == nil || strings.TrimSpace(*settings.Schema) == "" {
		v := schema.DefaultName
		settings.Schema = &v
	}
	if settings.Context == nil {
		v := ""
		settings.Context = &v
	}
	if settings.Rules == nil {
		settings.Rules = map[string][]string{}
	}
	if settings.LogLevel == nil {
		v := "warn"
		settings.LogLevel = &v
	}
	if settings.Telemetry == nil {
		v := true
		settings.Telemetry = &v
	}
}

// buildAppConfig creates an AppConfig from settings
func buildAppConfig(settings *RawSettings, configSource, configPath string) *config.AppConfig {
	return config.NewAppConfig(
		*settings.Schema,
		*settings.Context,
		settings.Rules,
		*settings.LogLevel,
		*settings.Telemetry,
		configSource,
		configPath,
	)
}

// CreateDefaultSettings renders the config.yaml written by "tdd init"
func CreateDefaultSettings(schemaName string) []byte {
	if schemaName == "" {
		schemaName = schema.DefaultName
	}
	settings := &RawSettings{Schema: &schemaName}

	data, _ := yaml.Marshal(settings)
	return data
}
