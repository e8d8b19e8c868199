package config

import "strings"

// Environment variables honoured on top of config.yaml
const (
	EnvLogLevel = "TDD_LOG_LEVEL"
)

// applyEnvOverrides lets the environment override file values
func applyEnvOverrides(settings *RawSettings, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		level := strings.ToLower(v)
		settings.LogLevel = &level
	}
}
