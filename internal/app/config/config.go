package config

// Config provides read-only access to resolved project configuration.
// It hides where the values came from (config.yaml, environment, defaults)
// so the app layer does not depend on infrastructure details.
type Config interface {
	// Project settings
	Schema() string             // Default schema for new changes (schema)
	Context() string            // Free-form project context shown to artifact authors (context)
	Rules() map[string][]string // Extra rules per artifact id (rules)

	// Logging and telemetry
	LogLevel() string       // Log level (log_level, TDD_LOG_LEVEL)
	TelemetryEnabled() bool // Whether usage events may be recorded (telemetry)

	// Metadata
	ConfigSource() string // Source of configuration: "yaml" or "default"
	ConfigPath() string   // Path to config.yaml if loaded from file
}

// AppConfig is the concrete implementation of Config interface.
type AppConfig struct {
	schema  string
	context string
	rules   map[string][]string

	logLevel         string
	telemetryEnabled bool

	configSource string
	configPath   string
}

// Schema returns the default schema name
func (c *AppConfig) Schema() string {
	return c.schema
}

// Context returns the project context text
func (c *AppConfig) Context() string {
	return c.context
}

// Rules returns a copy of the per-artifact rules
func (c *AppConfig) Rules() map[string][]string {
	out := make(map[string][]string, len(c.rules))
	for k, v := range c.rules {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// RulesFor returns the rules configured for one artifact id
func (c *AppConfig) RulesFor(artifactID string) []string {
	return append([]string(nil), c.rules[artifactID]...)
}

// LogLevel returns the configured log level
func (c *AppConfig) LogLevel() string {
	return c.logLevel
}

// TelemetryEnabled reports whether config.yaml allows telemetry
func (c *AppConfig) TelemetryEnabled() bool {
	return c.telemetryEnabled
}

// ConfigSource returns the source of configuration
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// ConfigPath returns the path to config.yaml if loaded from file
func (c *AppConfig) ConfigPath() string {
	return c.configPath
}

// NewAppConfig creates a new AppConfig with the given values.
// This is typically called by the infrastructure layer after loading and merging configurations.
func NewAppConfig(
	schema, context string, rules map[string][]string,
	logLevel string, telemetryEnabled bool,
	configSource, configPath string,
) *AppConfig {
	if rules == nil {
		rules = map[string][]string{}
	}
	return &AppConfig{
		schema:           schema,
		context:          context,
		rules:            rules,
		logLevel:         logLevel,
		telemetryEnabled: telemetryEnabled,
		configSource:     configSource,
		configPath:       configPath,
	}
}
