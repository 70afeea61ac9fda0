package config

import (
	"fmt"

	"github.com/feedkit/feedkit/httpclient"
	"github.com/feedkit/feedkit/logger"
)

// AppConfig is the top-level configuration for a feedkit application.
type AppConfig struct {
	Name        string            `yaml:"name" mapstructure:"name"`
	Environment string            `yaml:"environment" mapstructure:"environment"`
	Debug       bool              `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config     `yaml:"logging" mapstructure:"logging"`
	Client      httpclient.Config `yaml:"client" mapstructure:"client"`
	Filter      FilterConfig      `yaml:"filter" mapstructure:"filter"`
	Telemetry   TelemetryConfig   `yaml:"telemetry" mapstructure:"telemetry"`
}

// FilterConfig parameterizes the demo's post filter.
type FilterConfig struct {
	// MaxID keeps only posts with id strictly below this value.
	MaxID int `yaml:"max_id" mapstructure:"max_id"`
}

// TelemetryConfig configures optional OpenTelemetry export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// ApplyDefaults applies default values to the configuration.
func (c *AppConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Filter.MaxID == 0 {
		c.Filter.MaxID = 10
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	c.Logging.ApplyDefaults()
	c.Client.ApplyDefaults()
}

// Validate validates the configuration.
func (c *AppConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("config: client.base_url is required")
	}
	if c.Filter.MaxID < 0 {
		return fmt.Errorf("config: filter.max_id must not be negative")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("config: client: %w", err)
	}
	return nil
}
