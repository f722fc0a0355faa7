package config

import (
	"fmt"

	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/validation"
)

// ServiceConfig holds the name, environment and logging settings shared by
// every command. SiteConfig embeds it with mapstructure squash so the keys
// sit at the top level of config.yml.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

var environments = []string{"development", "staging", "production"}

// GetServiceConfig satisfies bootstrap.Config for any struct embedding
// ServiceConfig.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig { return c }

// ApplyDefaults selects development (with Debug on) when no environment is
// set and names the logger after the service.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = environments[0]
	}
	c.Debug = c.Debug || c.Environment == "development"
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

func (c *ServiceConfig) Validate() error {
	v := validation.New().
		Required("name", c.Name).
		Required("environment", c.Environment).
		OneOf("environment", c.Environment, environments)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
