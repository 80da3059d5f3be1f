// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ELB holds settings for the load balancer health check.
type ELB struct {
	Name string `yaml:"name"`
}

// SWF holds settings for the workflow task status check.
type SWF struct {
	Domain      string `yaml:"domain"`
	WindowHours int    `yaml:"window_hours"`
}

// Application maps a workflow unit pattern to an application name.
// Patterns are matched in config order, first match wins.
type Application struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// MonitorConfig is the root configuration for both checks.
type MonitorConfig struct {
	Region          string        `yaml:"region"`
	CredentialsFile string        `yaml:"credentials_file"`
	AnomalyLog      string        `yaml:"anomaly_log"`
	StackID         string        `yaml:"stack_id"`
	ELB             ELB           `yaml:"elb"`
	SWF             SWF           `yaml:"swf"`
	Applications    []Application `yaml:"applications"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*MonitorConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg MonitorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	if cfg.SWF.WindowHours <= 0 {
		cfg.SWF.WindowHours = 24
	}
	return &cfg, nil
}

// AppNames returns the configured application names in config order.
func (c *MonitorConfig) AppNames() []string {
	names := make([]string, 0, len(c.Applications))
	for _, a := range c.Applications {
		names = append(names, a.Name)
	}
	return names
}
