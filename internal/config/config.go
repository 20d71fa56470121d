package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	DatasetURL string      `yaml:"dataset_url,omitempty"` // Zip archive location (fallback: UCI repository)
	DataDir    string      `yaml:"data_dir,omitempty"`    // Where the extracted dataset lives (fallback: ./data)
	OutputDir  string      `yaml:"output_dir,omitempty"`  // Where charts are written (fallback: ./charts)
	Range      RangeConfig `yaml:"range,omitempty"`
	MQTT       MQTTConfig  `yaml:"mqtt,omitempty"`
}

// RangeConfig holds the default date window to load, as YYYY-MM-DD strings
type RangeConfig struct {
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`
}

// MQTTConfig holds MQTT broker settings for publishing daily totals
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // e.g., "power_consumption"
}

// DefaultDatasetURL points at the UCI household power consumption archive
const DefaultDatasetURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/00235/household_power_consumption.zip"

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDatasetURL returns the dataset archive URL with the UCI default
func (c *Config) GetDatasetURL() string {
	if c.DatasetURL == "" {
		return DefaultDatasetURL
	}
	return c.DatasetURL
}

// GetDataDir returns the data directory with a default of ./data
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return "data"
	}
	return c.DataDir
}

// GetOutputDir returns the chart output directory with a default of ./charts
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return "charts"
	}
	return c.OutputDir
}

// GetRange returns the configured date window, falling back to the two
// February 2007 days the standard charts cover
func (c *Config) GetRange() (string, string) {
	from, to := c.Range.From, c.Range.To
	if from == "" {
		from = "2007-02-01"
	}
	if to == "" {
		to = "2007-02-02"
	}
	return from, to
}

// GetTopicPrefix returns the MQTT topic prefix with a default
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "power_consumption"
	}
	return c.MQTT.TopicPrefix
}
