package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .linview.yml configuration file
type Config struct {
	Version string `yaml:"version,omitempty"`

	// Endpoint is the GraphQL API URL; empty means the built-in default
	Endpoint string `yaml:"endpoint,omitempty"`

	// APIKey authenticates every API call
	APIKey string `yaml:"api_key,omitempty"`

	// MasterToken is the sentinel access token granting every project.
	// Deployment-specific; never derivable from the API itself.
	MasterToken string `yaml:"master_token,omitempty"`

	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Defaults contains default values for new customer requests
type Defaults struct {
	Priority string `yaml:"priority,omitempty"`
}

// ConfigFileName is the default configuration file name
const ConfigFileName = ".linview.yml"

// Environment variable overrides
const (
	EnvAPIKey      = "LINVIEW_API_KEY"
	EnvMasterToken = "LINVIEW_MASTER_TOKEN"
	EnvEndpoint    = "LINVIEW_ENDPOINT"
)

// Load reads and parses a configuration file from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromDirectory finds and loads the config file from the given
// directory. It searches up the directory tree until it finds a
// .linview.yml file or reaches the filesystem root.
func LoadFromDirectory(dir string) (*Config, error) {
	configPath, err := FindConfigFile(dir)
	if err != nil {
		return nil, err
	}
	return Load(configPath)
}

// FindConfigFile searches for .linview.yml starting from dir and walking
// up the directory tree until found or filesystem root is reached.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", fmt.Errorf("no %s found in %s or any parent directory", ConfigFileName, startDir)
		}
		dir = parent
	}
}

// Validate checks that required configuration fields are present
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (or set %s)", EnvAPIKey)
	}

	if c.MasterToken == "" {
		return fmt.Errorf("master_token is required (or set %s)", EnvMasterToken)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Supported environment variables:
//   - LINVIEW_API_KEY: overrides api_key
//   - LINVIEW_MASTER_TOKEN: overrides master_token
//   - LINVIEW_ENDPOINT: overrides endpoint
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}

	if token := os.Getenv(EnvMasterToken); token != "" {
		c.MasterToken = token
	}

	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		c.Endpoint = endpoint
	}
}

// DefaultPriority returns the configured default request priority,
// falling back to medium.
func (c *Config) DefaultPriority() string {
	if c.Defaults.Priority != "" {
		return c.Defaults.Priority
	}
	return "medium"
}

// Save writes the configuration back to the given path. The file holds
// an API key, so it is user-readable only.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
