package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigContent is written out when no config file exists yet.
const DefaultConfigContent = `# scriptmatch configuration

# Matching engine settings
matcher:
  # Capacity of the compiled-pattern cache (number of entries)
  pattern_cache_size: 4096
  # Character budget for the blacklist result cache. When the sum of cached
  # URL lengths exceeds this, the oldest entries are evicted until the cache
  # is back at or below 75% of the budget.
  result_cache_max_chars: 100000

# Blacklist settings
blacklist:
  # Path to the persisted blacklist option file (JSON, managed by scriptmatch)
  file: "blacklist.json"

# Public suffix settings
tld:
  # Extra suffixes honored by the ".tld" rule token, on top of the compiled
  # public suffix list
  custom_suffixes: []

# System settings
system:
  # Log level: debug, info, warn, error
  log_level: "info"
`

type Config struct {
	Matcher   MatcherConfig   `yaml:"matcher"`
	Blacklist BlacklistConfig `yaml:"blacklist"`
	TLD       TLDConfig       `yaml:"tld"`
	System    SystemConfig    `yaml:"system"`
}

type MatcherConfig struct {
	PatternCacheSize    int `yaml:"pattern_cache_size"`
	ResultCacheMaxChars int `yaml:"result_cache_max_chars"`
}

type BlacklistConfig struct {
	File string `yaml:"file"`
}

type TLDConfig struct {
	CustomSuffixes []string `yaml:"custom_suffixes"`
}

type SystemConfig struct {
	LogLevel string `yaml:"log_level"`
}

// CreateDefaultConfig writes the default config file to filePath.
func CreateDefaultConfig(filePath string) error {
	return os.WriteFile(filePath, []byte(DefaultConfigContent), 0644)
}

// LoadConfig loads configuration from a YAML file, creating the file with
// defaults when it does not exist yet.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := CreateDefaultConfig(filePath); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaultValues(&cfg)
	return &cfg, nil
}

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	setDefaultValues(cfg)
	return cfg
}

// setDefaultValues fills in defaults for fields missing from the file.
func setDefaultValues(cfg *Config) {
	if cfg.Matcher.PatternCacheSize <= 0 {
		cfg.Matcher.PatternCacheSize = 4096
	}
	if cfg.Matcher.ResultCacheMaxChars <= 0 {
		cfg.Matcher.ResultCacheMaxChars = 100000
	}
	if cfg.Blacklist.File == "" {
		cfg.Blacklist.File = "blacklist.json"
	}
	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = "info"
	}
}
