// Package config loads ghlens settings from the global and local YAML files
// and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/duration"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	APIURL               string `yaml:"api_url,omitempty" json:"api_url,omitempty"`
	DefaultFormat        string `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	RequestTimeout       string `yaml:"request_timeout,omitempty" json:"request_timeout,omitempty"`
	AnalysisCacheTTL     string `yaml:"analysis_cache_ttl,omitempty" json:"analysis_cache_ttl,omitempty"`
	DisableAnalysisCache *bool  `yaml:"disable_analysis_cache,omitempty" json:"disable_analysis_cache,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".ghlens"
	}
	return filepath.Join(configDir, "ghlens")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".ghlens.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the user config directory, then
// merges any local .ghlens.yaml on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the config files at globalPath and localPath.
// Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}
	if global != nil {
		cfg = global
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	pick := func(l, g string) string {
		if l != "" {
			return l
		}
		return g
	}

	result := &Config{
		APIURL:               pick(local.APIURL, global.APIURL),
		DefaultFormat:        pick(local.DefaultFormat, global.DefaultFormat),
		RequestTimeout:       pick(local.RequestTimeout, global.RequestTimeout),
		AnalysisCacheTTL:     pick(local.AnalysisCacheTTL, global.AnalysisCacheTTL),
		DisableAnalysisCache: global.DisableAnalysisCache,
	}
	if local.DisableAnalysisCache != nil {
		result.DisableAnalysisCache = local.DisableAnalysisCache
	}
	return result
}

// Validate checks values that can't be checked by YAML decoding alone.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		if err := validateURL(c.APIURL); err != nil {
			return fmt.Errorf("invalid api_url: %w", err)
		}
	}
	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if _, err := c.CacheTTL(); err != nil {
		return fmt.Errorf("invalid analysis_cache_ttl: %w", err)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// ResolveAPIURL picks the backend root: the flag value, then the
// GHLENS_API_URL environment variable, then api_url, then the default.
func (c *Config) ResolveAPIURL(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(constants.APIURLEnv)); v != "" {
		return v
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return constants.DefaultAPIURL
}

// Timeout returns the per-request timeout. Zero means none.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return constants.DefaultRequestTimeout, nil
	}
	return duration.ParseDuration(c.RequestTimeout)
}

// CacheTTL returns how long AI analyses stay fresh on disk.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.AnalysisCacheTTL == "" {
		return constants.AnalysisCacheTTL, nil
	}
	return duration.ParseDuration(c.AnalysisCacheTTL)
}

// AnalysisCacheEnabled reports whether the on-disk analysis cache is used.
func (c *Config) AnalysisCacheEnabled() bool {
	return c.DisableAnalysisCache == nil || !*c.DisableAnalysisCache
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(ConfigPath(), string(data))
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	disabled := false
	return &Config{
		APIURL:               constants.DefaultAPIURL,
		DefaultFormat:        "table",
		RequestTimeout:       "0s",
		AnalysisCacheTTL:     constants.AnalysisCacheTTL.String(),
		DisableAnalysisCache: &disabled,
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# ghlens configuration file
# See: ghlens config defaults  (for all available options)

# Analysis backend root (GHLENS_API_URL and --api-url override this)
api_url: ` + constants.DefaultAPIURL + `

# Output format: table, json or markdown
default_format: table

# Per-request timeout, e.g. 30s or 2m (optional, default: none)
# request_timeout: 30s

# How long AI analyses are reused from disk (optional)
# analysis_cache_ttl: 24h
# disable_analysis_cache: false
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
