// Package config loads and validates the predictor configuration.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

// EnvPrefix prefixes every environment override, e.g.
// DISEASE_PREDICTOR_MODELS_DIR or DISEASE_PREDICTOR_MODELS_LOCATIONS_THYROID.
const EnvPrefix = "DISEASE_PREDICTOR"

// Manager loads configuration from file, environment and defaults using Viper
type Manager struct {
	v      *viper.Viper
	file   string
	config *domain.Config
}

// NewManager creates a configuration manager. An empty configFile searches
// the default locations and tolerates a missing file; an explicit one must
// exist.
func NewManager(configFile string) (*Manager, error) {
	m := &Manager{file: configFile}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := viper.New()

	if m.file != "" {
		v.SetConfigFile(m.file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/disease-predictor/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || m.file != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.v = v
	m.config = config
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.name", "disease-predictor")
	v.SetDefault("server.version", "1.0.0")

	// Model defaults
	v.SetDefault("models.dir", "./models")
	for _, d := range schema.Domains() {
		v.SetDefault("models.locations."+string(d), string(d)+"_model.json")
	}

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_items", 1000)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// ConfigFileUsed returns the file the configuration was read from, if any
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

var validate = validator.New()

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	keys := make([]string, 0, len(config.Models.Locations))
	for k := range config.Models.Locations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !schema.IsKnown(domain.Domain(k)) {
			return fmt.Errorf("models.locations: %w", &domain.UnknownDomainError{Domain: k})
		}
	}

	if config.Cache.Enabled && config.Cache.MaxItems <= 0 {
		return fmt.Errorf("cache.max_items must be positive when the cache is enabled")
	}
	if config.RateLimit.Enabled && (config.RateLimit.PerSecond <= 0 || config.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.per_second and rate_limit.burst must be positive when rate limiting is enabled")
	}

	return nil
}

// ModelLocations returns the artifact location per domain
func (m *Manager) ModelLocations() map[domain.Domain]string {
	out := make(map[domain.Domain]string, len(m.config.Models.Locations))
	for k, loc := range m.config.Models.Locations {
		out[domain.Domain(k)] = loc
	}
	return out
}

// ModelsDir returns the directory relative artifact paths resolve against
func (m *Manager) ModelsDir() string {
	return m.config.Models.Dir
}
