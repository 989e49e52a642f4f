// Package config provides Viper-based configuration management for github-profile-analyzer.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "GH_ANALYZER"

// ErrMissingToken is returned by RequireToken when no GitHub token was configured.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")

// Config represents the complete application configuration.
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GitHubConfig contains the upstream API settings.
type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
	// TopRepositories is how many recently updated repositories feed the activity chart.
	TopRepositories int `mapstructure:"top_repositories"`
	// ActivityConcurrency bounds parallel commit activity fetches. 1 is sequential.
	ActivityConcurrency int `mapstructure:"activity_concurrency"`
}

// ServerConfig contains the HTTP dashboard settings.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	DefaultTheme   string   `mapstructure:"default_theme"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// New returns a Viper instance with defaults, search paths and environment bindings set up.
// Callers may bind flags onto it before passing it to Load.
func New(cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".github-profile-analyzer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/github-profile-analyzer")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The token keeps its conventional, unprefixed name.
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.top_repositories", 5)
	v.SetDefault("github.activity_concurrency", 1)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.default_theme", "dark")
	v.SetDefault("logging.verbose", false)
}

// Load reads the configuration file, if any, and unmarshals everything into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// RequireToken fails when no GitHub token is configured.
func (c *Config) RequireToken() error {
	if c.GitHub.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// ValidTheme reports whether theme is a supported UI theme.
func ValidTheme(theme string) bool {
	switch theme {
	case "light", "dark", "system":
		return true
	}
	return false
}

func validate(cfg *Config) error {
	if cfg.GitHub.TopRepositories < 1 {
		return fmt.Errorf("github.top_repositories must be at least 1, got %d", cfg.GitHub.TopRepositories)
	}
	if cfg.GitHub.ActivityConcurrency < 1 {
		return fmt.Errorf("github.activity_concurrency must be at least 1, got %d", cfg.GitHub.ActivityConcurrency)
	}
	if !ValidTheme(cfg.Server.DefaultTheme) {
		return fmt.Errorf("server.default_theme must be light, dark or system, got %q", cfg.Server.DefaultTheme)
	}
	return nil
}
