package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"swap-link/pkg/chains"
)

// Config holds the application configuration
type Config struct {
	JWTToken        string
	BaseURL         string
	SupportedChains []chains.ID
	LogLevel        string
	LogFormat       string
	ListenAddr      string
	LinkBase        string
	TokenCacheTTL   time.Duration
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	v := viper.GetViper()
	v.SetConfigName(".swap-link")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	// Read config file (optional)
	_ = v.ReadInConfig()

	cfg, err := FromViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// FromViper builds a Config from an already configured viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	// Set default values
	v.SetDefault("base_url", "https://1click.chaindefuser.com")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("link_base", "uniswap://swap")
	v.SetDefault("token_cache_ttl", time.Minute)

	// Read from environment variables
	v.SetEnvPrefix("SWAP_LINK")
	v.AutomaticEnv()

	supported, err := parseChainIDs(v.Get("supported_chains"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		JWTToken:        v.GetString("jwt_token"),
		BaseURL:         v.GetString("base_url"),
		SupportedChains: supported,
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		ListenAddr:      v.GetString("listen_addr"),
		LinkBase:        v.GetString("link_base"),
		TokenCacheTTL:   v.GetDuration("token_cache_ttl"),
	}

	if _, err := cfg.Registry(); err != nil {
		return nil, fmt.Errorf("invalid supported_chains: %w", err)
	}
	if cfg.TokenCacheTTL <= 0 {
		return nil, fmt.Errorf("token_cache_ttl must be positive, got %s", cfg.TokenCacheTTL)
	}

	return cfg, nil
}

// RequireJWT validates that a 1Click API token is configured
func (c *Config) RequireJWT() error {
	if c.JWTToken == "" {
		return fmt.Errorf("JWT token not found. Please set SWAP_LINK_JWT_TOKEN environment variable or create a .swap-link.yaml config file")
	}
	return nil
}

// Registry returns the chain allow-list; an empty list allows every known chain
func (c *Config) Registry() (*chains.Registry, error) {
	return chains.NewRegistry(c.SupportedChains...)
}

// Get returns the global configuration, loading it on first use
func Get() (*Config, error) {
	if globalConfig == nil {
		return Load()
	}
	return globalConfig, nil
}

// parseChainIDs accepts a YAML list or a comma separated string (from env)
func parseChainIDs(raw interface{}) ([]chains.ID, error) {
	var parts []string
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		parts = strings.Split(val, ",")
	case []interface{}:
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
	case []int:
		for _, item := range val {
			parts = append(parts, strconv.Itoa(item))
		}
	case []string:
		parts = val
	default:
		return nil, fmt.Errorf("invalid supported_chains value: %v", raw)
	}

	ids := make([]chains.ID, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q in supported_chains", p)
		}
		ids = append(ids, chains.ID(n))
	}

	return ids, nil
}
