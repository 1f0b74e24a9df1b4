package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"

	"github.com/drugkb/drugdb/store"
)

// Config describes the drug database and the embedding provider.
type Config struct {
	// DB is the DuckDB database file path.
	DB string `yaml:"db"`
	// Model is the embedding model identifier.
	Model string `yaml:"model"`
	// Dimensions is the embedding vector width.
	Dimensions int `yaml:"dimensions"`
	// Extensions overrides the default extension set.
	Extensions []store.Extension `yaml:"extensions"`
	OpenAI     OpenAIConfig      `yaml:"openai"`
	MCPServer  MCPServerConfig   `yaml:"mcpServer"`
}

// OpenAIConfig holds embedding provider credentials. When Secret is set the
// API key is resolved through it; APIKey may then hold a placeholder the
// secret expands.
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Secret string `yaml:"secret,omitempty"`
}

// MCPServerConfig defines MCP server settings.
type MCPServerConfig struct {
	Addr string `yaml:"addr"`
	Port int    `yaml:"port"`
}

func LoadConfig(path string) (*Config, error) {
	path, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	// Backward compatible: the original flat config carried the API key
	// under openai_api.
	if cfg.OpenAI.APIKey == "" && cfg.OpenAI.Secret == "" {
		var raw struct {
			Key string `yaml:"openai_api"`
		}
		if err := yaml.Unmarshal(b, &raw); err == nil && raw.Key != "" {
			cfg.OpenAI.APIKey = raw.Key
		}
	}
	if cfg.OpenAI.Secret != "" {
		expanded, err := ExpandKeyWithSecret(context.Background(), cfg.OpenAI.APIKey, cfg.OpenAI.Secret)
		if err != nil {
			return nil, err
		}
		cfg.OpenAI.APIKey = expanded
	}
	if cfg.DB != "" {
		expanded, err := expandUserPath(cfg.DB)
		if err != nil {
			return nil, err
		}
		cfg.DB = expanded
	}
	return &cfg, nil
}

// StoreExtensions returns the configured extension set or the defaults.
func (c *Config) StoreExtensions() []store.Extension {
	if c != nil && len(c.Extensions) > 0 {
		return c.Extensions
	}
	return store.DefaultExtensions()
}

func expandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if trimmed == "~" {
		return home, nil
	}
	if !strings.HasPrefix(trimmed, "~/") {
		return "", fmt.Errorf("config: unsupported ~user path: %s", path)
	}
	return filepath.Join(home, trimmed[2:]), nil
}

// ExpandKeyWithSecret loads a secret and expands placeholders in the key.
func ExpandKeyWithSecret(ctx context.Context, key, secretRef string) (string, error) {
	secretRef = strings.TrimSpace(secretRef)
	if secretRef == "" {
		return key, nil
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("secret %q provided but apiKey is empty", secretRef)
	}
	svc := secret.New()
	sec, err := svc.Lookup(ctx, secret.Resource(secretRef))
	if err != nil {
		return "", err
	}
	return sec.Expand(key), nil
}
