package store

import (
	"fmt"

	"github.com/drugkb/drugdb/embeddings"
)

// Extension identifies a DuckDB extension and the repository it installs from.
// An empty Repository means the core extension repository.
type Extension struct {
	Name       string `yaml:"name"`
	Repository string `yaml:"repository,omitempty"`
}

// Config configures the store.
type Config struct {
	// Path is the DuckDB database file. Empty opens an in-memory database.
	Path string
	// Extensions are installed once per process and loaded on every
	// connection.
	Extensions []Extension
	// Embedder backs the embeddings() scalar function. When nil the
	// function is not registered and SQL referencing it fails in the
	// engine.
	Embedder embeddings.Embedder
	// FuncName overrides the registered scalar function name.
	FuncName string
}

// DefaultExtensions returns the extensions the drug database relies on:
// property-graph queries, full-text search and vector similarity search.
func DefaultExtensions() []Extension {
	return []Extension{
		{Name: "duckpgq", Repository: "community"},
		{Name: "fts"},
		{Name: "vss"},
	}
}

func (c *Config) funcName() string {
	if c.FuncName != "" {
		return c.FuncName
	}
	return "embeddings"
}

func (c *Config) validate() error {
	for _, ext := range c.Extensions {
		if ext.Name == "" {
			return fmt.Errorf("store: extension name is required")
		}
	}
	return nil
}
