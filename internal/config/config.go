// Package config loads the BizHub configuration from a TOML file.
//
// Every field has a working default, so a missing file or an empty one
// yields a usable local setup: in-memory document store, file mirror under
// the user cache dir, save endpoint on localhost.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file name looked up in the working directory
// when no --config flag is given.
const DefaultFile = "bizhub.toml"

// Config is the top-level configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Endpoint Endpoint `toml:"endpoint"`
	Mirror   Mirror   `toml:"mirror"`
	Store    Store    `toml:"store"`
}

// Server configures the save API.
type Server struct {
	Addr          string `toml:"addr"`
	ThrottleLimit int    `toml:"throttle_limit"` // max concurrent requests
}

// Endpoint configures the outbound save-endpoint client.
type Endpoint struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
}

// Mirror selects and configures the durable local mirror backend.
type Mirror struct {
	Backend       string `toml:"backend"` // file, redis, memory, null
	Dir           string `toml:"dir"`     // file backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Store selects and configures the server-side document store.
type Store struct {
	Backend       string `toml:"backend"` // memory, mongo
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":8080",
			ThrottleLimit: 100,
		},
		Endpoint: Endpoint{
			URL:            "http://localhost:8080/api/save-page",
			TimeoutSeconds: 10,
			RetryAttempts:  3,
		},
		Mirror: Mirror{
			Backend: "file",
			Dir:     defaultMirrorDir(),
		},
		Store: Store{
			Backend:       "memory",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "bizhub",
		},
	}
}

// Load reads a TOML config file, applying defaults for omitted fields.
// An empty path falls back to [DefaultFile] if it exists, else defaults.
// A named path that does not exist is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultMirrorDir is ~/.cache/bizhub/pages, honoring XDG_CACHE_HOME.
func defaultMirrorDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "bizhub", "pages")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bizhub", "pages")
	}
	return filepath.Join(home, ".cache", "bizhub", "pages")
}
