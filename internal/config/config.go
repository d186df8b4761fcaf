package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config keeps the latest successfully loaded Store, callers should grab it
// once per operation with Get to keep a consistent view.
type Config struct {
	path  string
	mu    sync.RWMutex
	store *Store
}

func NewConfig(configPath string) (*Config, error) {
	store, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Config{path: store.Path, store: store}, nil
}

func (c *Config) Get() *Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

func (c *Config) Reload() error {
	store, err := Load(c.path)
	if err != nil {
		logrus.WithError(err).Error("Keeping the previous configuration")
		return fmt.Errorf("cant reload config: %w", err)
	}

	c.mu.Lock()
	c.store = store
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{"path": c.path, "profiles": len(store.Profiles())}).Info("Configuration reloaded")
	return nil
}
