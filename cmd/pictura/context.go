package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"pictura/internal/classify"
	"pictura/internal/config"
	"pictura/internal/library"
	"pictura/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "pictura.log")},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	return logger, nil
}

// withStore takes the advisory lock on the library database, opens the
// store, and runs fn. Concurrent invocations against the same library are
// rejected instead of queued.
func (c *commandContext) withStore(fn func(*config.Config, *library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("library %s is in use by another pictura process", cfg.Paths.LibraryDB)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := library.Open(cfg.Paths.LibraryDB)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer func() { _ = store.Close() }()

	return fn(cfg, store)
}

// withClassifier wires a classifier over the locked store.
func (c *commandContext) withClassifier(fn func(*config.Config, *library.Store, *classify.Classifier) error) error {
	return c.withStore(func(cfg *config.Config, store *library.Store) error {
		logger, err := c.newLogger()
		if err != nil {
			return err
		}
		return fn(cfg, store, classify.New(cfg, store, logger))
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
