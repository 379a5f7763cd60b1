package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.LibraryDB, err = expandPath(c.Paths.LibraryDB); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ollama.BaseURL), "/")
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)

	exts := make([]string, 0, len(c.Library.Extensions))
	seen := map[string]struct{}{}
	for _, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = defaultExtensions()
	}
	c.Library.Extensions = exts

	if c.Library.ThumbnailSize <= 0 {
		c.Library.ThumbnailSize = defaultThumbnailSize
	}
	if c.Library.MaxImageSize <= 0 {
		c.Library.MaxImageSize = defaultMaxImageSize
	}
	if c.Library.BatchPauseMillis < 0 {
		c.Library.BatchPauseMillis = 0
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		c.Ollama.TimeoutSeconds = defaultOllamaTimeout
	}
	if c.Ollama.RateLimitDelay < 0 {
		c.Ollama.RateLimitDelay = 0
	}
	if c.Ollama.CacheHours <= 0 {
		c.Ollama.CacheHours = defaultCacheHours
	}
	if c.Ollama.MaxUploadDimension <= 0 {
		c.Ollama.MaxUploadDimension = defaultMaxUploadDimension
	}
	if c.Ollama.JPEGQuality <= 0 || c.Ollama.JPEGQuality > 100 {
		c.Ollama.JPEGQuality = defaultJPEGQuality
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// Validate checks configuration invariants that normalization cannot repair.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.LibraryDB) == "" {
		return fmt.Errorf("config: library_db must not be empty")
	}
	if c.Ollama.Enabled {
		if c.Ollama.BaseURL == "" {
			return fmt.Errorf("config: ollama.base_url required when the service is enabled")
		}
		if c.Ollama.Model == "" {
			return fmt.Errorf("config: ollama.model required when the service is enabled")
		}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	return nil
}
