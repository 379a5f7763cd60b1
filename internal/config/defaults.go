package config

const (
	defaultLibraryDB          = "~/.local/share/pictura/library.db"
	defaultLogDir             = "~/.local/share/pictura/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultThumbnailSize      = 256
	defaultMaxImageSize       = 2048
	defaultBatchPauseMillis   = 100
	defaultOllamaBaseURL      = "http://localhost:11434"
	defaultOllamaModel        = "llava:latest"
	defaultOllamaTimeout      = 120
	defaultRateLimitDelay     = 1.0
	defaultCacheHours         = 24
	defaultMaxUploadDimension = 2048
	defaultJPEGQuality        = 85
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp", ".gif"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDB: defaultLibraryDB,
			LogDir:    defaultLogDir,
		},
		Library: Library{
			Extensions:       defaultExtensions(),
			ThumbnailSize:    defaultThumbnailSize,
			MaxImageSize:     defaultMaxImageSize,
			BatchPauseMillis: defaultBatchPauseMillis,
		},
		Ollama: Ollama{
			Enabled:            true,
			BaseURL:            defaultOllamaBaseURL,
			Model:              defaultOllamaModel,
			TimeoutSeconds:     defaultOllamaTimeout,
			RateLimitDelay:     defaultRateLimitDelay,
			CacheHours:         defaultCacheHours,
			MaxUploadDimension: defaultMaxUploadDimension,
			JPEGQuality:        defaultJPEGQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
