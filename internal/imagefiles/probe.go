package imagefiles

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pictura/internal/library"
	"pictura/internal/services"
)

// SupportedExt reports whether path carries one of the configured image
// extensions. Extensions are matched case-insensitively and may be given
// with or without a leading dot.
func SupportedExt(path string, extensions []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		allowed = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(allowed), "."))
		if ext == allowed {
			return true
		}
	}
	return false
}

// Probe stats and decodes the image header at path, returning a fresh record
// populated with file identity and dimensions. EXIF extraction failures are
// tolerated; the record simply carries no EXIF map.
func Probe(path string) (*library.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "imagefiles", "probe", path, err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrUnreadable, "imagefiles", "probe", path+" is a directory", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "imagefiles", "probe", path, err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "imagefiles", "decode header", path, err)
	}

	record := &library.Record{
		Path:       path,
		Filename:   filepath.Base(path),
		FileSize:   info.Size(),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		CreatedAt:  info.ModTime().UTC(),
		ModifiedAt: info.ModTime().UTC(),
	}

	if exif, err := ExtractEXIF(path); err == nil && len(exif) > 0 {
		record.EXIF = exif
	}
	return record, nil
}
