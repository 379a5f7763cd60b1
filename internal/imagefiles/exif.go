package imagefiles

import (
	"fmt"
	"os"

	"github.com/bep/imagemeta"
)

// exifTags lists the EXIF tags surfaced into record metadata.
var exifTags = map[string]bool{
	"Make":             true,
	"Model":            true,
	"DateTime":         true,
	"DateTimeOriginal": true,
	"ExposureTime":     true,
	"FNumber":          true,
	"ISOSpeedRatings":  true,
	"FocalLength":      true,
	"LensModel":        true,
	"Orientation":      true,
	"Software":         true,
	"Artist":           true,
	"Copyright":        true,
}

// ExtractEXIF reads the wanted EXIF tags from the image at path as a flat
// string map. Formats without EXIF support return an empty map.
func ExtractEXIF(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open for exif: %w", err)
	}
	defer file.Close()

	tags := map[string]string{}
	_, err = imagemeta.Decode(imagemeta.Options{
		R:       file,
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return exifTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			tags[ti.Tag] = fmt.Sprint(ti.Value)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}
	return tags, nil
}
