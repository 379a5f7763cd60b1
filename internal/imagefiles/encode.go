package imagefiles

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"pictura/internal/services"
)

// EncodeForUpload loads the image at path, scales it to fit within
// maxDim x maxDim when larger, and returns the JPEG bytes base64-encoded
// for transmission to the captioning service.
func EncodeForUpload(path string, maxDim, quality int) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", services.Wrap(services.ErrUnreadable, "imagefiles", "open for upload", path, err)
	}

	bounds := img.Bounds()
	if maxDim > 0 && (bounds.Dx() > maxDim || bounds.Dy() > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return "", services.Wrap(services.ErrUnreadable, "imagefiles", "encode upload", path, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
