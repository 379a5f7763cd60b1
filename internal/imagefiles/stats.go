package imagefiles

import (
	"image"
	"os"

	"pictura/internal/services"
)

// Stats holds the pixel statistics feeding the local classification
// heuristic.
type Stats struct {
	AspectRatio    float64
	BlurScore      float64
	MeanBrightness float64
}

// DefaultStats returns the fallback statistics used when an image cannot be
// analyzed: a square frame of middling brightness with no sharpness signal.
func DefaultStats() Stats {
	return Stats{AspectRatio: 1.0, BlurScore: 0, MeanBrightness: 128}
}

// Compute derives aspect ratio, sharpness, and brightness from decoded
// pixels. Sharpness is the variance of a Laplacian over the grayscale
// plane; brightness is the grayscale mean.
func Compute(img image.Image) Stats {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return DefaultStats()
	}

	gray := make([]float64, width*height)
	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Luma weights on 16-bit channels scaled to 0..255.
			v := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			gray[y*width+x] = v
			sum += v
		}
	}
	mean := sum / float64(width*height)

	stats := Stats{
		AspectRatio:    float64(width) / float64(height),
		MeanBrightness: mean,
	}

	if width < 3 || height < 3 {
		return stats
	}

	// Variance of the 4-neighbor Laplacian over interior pixels.
	var lapSum, lapSqSum float64
	count := 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := gray[y*width+x]
			lap := gray[(y-1)*width+x] + gray[(y+1)*width+x] +
				gray[y*width+x-1] + gray[y*width+x+1] - 4*center
			lapSum += lap
			lapSqSum += lap * lap
			count++
		}
	}
	if count > 0 {
		lapMean := lapSum / float64(count)
		stats.BlurScore = lapSqSum/float64(count) - lapMean*lapMean
	}
	return stats
}

// Load decodes the image at path and computes its statistics.
func Load(path string) (Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrUnreadable, "imagefiles", "load stats", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrUnreadable, "imagefiles", "decode", path, err)
	}
	return Compute(img), nil
}
