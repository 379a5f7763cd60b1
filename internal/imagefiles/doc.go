// Package imagefiles handles on-disk image access: format probing, EXIF
// extraction, pixel statistics, upload encoding, directory scanning, and
// perceptual duplicate detection.
package imagefiles
