package imagefiles

import (
	"image"
	"os"
	"sync"

	"github.com/corona10/goimagehash"
)

// duplicateThreshold is the maximum Hamming distance between two dHash
// values below which images count as perceptual duplicates.
const duplicateThreshold = 10

// DuplicateFilter tracks perceptual hashes across a scan to flag
// near-identical images. Safe for concurrent use.
type DuplicateFilter struct {
	mu     sync.Mutex
	hashes []*goimagehash.ImageHash
}

// NewDuplicateFilter returns an empty filter.
func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{}
}

// IsDuplicate reports whether img is perceptually identical to a previously
// seen image. Hash failures accept the image rather than dropping it. Unique
// images have their hash recorded for later comparisons.
func (d *DuplicateFilter) IsDuplicate(img image.Image) bool {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, seen := range d.hashes {
		dist, err := hash.Distance(seen)
		if err == nil && dist < duplicateThreshold {
			return true
		}
	}
	d.hashes = append(d.hashes, hash)
	return false
}

// IsDuplicatePath decodes the image at path and checks it against the
// filter. Undecodable files are never duplicates.
func (d *DuplicateFilter) IsDuplicatePath(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return false
	}
	return d.IsDuplicate(img)
}
