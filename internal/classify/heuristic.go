package classify

import (
	"fmt"

	"pictura/internal/imagefiles"
)

// HeuristicResult is the local classification derived from pixel statistics
// when the captioning service is unavailable.
type HeuristicResult struct {
	Description string
	Subjects    string
	Scene       string
	Mood        string
	Quality     string
	Stats       imagefiles.Stats
}

// Heuristic maps pixel statistics onto a coarse scene, quality, and mood
// vocabulary and renders a templated description. Subjects are always
// "unknown"; this path has no semantic signal.
func Heuristic(stats imagefiles.Stats) HeuristicResult {
	var scene string
	switch {
	case stats.AspectRatio > 1.5:
		scene = "landscape/panoramic"
	case stats.AspectRatio < 0.7:
		scene = "portrait/vertical"
	default:
		scene = "standard/square"
	}

	var quality string
	switch {
	case stats.BlurScore > 500:
		quality = "high"
	case stats.BlurScore > 100:
		quality = "medium"
	default:
		quality = "low/blurry"
	}

	var mood string
	switch {
	case stats.MeanBrightness > 180:
		mood = "bright/cheerful"
	case stats.MeanBrightness > 100:
		mood = "neutral"
	default:
		mood = "dark/moody"
	}

	return HeuristicResult{
		Description: fmt.Sprintf("A %s image with %s quality and %s lighting", scene, quality, mood),
		Subjects:    "unknown",
		Scene:       scene,
		Mood:        mood,
		Quality:     quality,
		Stats:       stats,
	}
}
