package classify

import "encoding/json"

// Outcome records which classification path produced the applied metadata
// along with the data needed to serialize the audit blob.
type Outcome struct {
	Format    string
	Model     string
	Timestamp string
	Raw       string
	Slots     *SlotResult
	Legacy    *LegacyResult
	Heuristic *HeuristicResult
}

const (
	// FormatSlots marks blobs produced by the structured slot prompt.
	FormatSlots = "slots"
	// FormatLegacy marks blobs produced by the five-line legacy prompt.
	FormatLegacy = "legacy"
)

type slotsBlob struct {
	Raw       string   `json:"raw"`
	APIUsed   string   `json:"api_used"`
	Model     string   `json:"model"`
	Timestamp string   `json:"timestamp"`
	Format    string   `json:"format"`
	Slots     slotsDoc `json:"slots"`
}

type slotsDoc struct {
	Subject  string   `json:"subject"`
	Setting  string   `json:"setting"`
	Colors   []string `json:"colors"`
	Lighting string   `json:"lighting"`
	Mood     string   `json:"mood"`
	Style    string   `json:"style"`
	Tags     []string `json:"tags"`
}

type legacyBlob struct {
	Raw       string    `json:"raw"`
	APIUsed   string    `json:"api_used"`
	Model     string    `json:"model"`
	Timestamp string    `json:"timestamp"`
	Format    string    `json:"format"`
	Parsed    legacyDoc `json:"parsed"`
}

type legacyDoc struct {
	Caption     string   `json:"caption"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
	Categories  []string `json:"categories"`
}

type heuristicBlob struct {
	Description string        `json:"description"`
	Subjects    string        `json:"subjects"`
	Scene       string        `json:"scene"`
	Mood        string        `json:"mood"`
	Quality     string        `json:"quality"`
	APIUsed     string        `json:"api_used"`
	Model       string        `json:"model"`
	Timestamp   string        `json:"timestamp"`
	Statistics  statisticsDoc `json:"statistics"`
}

type statisticsDoc struct {
	AspectRatio    float64 `json:"aspect_ratio"`
	BlurScore      float64 `json:"blur_score"`
	MeanBrightness float64 `json:"mean_brightness"`
}

// Blob serializes the outcome as the audit JSON stored alongside the
// record. Remote outcomes carry a format discriminator; the heuristic blob
// has none and is recognized by its api_used field instead.
func (o Outcome) Blob() (string, error) {
	var payload any
	switch o.Format {
	case FormatSlots:
		payload = slotsBlob{
			Raw:       o.Raw,
			APIUsed:   "ollama",
			Model:     o.Model,
			Timestamp: o.Timestamp,
			Format:    FormatSlots,
			Slots: slotsDoc{
				Subject:  o.Slots.Subject,
				Setting:  o.Slots.Setting,
				Colors:   emptyIfNil(o.Slots.Colors),
				Lighting: o.Slots.Lighting,
				Mood:     o.Slots.Mood,
				Style:    o.Slots.Style,
				Tags:     emptyIfNil(o.Slots.Tags),
			},
		}
	case FormatLegacy:
		payload = legacyBlob{
			Raw:       o.Raw,
			APIUsed:   "ollama",
			Model:     o.Model,
			Timestamp: o.Timestamp,
			Format:    FormatLegacy,
			Parsed: legacyDoc{
				Caption:     o.Legacy.Caption,
				Description: o.Legacy.Description,
				Tags:        emptyIfNil(o.Legacy.Tags),
				Keywords:    emptyIfNil(o.Legacy.Keywords),
				Categories:  emptyIfNil(o.Legacy.Categories),
			},
		}
	default:
		payload = heuristicBlob{
			Description: o.Heuristic.Description,
			Subjects:    o.Heuristic.Subjects,
			Scene:       o.Heuristic.Scene,
			Mood:        o.Heuristic.Mood,
			Quality:     o.Heuristic.Quality,
			APIUsed:     "local",
			Model:       "heuristic",
			Timestamp:   o.Timestamp,
			Statistics: statisticsDoc{
				AspectRatio:    o.Heuristic.Stats.AspectRatio,
				BlurScore:      o.Heuristic.Stats.BlurScore,
				MeanBrightness: o.Heuristic.Stats.MeanBrightness,
			},
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
