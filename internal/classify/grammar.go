package classify

import "strings"

// SlotResult holds the seven labeled slots of a structured caption response.
type SlotResult struct {
	Subject  string
	Setting  string
	Colors   []string
	Lighting string
	Mood     string
	Style    string
	Tags     []string
}

// ParseSlots extracts labeled slot values from a raw response. Labels are
// matched case-insensitively at line start; missing labels yield empty
// fields. Colors are capped at 5 items and tags at 10, both lowercased.
func ParseSlots(text string) SlotResult {
	lines := nonBlankLines(text)

	return SlotResult{
		Subject:  labeledValue(lines, "SUBJECT"),
		Setting:  labeledValue(lines, "SETTING"),
		Colors:   truncate(lowerCSV(labeledValue(lines, "COLORS")), 5),
		Lighting: labeledValue(lines, "LIGHTING"),
		Mood:     labeledValue(lines, "MOOD"),
		Style:    labeledValue(lines, "STYLE"),
		Tags:     truncate(lowerCSV(labeledValue(lines, "TAGS")), 10),
	}
}

// Present reports whether the response is complete enough to accept: the
// subject, setting, and style slots must all be filled.
func (s SlotResult) Present() bool {
	return s.Subject != "" && s.Setting != "" && s.Style != ""
}

// Description renders the slots as labeled sentences, skipping empty parts.
func (s SlotResult) Description() string {
	var parts []string
	if s.Subject != "" {
		parts = append(parts, "Subject: "+s.Subject+".")
	}
	if s.Setting != "" {
		parts = append(parts, "Setting: "+s.Setting+".")
	}
	if len(s.Colors) > 0 {
		parts = append(parts, "Colors: "+strings.Join(s.Colors, ", ")+".")
	}
	if s.Lighting != "" {
		parts = append(parts, "Lighting: "+s.Lighting+".")
	}
	if s.Mood != "" {
		parts = append(parts, "Mood: "+s.Mood+".")
	}
	if s.Style != "" {
		parts = append(parts, "Style: "+s.Style+".")
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Keywords combines colors with the setting, lighting, mood, and style
// slots into a deduplicated list capped at 12 items.
func (s SlotResult) Keywords() []string {
	combined := append([]string{}, s.Colors...)
	for _, value := range []string{s.Lighting, s.Mood, s.Style, s.Setting} {
		if value != "" {
			combined = append(combined, value)
		}
	}
	return truncate(dedupe(combined), 12)
}

// Categories derives broad buckets from the style and subject slots. A
// pixel style maps to "pixel art", architectural subjects to
// "architecture", and anything else to "art". At most three buckets.
func (s SlotResult) Categories() []string {
	var cats []string
	style := strings.ToLower(s.Style)
	subject := strings.ToLower(s.Subject)

	if strings.Contains(style, "pixel") {
		cats = append(cats, "pixel art")
	}
	for _, word := range []string{"castle", "tower", "temple", "building", "city"} {
		if strings.Contains(subject, word) {
			cats = append(cats, "architecture")
			break
		}
	}
	if len(cats) == 0 {
		cats = append(cats, "art")
	}
	return truncate(cats, 3)
}

// LegacyResult holds the parsed five-line legacy caption response.
type LegacyResult struct {
	Caption     string
	Description string
	Tags        []string
	Keywords    []string
	Categories  []string
}

// ParseLegacy extracts labeled values from a legacy response and applies
// the list filters: tags drop colors and camera terms (max 10), keywords
// keep colors but drop camera terms (max 15), categories drop colors but
// keep camera terms (max 3).
func ParseLegacy(text string) LegacyResult {
	lines := nonBlankLines(text)

	return LegacyResult{
		Caption:     labeledValue(lines, "CAPTION"),
		Description: labeledValue(lines, "DESCRIPTION"),
		Tags:        truncate(filterItems(splitCSV(labeledValue(lines, "TAGS")), true, true), 10),
		Keywords:    truncate(filterItems(splitCSV(labeledValue(lines, "KEYWORDS")), false, true), 15),
		Categories:  truncate(filterItems(splitCSV(labeledValue(lines, "CATEGORIES")), true, false), 3),
	}
}

// BestDescription prefers the description line, falling back to the caption.
func (l LegacyResult) BestDescription() string {
	if l.Description != "" {
		return l.Description
	}
	return l.Caption
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func labeledValue(lines []string, label string) string {
	prefix := strings.ToUpper(label) + ":"
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(line), prefix) {
			_, value, _ := strings.Cut(line, ":")
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func lowerCSV(value string) []string {
	items := splitCSV(value)
	for i, item := range items {
		items[i] = strings.ToLower(item)
	}
	return items
}
