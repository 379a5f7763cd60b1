package classify

import (
	"regexp"
	"strings"
)

// stopWords are filler terms dropped from parsed tag lists.
var stopWords = map[string]bool{
	"image": true, "picture": true, "scene": true, "shows": true,
	"showing": true, "depicts": true, "depicting": true, "beautiful": true,
	"stunning": true, "detailed": true, "highly": true, "quality": true,
	"photo": true, "photograph": true, "artwork": true,
}

// colorWords are excluded from lists that should carry nouns, not colors.
var colorWords = map[string]bool{
	"red": true, "orange": true, "yellow": true, "green": true, "blue": true,
	"purple": true, "pink": true, "brown": true, "black": true, "white": true,
	"gray": true, "grey": true, "teal": true, "cyan": true, "magenta": true,
	"violet": true, "indigo": true, "gold": true, "silver": true, "neon": true,
}

// cameraWords flag photography jargon; matched by substring as well as
// exact term.
var cameraWords = []string{
	"bokeh", "lens", "focal", "aperture", "iso", "shutter",
	"depth of field", "dof", "exposure",
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenRe      = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// splitCSV splits a comma-separated value into trimmed non-empty items.
func splitCSV(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// normalizeItem lowercases, strips punctuation, and collapses whitespace.
func normalizeItem(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = nonWordRe.ReplaceAllString(value, "")
	value = whitespaceRe.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// filterItems normalizes and deduplicates items, dropping stop words and
// optionally color or camera terms. Order is preserved.
func filterItems(items []string, excludeColors, excludeCamera bool) []string {
	filtered := []string{}
	seen := map[string]bool{}
	for _, raw := range items {
		norm := normalizeItem(raw)
		if norm == "" || stopWords[norm] || seen[norm] {
			continue
		}
		if excludeColors && colorWords[norm] {
			continue
		}
		if excludeCamera && containsCameraWord(norm) {
			continue
		}
		seen[norm] = true
		filtered = append(filtered, norm)
	}
	return filtered
}

func containsCameraWord(value string) bool {
	for _, word := range cameraWords {
		if strings.Contains(value, word) {
			return true
		}
	}
	return false
}

// keywordStopwords is the larger stopword set used when mining keywords out
// of free-text descriptions.
var keywordStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "into": true, "over": true, "under": true,
	"image": true, "photo": true, "picture": true, "scene": true,
	"view": true, "showing": true, "shows": true, "shown": true,
	"there": true, "their": true, "then": true, "than": true, "them": true,
	"they": true, "when": true, "where": true, "what": true, "which": true,
	"while": true, "your": true, "you": true, "a": true, "an": true,
	"of": true, "in": true, "on": true, "at": true, "by": true, "to": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"as": true, "it": true, "its": true, "or": true, "if": true,
}

// ExtractKeywords mines up to max distinct keywords from free text. Tokens
// shorter than three characters and common stopwords are skipped.
func ExtractKeywords(text string, max int) []string {
	if text == "" || max <= 0 {
		return nil
	}

	var keywords []string
	seen := map[string]bool{}
	for _, word := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(word) < 3 || keywordStopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) >= max {
			break
		}
	}
	return keywords
}

func truncate(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func dedupe(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
