package classify

import (
	"reflect"
	"strings"
	"testing"
)

const slotResponse = `SUBJECT: A cozy cat on a chair
SETTING: a warm room interior
COLORS: Brown, White
LIGHTING: warm ambient light
MOOD: calm
STYLE: digital painting
TAGS: Cat, Chair, Room, Interior`

func TestParseSlots(t *testing.T) {
	slots := ParseSlots(slotResponse)

	if slots.Subject != "A cozy cat on a chair" {
		t.Fatalf("Subject = %q", slots.Subject)
	}
	if slots.Setting != "a warm room interior" {
		t.Fatalf("Setting = %q", slots.Setting)
	}
	if !reflect.DeepEqual(slots.Colors, []string{"brown", "white"}) {
		t.Fatalf("Colors = %v", slots.Colors)
	}
	if !reflect.DeepEqual(slots.Tags, []string{"cat", "chair", "room", "interior"}) {
		t.Fatalf("Tags = %v", slots.Tags)
	}
	if !slots.Present() {
		t.Fatal("expected complete slots")
	}
}

func TestParseSlotsCaseInsensitiveLabels(t *testing.T) {
	slots := ParseSlots("subject: a dog\nSetting: a park\nstyle: photo realism")
	if slots.Subject != "a dog" || slots.Setting != "a park" || slots.Style != "photo realism" {
		t.Fatalf("mixed-case labels not matched: %+v", slots)
	}
}

func TestParseSlotsTruncation(t *testing.T) {
	slots := ParseSlots("COLORS: a, b, c, d, e, f, g\nTAGS: 1,2,3,4,5,6,7,8,9,10,11,12")
	if len(slots.Colors) != 5 {
		t.Fatalf("Colors len = %d, want 5", len(slots.Colors))
	}
	if len(slots.Tags) != 10 {
		t.Fatalf("Tags len = %d, want 10", len(slots.Tags))
	}
}

func TestSlotsPresentRequiresSubjectSettingStyle(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"all present", "SUBJECT: x\nSETTING: y\nSTYLE: z", true},
		{"missing setting", "SUBJECT: x\nSTYLE: z", false},
		{"missing subject", "SETTING: y\nSTYLE: z", false},
		{"missing style", "SUBJECT: x\nSETTING: y\nMOOD: m", false},
		{"empty text", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseSlots(tc.text).Present(); got != tc.want {
				t.Fatalf("Present() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSlotDescription(t *testing.T) {
	slots := ParseSlots(slotResponse)
	desc := slots.Description()

	if !strings.HasPrefix(desc, "Subject: A cozy cat on a chair. Setting: a warm room interior.") {
		t.Fatalf("Description = %q", desc)
	}
	if !strings.Contains(desc, "Colors: brown, white.") {
		t.Fatalf("missing colors sentence: %q", desc)
	}
	if !strings.HasSuffix(desc, "Style: digital painting.") {
		t.Fatalf("Description = %q", desc)
	}
}

func TestSlotDescriptionSkipsEmptyParts(t *testing.T) {
	slots := SlotResult{Subject: "a tree", Style: "oil painting"}
	if got := slots.Description(); got != "Subject: a tree. Style: oil painting." {
		t.Fatalf("Description = %q", got)
	}
}

func TestSlotKeywords(t *testing.T) {
	slots := ParseSlots(slotResponse)
	keywords := slots.Keywords()

	want := []string{"brown", "white", "warm ambient light", "calm", "digital painting", "a warm room interior"}
	if !reflect.DeepEqual(keywords, want) {
		t.Fatalf("Keywords = %v, want %v", keywords, want)
	}
}

func TestSlotKeywordsCappedAt12(t *testing.T) {
	slots := SlotResult{
		Colors:   []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10"},
		Lighting: "l", Mood: "m", Style: "s", Setting: "set",
	}
	if got := slots.Keywords(); len(got) != 12 {
		t.Fatalf("Keywords len = %d, want 12", len(got))
	}
}

func TestSlotCategories(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		style   string
		want    []string
	}{
		{"pixel style", "a knight", "Pixel art sprite", []string{"pixel art"}},
		{"architecture subject", "an old castle on a hill", "oil painting", []string{"architecture"}},
		{"both", "a city skyline", "pixel scene", []string{"pixel art", "architecture"}},
		{"default", "a cat", "watercolor", []string{"art"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := SlotResult{Subject: tc.subject, Style: tc.style}
			if got := slots.Categories(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Categories = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseLegacy(t *testing.T) {
	text := `CAPTION: A mountain lake at dawn
DESCRIPTION: Calm water reflects peaks under soft pink light.
TAGS: lake, mountain, Blue, bokeh, lake, water
KEYWORDS: blue, dawn, reflection, lens flare, mist
CATEGORIES: nature, landscape, travel, outdoors`

	legacy := ParseLegacy(text)

	if legacy.Caption != "A mountain lake at dawn" {
		t.Fatalf("Caption = %q", legacy.Caption)
	}
	if !reflect.DeepEqual(legacy.Tags, []string{"lake", "mountain", "water"}) {
		t.Fatalf("Tags = %v", legacy.Tags)
	}
	if !reflect.DeepEqual(legacy.Keywords, []string{"blue", "dawn", "reflection", "mist"}) {
		t.Fatalf("Keywords = %v", legacy.Keywords)
	}
	if !reflect.DeepEqual(legacy.Categories, []string{"nature", "landscape", "travel"}) {
		t.Fatalf("Categories = %v", legacy.Categories)
	}
}

func TestLegacyBestDescription(t *testing.T) {
	withBoth := LegacyResult{Caption: "cap", Description: "desc"}
	if got := withBoth.BestDescription(); got != "desc" {
		t.Fatalf("BestDescription = %q", got)
	}
	captionOnly := LegacyResult{Caption: "cap"}
	if got := captionOnly.BestDescription(); got != "cap" {
		t.Fatalf("BestDescription = %q", got)
	}
}
