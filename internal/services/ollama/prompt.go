package ollama

// SlotPrompt instructs the model to answer in the 7-line slot grammar.
// The SUBJECT, SETTING, and STYLE lines gate acceptance downstream.
const SlotPrompt = `Output EXACTLY these 7 lines. No extra text.

SUBJECT: <main subject(s) in 3-10 words>
SETTING: <where it is / environment in 6-14 words>
COLORS: <2-5 color words, comma-separated>
LIGHTING: <lighting in 3-10 words>
MOOD: <mood in 2-8 words>
STYLE: <art style in 2-10 words>
TAGS: <6-10 comma-separated nouns, no colors>`

// LegacyPrompt instructs the model to answer in the 5-line structured
// grammar used as a fallback when the slot response is unusable.
const LegacyPrompt = `Output EXACTLY 5 lines. No extra text.

CAPTION: <max 20 words>
DESCRIPTION: <2-4 sentences. Include: setting, lighting, dominant colors (name 2-4), mood, style>
TAGS: <6-10 comma-separated nouns, no colors>
KEYWORDS: <8-15 comma-separated, include style+environment+lighting, allow colors here>
CATEGORIES: <1-3 comma-separated broad buckets>`
