package symptom

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators matches any run of line breaks, commas or semicolons.
var separators = regexp.MustCompile(`[\n,;]+`)

// Normalize trims, lower-cases and strips accents from s ("Pescoço" -> "pescoco").
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	// a chain keeps per-call buffers, so each call builds its own.
	// No recomposition step: the result is only matched against accent-free keywords.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// transform only fails on invalid chains; keep the lower-cased input
		return s
	}
	return out
}

// SplitFreeText splits s into trimmed, non-empty items in their original order.
func SplitFreeText(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := separators.Split(s, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// Phrase is a single free-text item in the forms rules match against.
type Phrase struct {
	Raw   string // as typed, trimmed
	Lower string // Raw lower-cased, accents kept
	Norm  string // Normalize(Raw)
}

// NewPhrase builds the matching forms for one item.
func NewPhrase(raw string) Phrase {
	return Phrase{
		Raw:   raw,
		Lower: strings.ToLower(raw),
		Norm:  Normalize(raw),
	}
}

// Phrases splits text and builds a Phrase per item.
func Phrases(text string) []Phrase {
	items := SplitFreeText(text)
	out := make([]Phrase, len(items))
	for i, it := range items {
		out[i] = NewPhrase(it)
	}
	return out
}
