// Package trigger recognizes the activation phrase that engages the
// assistant in free-text mode.
package trigger

import (
	"regexp"
	"strings"
)

// Detector matches an activation phrase anchored at the start of a message,
// case-insensitive, optionally followed by a comma and/or whitespace.
type Detector struct {
	phrase string
	re     *regexp.Regexp
}

// New builds a Detector for the given phrase. Whitespace between the words
// of the phrase is matched flexibly ("hey  mylo" still triggers).
func New(phrase string) *Detector {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		words = []string{"hey", "mylo"}
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	pattern := `(?i)^\s*` + strings.Join(quoted, `\s+`) + `\b[,\s]*`
	return &Detector{
		phrase: strings.Join(words, " "),
		re:     regexp.MustCompile(pattern),
	}
}

// Phrase returns the normalized activation phrase.
func (d *Detector) Phrase() string { return d.phrase }

// Detect reports whether raw starts with the activation phrase and returns
// the text after it, with the phrase and any trailing comma/whitespace
// stripped. Pure function, no side effects.
func (d *Detector) Detect(raw string) (remainder string, triggered bool) {
	loc := d.re.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}
	return raw[loc[1]:], true
}
