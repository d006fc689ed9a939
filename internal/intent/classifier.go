// Package intent classifies trigger-stripped messages and extracts their
// parameters. Classification is deterministic: ordered pattern rules,
// first match wins, never longest match.
package intent

import (
	"regexp"
	"strings"

	"mylo/internal/domain"
)

// Built-in earnings-phrase rules, checked against the lower-cased remainder.
// Earnings rules take precedence over search phrasing.
var defaultEarningsPatterns = []string{
	`how much (have |did )?i (earned|made|earn|make)`,
	`my earnings`,
	`what (have |did )?i (earned|made)`,
	`total earnings`,
}

// Built-in search-phrase templates, tried in order against the
// original-cased remainder. Only the match is case-insensitive so the
// captured phrase keeps the user's casing. Each template has exactly one
// capture group; the first non-empty capture wins.
var defaultSearchTemplates = []string{
	`(?is)^can you (?:search|find|look)(?: for)?\s+(.+)$`,
	`(?is)^please (?:search|find|look)(?: for)?\s+(.+)$`,
	`(?is)^(?:search|find|look)(?: for)?\s+(.+)$`,
	`(?is)^i (?:need|want)(?: to find)?\s+(.+)$`,
	`(?is)^help me (?:find|search)(?: for)?\s+(.+)$`,
}

// monthPattern captures a full English month name preceded by in/for/during.
var monthPattern = regexp.MustCompile(`\b(?:in|for|during)\s+(january|february|march|april|may|june|july|august|september|october|november|december)\b`)

// Classifier maps a trigger-stripped message to exactly one Intent.
type Classifier struct {
	earnings []*regexp.Regexp
	searches []*regexp.Regexp
}

// New builds a Classifier with the built-in rule tables.
func New() *Classifier {
	c := &Classifier{}
	for _, p := range defaultEarningsPatterns {
		c.earnings = append(c.earnings, regexp.MustCompile(p))
	}
	for _, t := range defaultSearchTemplates {
		c.searches = append(c.searches, regexp.MustCompile(t))
	}
	return c
}

// Classify decides among earnings, search, and no intent. Total: every
// remainder maps to exactly one variant, with SearchIntent carrying the
// whole remainder as the fallback phrase.
func (c *Classifier) Classify(remainder string) domain.Intent {
	trimmed := strings.TrimSpace(remainder)
	lower := strings.ToLower(trimmed)

	for _, re := range c.earnings {
		if re.MatchString(lower) {
			return domain.Intent{
				Kind:  domain.EarningsIntent,
				Month: extractMonth(lower),
			}
		}
	}

	if trimmed == "" {
		return domain.Intent{Kind: domain.NoIntent}
	}

	return domain.Intent{
		Kind:   domain.SearchIntent,
		Phrase: c.extractPhrase(trimmed),
	}
}

// extractPhrase applies the search templates in order and returns the first
// non-empty capture, falling back to the full remainder verbatim.
func (c *Classifier) extractPhrase(remainder string) string {
	for _, re := range c.searches {
		m := re.FindStringSubmatch(remainder)
		if len(m) > 1 {
			if phrase := strings.TrimSpace(m[1]); phrase != "" {
				return phrase
			}
		}
	}
	return remainder
}

// extractMonth finds a month qualifier in the lower-cased remainder.
// Empty means "all time".
func extractMonth(lower string) string {
	m := monthPattern.FindStringSubmatch(lower)
	if len(m) > 1 {
		return m[1]
	}
	return ""
}
