package assistant

import "fmt"

// Split breaks body into blocks no longer than max characters, since the
// underlying channel enforces a maximum message size. Splits happen at hard
// character boundaries, not at word or paragraph boundaries, and each part
// is labeled "Part i/N" so the reader can reassemble long output.
// Concatenating the parts without their labels reproduces body exactly.
func Split(body string, max int) []string {
	runes := []rune(body)
	if max <= 0 || len(runes) <= max {
		return []string{body}
	}

	n := (len(runes) + max - 1) / max
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * max
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, fmt.Sprintf("Part %d/%d:\n%s", i+1, n, string(runes[start:end])))
	}
	return parts
}
