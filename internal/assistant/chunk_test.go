package assistant

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_ShortBodyUntouched(t *testing.T) {
	parts := Split("hello", 4000)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Errorf("Split = %v, want single unlabeled part", parts)
	}
}

func TestSplit_ExactCap(t *testing.T) {
	body := strings.Repeat("x", 4000)
	parts := Split(body, 4000)
	if len(parts) != 1 || parts[0] != body {
		t.Errorf("body at exactly the cap should not be split, got %d parts", len(parts))
	}
}

func TestSplit_LongBody(t *testing.T) {
	body := strings.Repeat("a", 9000)
	parts := Split(body, 4000)

	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}

	var rebuilt strings.Builder
	for i, part := range parts {
		label := fmt.Sprintf("Part %d/3:\n", i+1)
		if !strings.HasPrefix(part, label) {
			t.Errorf("part %d missing label %q: %q", i+1, label, part[:20])
			continue
		}
		rebuilt.WriteString(strings.TrimPrefix(part, label))
	}

	if rebuilt.String() != body {
		t.Error("concatenation of parts (ignoring labels) does not reproduce the body")
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	// "•" is three bytes in UTF-8 but one character; 3000 of them stay
	// under a 4000-character cap and must not be split.
	body := strings.Repeat("•", 3000)
	parts := Split(body, 4000)
	if len(parts) != 1 || parts[0] != body {
		t.Fatalf("3000-char multi-byte body split into %d parts", len(parts))
	}
}

func TestSplit_MultiByteBoundaries(t *testing.T) {
	body := strings.Repeat("é", 4500)
	parts := Split(body, 4000)

	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	var rebuilt strings.Builder
	for i, part := range parts {
		label := fmt.Sprintf("Part %d/2:\n", i+1)
		chunk := strings.TrimPrefix(part, label)
		if !utf8.ValidString(chunk) {
			t.Errorf("part %d is not valid UTF-8", i+1)
		}
		rebuilt.WriteString(chunk)
	}
	if rebuilt.String() != body {
		t.Error("concatenation of parts (ignoring labels) does not reproduce the body")
	}
	if got := len([]rune(strings.TrimPrefix(parts[0], "Part 1/2:\n"))); got != 4000 {
		t.Errorf("first chunk holds %d chars, want 4000", got)
	}
}

func TestSplit_HardBoundaries(t *testing.T) {
	// Splits ignore word boundaries: a word straddling the cap is cut.
	body := strings.Repeat("x", 3999) + "word"
	parts := Split(body, 4000)

	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if !strings.HasSuffix(parts[0], "xw") {
		t.Errorf("first part should cut mid-word, ends %q", parts[0][len(parts[0])-5:])
	}
	if !strings.HasSuffix(parts[1], "ord") {
		t.Errorf("second part should carry the rest, ends %q", parts[1])
	}
}
