package intent

import (
	"testing"

	"mylo/internal/domain"
)

func TestClassify_Earnings(t *testing.T) {
	c := New()

	cases := []struct {
		in    string
		month string
	}{
		{"how much have i earned", ""},
		{"how much did I make", ""},
		{"my earnings", ""},
		{"what have i made in May", "may"},
		{"total earnings for december", "december"},
		{"how much have i earned during June?", "june"},
	}

	for _, tc := range cases {
		it := c.Classify(tc.in)
		if it.Kind != domain.EarningsIntent {
			t.Errorf("Classify(%q): kind = %v, want earnings", tc.in, it.Kind)
			continue
		}
		if it.Month != tc.month {
			t.Errorf("Classify(%q): month = %q, want %q", tc.in, it.Month, tc.month)
		}
	}
}

func TestClassify_Search(t *testing.T) {
	c := New()

	cases := []struct {
		in     string
		phrase string
	}{
		{"search for project docs", "project docs"},
		{"can you search for the Q3 roadmap", "the Q3 roadmap"},
		{"please find the onboarding guide", "the onboarding guide"},
		{"i need the deploy runbook", "the deploy runbook"},
		{"i want to find release notes", "release notes"},
		{"help me find the style guide", "the style guide"},
		{"look for API Keys", "API Keys"},
	}

	for _, tc := range cases {
		it := c.Classify(tc.in)
		if it.Kind != domain.SearchIntent {
			t.Errorf("Classify(%q): kind = %v, want search", tc.in, it.Kind)
			continue
		}
		if it.Phrase != tc.phrase {
			t.Errorf("Classify(%q): phrase = %q, want %q", tc.in, it.Phrase, tc.phrase)
		}
	}
}

func TestClassify_CatchAllFallback(t *testing.T) {
	c := New()

	it := c.Classify("banana")
	if it.Kind != domain.SearchIntent || it.Phrase != "banana" {
		t.Errorf("Classify(banana) = %+v, want search with phrase banana", it)
	}
}

func TestClassify_PreservesCasing(t *testing.T) {
	c := New()

	it := c.Classify("CAN YOU FIND The Launch Plan")
	if it.Kind != domain.SearchIntent {
		t.Fatalf("kind = %v, want search", it.Kind)
	}
	if it.Phrase != "The Launch Plan" {
		t.Errorf("phrase = %q, want original casing preserved", it.Phrase)
	}
}

func TestClassify_Empty(t *testing.T) {
	c := New()

	for _, in := range []string{"", "   ", "\n"} {
		if it := c.Classify(in); it.Kind != domain.NoIntent {
			t.Errorf("Classify(%q): kind = %v, want none", in, it.Kind)
		}
	}
}

// Earnings rules run before search templates: a message with both shapes is
// an earnings query.
func TestClassify_EarningsPrecedence(t *testing.T) {
	c := New()

	it := c.Classify("search for how much have i earned")
	if it.Kind != domain.EarningsIntent {
		t.Errorf("kind = %v, want earnings (earnings rules take precedence)", it.Kind)
	}
}

func TestClassify_Total(t *testing.T) {
	c := New()

	// Every remainder maps to exactly one variant.
	for _, in := range []string{"", "banana", "how much have i earned", "find x"} {
		it := c.Classify(in)
		switch it.Kind {
		case domain.NoIntent, domain.SearchIntent, domain.EarningsIntent:
		default:
			t.Errorf("Classify(%q): unexpected kind %v", in, it.Kind)
		}
	}
}
