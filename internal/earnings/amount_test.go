package earnings

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 1234.5, 1234.5},
		{"int", 7, 7},
		{"plain string", "100", 100},
		{"currency string", "$1,234.50", 1234.50},
		{"negative string", "-42.10", -42.10},
		{"noisy string", "about 12 dollars", 12},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"array first element", []any{"7", "ignored"}, 7},
		{"numeric array", []any{12.5}, 12.5},
		{"empty array", []any{}, 0},
		{"string slice", []string{"9.99"}, 9.99},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseAmount(tc.in); got != tc.want {
				t.Errorf("ParseAmount(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
