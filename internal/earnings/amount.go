package earnings

import (
	"strconv"
	"strings"
)

// ParseAmount converts an arbitrary ledger field value into a decimal
// amount. It is total: malformed input yields 0, never an error, so one bad
// spreadsheet cell can't abort an aggregation. Strings keep only digits,
// minus signs, and periods before parsing ("$1,234.50" → 1234.50); arrays
// contribute their first element; nil and unknown types are 0.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountText(v)
	case []any:
		if len(v) == 0 {
			return 0
		}
		return ParseAmount(v[0])
	case []string:
		if len(v) == 0 {
			return 0
		}
		return parseAmountText(v[0])
	default:
		return 0
	}
}

func parseAmountText(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
