package domain

// IntentKind is the classified purpose of a trigger-stripped message.
type IntentKind int

const (
	// NoIntent means the activation phrase was present but carried no
	// actionable content.
	NoIntent IntentKind = iota
	// SearchIntent asks for a knowledge-base search.
	SearchIntent
	// EarningsIntent asks for an earnings summary.
	EarningsIntent
)

func (k IntentKind) String() string {
	switch k {
	case SearchIntent:
		return "search"
	case EarningsIntent:
		return "earnings"
	default:
		return "none"
	}
}

// Intent is the result of classifying a trigger-stripped message.
// Phrase is set only for SearchIntent and is non-empty after trimming.
// Month is set only for EarningsIntent; empty means "all time".
type Intent struct {
	Kind   IntentKind
	Phrase string
	Month  string
}
