package domain

import "context"

// LedgerRecord is one row from the external payout table. Field values are
// heterogeneous (strings, numbers, arrays) and are kept as-is; the earnings
// engine does all interpretation. The record is read-only to this core.
type LedgerRecord struct {
	ID     string
	Fields map[string]any
}

// EarningsResult is the outcome of one earnings query. Buckets exist for at
// least "USDC" and "TOKEN" even when zero. Built fresh per query.
type EarningsResult struct {
	AmountByCurrency   map[string]float64
	MatchedRecordCount int
	Month              string // empty = all time
}

// LedgerSource is the external collaborator holding payout records.
type LedgerSource interface {
	// FetchRecords returns up to maxRecords rows from the named table.
	// An empty result is a valid state, not an error.
	FetchRecords(ctx context.Context, table string, maxRecords int) ([]LedgerRecord, error)
}
