// Package earnings aggregates payout records from the external ledger.
package earnings

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"mylo/internal/config"
	"mylo/internal/domain"
)

const (
	defaultTable      = "Payouts"
	defaultMaxRecords = 1000

	// Bucket keys. "TOKENS" in the ledger is an alias of TOKEN.
	BucketUSDC  = "USDC"
	BucketToken = "TOKEN"
)

// Engine computes per-currency earnings totals for a user handle.
type Engine struct {
	source     domain.LedgerSource
	table      string
	maxRecords int
	fields     config.LedgerFieldsMap
	logger     *slog.Logger
}

type EngineConfig struct {
	Source     domain.LedgerSource
	Table      string
	MaxRecords int
	Fields     config.LedgerFieldsMap
	Logger     *slog.Logger
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = defaultMaxRecords
	}
	return &Engine{
		source:     cfg.Source,
		table:      cfg.Table,
		maxRecords: cfg.MaxRecords,
		fields:     cfg.Fields,
		logger:     cfg.Logger,
	}
}

// ComputeEarnings sums the ledger amounts for the given handle, optionally
// filtered to records whose paid-out label contains the month name. It is a
// pure function of its inputs and the ledger snapshot. The only error it
// returns wraps domain.ErrSourceUnavailable (the fetch itself failed); zero
// matches is a valid empty result.
func (e *Engine) ComputeEarnings(ctx context.Context, handle, month string) (domain.EarningsResult, error) {
	result := domain.EarningsResult{
		AmountByCurrency: map[string]float64{BucketUSDC: 0, BucketToken: 0},
		Month:            month,
	}

	want := normalizeHandle(handle)

	records, err := e.source.FetchRecords(ctx, e.table, e.maxRecords)
	if err != nil {
		return result, fmt.Errorf("%w: fetch ledger records: %v", domain.ErrSourceUnavailable, err)
	}

	monthLower := strings.ToLower(strings.TrimSpace(month))

	for _, rec := range records {
		if normalizeHandle(flatten(rec.Fields[e.fields.Identifier])) != want {
			continue
		}
		if monthLower != "" {
			paidOut := strings.ToLower(flatten(rec.Fields[e.fields.PaidOut]))
			// Loose substring match, not a date parse: tolerates ad hoc
			// labels like "May 25" or "May 2025 batch".
			if !strings.Contains(paidOut, monthLower) {
				continue
			}
		}

		result.MatchedRecordCount++

		amount := ParseAmount(rec.Fields[e.fields.Amount])
		switch strings.ToUpper(strings.TrimSpace(flatten(rec.Fields[e.fields.Currency]))) {
		case "USDC":
			result.AmountByCurrency[BucketUSDC] += amount
		case "TOKEN", "TOKENS":
			result.AmountByCurrency[BucketToken] += amount
		default:
			// Only the two known buckets are tracked; anything else is
			// dropped silently.
		}
	}

	for k, v := range result.AmountByCurrency {
		result.AmountByCurrency[k] = roundCents(v)
	}

	e.logger.Debug("earnings computed",
		"handle", want,
		"month", month,
		"matched", result.MatchedRecordCount,
	)

	return result, nil
}

// normalizeHandle strips a leading "@" and lower-cases for comparison.
func normalizeHandle(h string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
}

// flatten renders a heterogeneous field value as a single string. Array
// values are flattened by joining their elements.
func flatten(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, flatten(item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// roundCents rounds to two decimals, half away from zero.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
