// Package airtable is the ledger collaborator: a thin client over the
// Airtable REST API.
package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mylo/internal/domain"
)

const (
	defaultAPIBase = "https://api.airtable.com"
	fetchTimeout   = 15 * time.Second
)

// Client implements domain.LedgerSource against the Airtable API.
type Client struct {
	apiBase string
	token   string
	baseID  string
	client  *http.Client
	logger  *slog.Logger
}

type ClientConfig struct {
	Token   string
	BaseID  string
	APIBase string // override for tests
	Logger  *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	return &Client{
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		token:   cfg.Token,
		baseID:  cfg.BaseID,
		client:  &http.Client{Timeout: fetchTimeout},
		logger:  cfg.Logger,
	}
}

// FetchRecords lists up to maxRecords rows from the named table, following
// Airtable's offset pagination. Field values stay heterogeneous (string,
// number, array) exactly as the API returns them.
func (c *Client) FetchRecords(ctx context.Context, table string, maxRecords int) ([]domain.LedgerRecord, error) {
	if maxRecords <= 0 {
		maxRecords = 1000
	}

	var records []domain.LedgerRecord
	offset := ""

	for {
		page, nextOffset, err := c.fetchPage(ctx, table, maxRecords, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)

		if nextOffset == "" || len(records) >= maxRecords {
			break
		}
		offset = nextOffset
	}

	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	c.logger.Debug("ledger records fetched", "table", table, "count", len(records))
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, table string, maxRecords int, offset string) ([]domain.LedgerRecord, string, error) {
	query := url.Values{}
	query.Set("maxRecords", strconv.Itoa(maxRecords))
	if offset != "" {
		query.Set("offset", offset)
	}
	endpoint := fmt.Sprintf("%s/v0/%s/%s?%s", c.apiBase, c.baseID, url.PathEscape(table), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("list records failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("airtable list: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var decoded listResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, "", fmt.Errorf("parse list response: %w", err)
	}

	records := make([]domain.LedgerRecord, 0, len(decoded.Records))
	for _, r := range decoded.Records {
		records = append(records, domain.LedgerRecord{ID: r.ID, Fields: r.Fields})
	}
	return records, decoded.Offset, nil
}

type listResponse struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset"`
}

type airtableRecord struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}
