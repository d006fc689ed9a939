// Package notion is the document-search collaborator: a thin client over
// the Notion search API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mylo/internal/domain"
)

const (
	defaultAPIBase    = "https://api.notion.com"
	defaultAPIVersion = "2022-06-28"
	defaultPageSize   = 20
	searchTimeout     = 15 * time.Second
	userAgentString   = "Mylo/0.1"
)

// Client implements domain.DocumentSearcher against the Notion API.
type Client struct {
	apiBase  string
	token    string
	version  string
	pageSize int
	client   *http.Client
	logger   *slog.Logger
}

type ClientConfig struct {
	Token      string
	APIBase    string // override for tests
	APIVersion string
	PageSize   int
	Logger     *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Client{
		apiBase:  strings.TrimRight(cfg.APIBase, "/"),
		token:    cfg.Token,
		version:  cfg.APIVersion,
		pageSize: cfg.PageSize,
		client:   &http.Client{Timeout: searchTimeout},
		logger:   cfg.Logger,
	}
}

// Search queries Notion for pages matching query. Result order is Notion's
// relevance order and is preserved as-is.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Page, error) {
	payload := map[string]any{
		"query":     query,
		"page_size": c.pageSize,
		"filter":    map[string]string{"property": "object", "value": "page"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgentString)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("notion search: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	pages := make([]domain.Page, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		pages = append(pages, domain.Page{
			ID:           r.ID,
			Title:        r.title(),
			URL:          r.URL,
			LastEditedAt: r.LastEditedTime,
		})
	}

	c.logger.Debug("notion search done", "query", query, "results", len(pages))
	return pages, nil
}

type searchResponse struct {
	Results []notionPage `json:"results"`
}

type notionPage struct {
	ID             string                    `json:"id"`
	URL            string                    `json:"url"`
	LastEditedTime time.Time                 `json:"last_edited_time"`
	Properties     map[string]notionProperty `json:"properties"`
}

type notionProperty struct {
	Type  string     `json:"type"`
	Title []richText `json:"title"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

// title extracts the page title from whichever property carries it. Notion
// names the title property per database, so every property is checked.
func (p notionPage) title() string {
	for _, prop := range p.Properties {
		if prop.Type != "title" || len(prop.Title) == 0 {
			continue
		}
		var sb strings.Builder
		for _, rt := range prop.Title {
			sb.WriteString(rt.PlainText)
		}
		if t := strings.TrimSpace(sb.String()); t != "" {
			return t
		}
	}
	return ""
}
