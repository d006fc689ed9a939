package notion

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const searchFixture = `{
	"results": [
		{
			"id": "page-1",
			"url": "https://notion.so/page-1",
			"last_edited_time": "2025-05-02T10:00:00.000Z",
			"properties": {
				"Name": {"type": "title", "title": [{"plain_text": "Deploy "}, {"plain_text": "Runbook"}]},
				"Status": {"type": "select"}
			}
		},
		{
			"id": "page-2",
			"url": "https://notion.so/page-2",
			"last_edited_time": "2025-04-01T00:00:00.000Z",
			"properties": {}
		}
	]
}`

func TestSearch(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		Token:   "secret",
		APIBase: srv.URL,
		Logger:  testLogger(),
	})

	pages, err := c.Search(context.Background(), "deploy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/v1/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotVersion != defaultAPIVersion {
		t.Errorf("version = %q", gotVersion)
	}
	if gotBody["query"] != "deploy" {
		t.Errorf("query = %v", gotBody["query"])
	}

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	// Rich-text segments of the title property are concatenated.
	if pages[0].Title != "Deploy Runbook" {
		t.Errorf("title = %q", pages[0].Title)
	}
	if pages[0].ID != "page-1" || pages[0].URL != "https://notion.so/page-1" {
		t.Errorf("page = %+v", pages[0])
	}
	if pages[0].LastEditedAt.IsZero() {
		t.Error("last edited time not parsed")
	}
	// A page without a title property stays in relevance order, just untitled.
	if pages[1].Title != "" {
		t.Errorf("titleless page title = %q", pages[1].Title)
	}
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "bad", APIBase: srv.URL, Logger: testLogger()})

	if _, err := c.Search(context.Background(), "x"); err == nil {
		t.Error("expected error on HTTP 401")
	}
}

func TestSearch_Unreachable(t *testing.T) {
	c := NewClient(ClientConfig{Token: "t", APIBase: "http://127.0.0.1:1", Logger: testLogger()})

	if _, err := c.Search(context.Background(), "x"); err == nil {
		t.Error("expected transport error")
	}
}
