package airtable

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFetchRecords(t *testing.T) {
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"records": [
				{"id": "rec1", "fields": {"Handle": "@bob", "Amount": "100", "Currency": "USDC", "Paid Out": "May 25"}},
				{"id": "rec2", "fields": {"Handle": ["@alice"], "Amount": 50.5}}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "key", BaseID: "app123", APIBase: srv.URL, Logger: testLogger()})

	records, err := c.FetchRecords(context.Background(), "Payouts", 1000)
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}

	if gotPath != "/v0/app123/Payouts" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer key" {
		t.Errorf("auth = %q", gotAuth)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "rec1" {
		t.Errorf("id = %q", records[0].ID)
	}
	// Field values stay heterogeneous.
	if records[0].Fields["Amount"] != "100" {
		t.Errorf("string amount = %v", records[0].Fields["Amount"])
	}
	if records[1].Fields["Amount"] != 50.5 {
		t.Errorf("numeric amount = %v", records[1].Fields["Amount"])
	}
	if arr, ok := records[1].Fields["Handle"].([]any); !ok || len(arr) != 1 {
		t.Errorf("array handle = %v", records[1].Fields["Handle"])
	}
}

func TestFetchRecords_Pagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {}}], "offset": "next"}`)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": "rec2", "fields": {}}]}`)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "key", BaseID: "app123", APIBase: srv.URL, Logger: testLogger()})

	records, err := c.FetchRecords(context.Background(), "Payouts", 1000)
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (offset followed)", calls)
	}
	if len(records) != 2 || records[1].ID != "rec2" {
		t.Errorf("records = %+v", records)
	}
}

func TestFetchRecords_BoundedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {}}, {"id": "rec2", "fields": {}}], "offset": "more"}`)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "key", BaseID: "app123", APIBase: srv.URL, Logger: testLogger()})

	records, err := c.FetchRecords(context.Background(), "Payouts", 2)
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want bound of 2 honored", len(records))
	}
}

func TestFetchRecords_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"NOT_FOUND"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Token: "key", BaseID: "nope", APIBase: srv.URL, Logger: testLogger()})

	if _, err := c.FetchRecords(context.Background(), "Payouts", 10); err == nil {
		t.Error("expected error on HTTP 404")
	}
}
