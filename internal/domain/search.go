package domain

import (
	"context"
	"time"
)

// Page is one result from the document-search collaborator. Order of a
// result slice is relevance order as returned by the collaborator and is
// never changed by this core.
type Page struct {
	ID           string
	Title        string
	URL          string
	LastEditedAt time.Time
}

// DocumentSearcher is the external collaborator over searchable, titled
// content pages.
type DocumentSearcher interface {
	Search(ctx context.Context, query string) ([]Page, error)
}
