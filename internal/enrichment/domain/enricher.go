// Package domain defines the enrichment context: deriving sensible defaults
// for a freshly captured memo (genre, session length, total effort) from
// nothing but its title and type.
package domain

import (
	"context"
	"errors"
)

// ErrEnrichmentUnavailable signals that no enrichment backend could serve the
// request. Memo creation treats it as a soft failure and falls back to
// deterministic defaults.
var ErrEnrichmentUnavailable = errors.New("enrichment service unavailable")

// Enrichment carries the derived defaults. Zero-valued fields mean the
// enricher had no opinion and the caller's value stands.
type Enrichment struct {
	Genre                  string
	SessionDurationMinutes int
	TotalDurationMinutes   int
}

// Enricher derives defaults for a memo. memoType is the string form of the
// planning context's memo type ("deadline", "routine", "backlog").
type Enricher interface {
	Enrich(ctx context.Context, title, memoType string) (Enrichment, error)
}
