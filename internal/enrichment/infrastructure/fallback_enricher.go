package infrastructure

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
)

// FallbackEnricher derives defaults without any external service. It is fully
// deterministic: the same title and type always yield the same enrichment, so
// memo creation stays reproducible when the LLM backend is down or unconfigured.
type FallbackEnricher struct{}

// NewFallbackEnricher creates the deterministic enricher.
func NewFallbackEnricher() *FallbackEnricher {
	return &FallbackEnricher{}
}

// Keyword buckets for the coarse genre guess. First match wins; order is part
// of the contract.
var genreKeywords = []struct {
	genre    string
	keywords []string
}{
	{"health", []string{"gym", "run", "workout", "stretch", "yoga", "walk"}},
	{"learning", []string{"read", "study", "course", "learn", "practice"}},
	{"finance", []string{"tax", "invoice", "budget", "bank", "pay"}},
	{"household", []string{"clean", "laundry", "repair", "grocery", "tidy"}},
	{"work", []string{"report", "meeting", "review", "email", "draft"}},
}

func (e *FallbackEnricher) Enrich(_ context.Context, title, memoType string) (domain.Enrichment, error) {
	enrichment := domain.Enrichment{Genre: "general"}

	lowered := strings.ToLower(title)
	for _, bucket := range genreKeywords {
		for _, kw := range bucket.keywords {
			if strings.Contains(lowered, kw) {
				enrichment.Genre = bucket.genre
				break
			}
		}
		if enrichment.Genre != "general" {
			break
		}
	}

	switch memoType {
	case "deadline":
		enrichment.SessionDurationMinutes = 45
		enrichment.TotalDurationMinutes = 180
	case "routine":
		enrichment.SessionDurationMinutes = 20
	default:
		enrichment.SessionDurationMinutes = 30
		enrichment.TotalDurationMinutes = 120
	}

	return enrichment, nil
}
