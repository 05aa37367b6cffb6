package service

import (
	"context"
	"sort"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// unknownCookTime sorts items without a cook time after every real one.
const unknownCookTime = 9999

// Enricher derives origin, difficulty and video metadata for menu items.
type Enricher struct {
	Timestamper VideoTimestamper
}

// NewEnricher creates an Enricher. A nil timestamper means timestamps are
// unsupported.
func NewEnricher(timestamper VideoTimestamper) *Enricher {
	if timestamper == nil {
		timestamper = UnsupportedTimestamper{}
	}
	return &Enricher{Timestamper: timestamper}
}

// Enrich returns a copy of item with origin, difficulty and video
// timestamps filled in. The match percentage is left as it was.
func (e *Enricher) Enrich(ctx context.Context, item models.MenuItem) models.MenuItem {
	enrichment := models.Enrichment{
		Origin:          InferOrigin(item.Title, item.Area),
		Difficulty:      EstimateDifficulty(item.Ingredients, item.Instructions),
		MatchPercentage: item.MatchPercentage,
	}
	if id, ok := ExtractYouTubeID(item.VideoURL); ok {
		enrichment.VideoTimestamps = e.Timestamper.Timestamps(ctx, id)
	}
	return item.WithEnrichment(enrichment)
}

// EnrichAll enriches every item, returning a new slice.
func (e *Enricher) EnrichAll(ctx context.Context, items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		out[i] = e.Enrich(ctx, item)
	}
	return out
}

// WithMatchScores returns copies of items with their match percentage
// computed against pantry.
func WithMatchScores(items []models.MenuItem, pantry []string) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		enrichment := item.Enrichment
		enrichment.MatchPercentage = models.IntPtr(ComputeMatchScore(pantry, item.Ingredients).Score)
		out[i] = item.WithEnrichment(enrichment)
	}
	return out
}

// Rank orders items by video presence, then match percentage (highest
// first), then cook time (shortest first). Ties keep their input order.
// The input slice is not modified.
func Rank(items []models.MenuItem) []models.MenuItem {
	ranked := append([]models.MenuItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.HasVideo() != b.HasVideo() {
			return a.HasVideo()
		}
		if am, bm := matchOf(a), matchOf(b); am != bm {
			return am > bm
		}
		return cookTimeOf(a) < cookTimeOf(b)
	})
	return ranked
}

func matchOf(item models.MenuItem) int {
	if item.MatchPercentage == nil {
		return 0
	}
	return *item.MatchPercentage
}

func cookTimeOf(item models.MenuItem) int {
	if item.CookTime == nil || *item.CookTime == 0 {
		return unknownCookTime
	}
	return *item.CookTime
}
