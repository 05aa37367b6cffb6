// Package sources adapts the public recipe and cocktail APIs to MenuItem.
//
// Every exported adapter operation is total: transport failures, non-200
// statuses and malformed payloads are logged and turned into an empty result.
package sources

import (
	"context"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// Source is an external API that produces menu items of one variant.
type Source interface {
	Name() string
	ItemType() models.ItemType
	Enabled() bool
}

// TextSearcher searches a source by free text.
type TextSearcher interface {
	Source
	SearchByText(ctx context.Context, term string) []models.MenuItem
}

// IngredientSearcher searches a source by a list of ingredients in one call.
type IngredientSearcher interface {
	Source
	SearchByIngredients(ctx context.Context, terms []string) []models.MenuItem
}

// ItemFetcher looks a single item up by its provider id (without prefix).
type ItemFetcher interface {
	Source
	GetByID(ctx context.Context, providerID string) (models.MenuItem, bool)
}

// RandomFetcher returns random items.
type RandomFetcher interface {
	Source
	GetRandom(ctx context.Context, count int) []models.MenuItem
}

// AreaBrowser lists regional cuisines and the items that belong to them.
type AreaBrowser interface {
	Source
	ListAreas(ctx context.Context) []string
	FilterByArea(ctx context.Context, area string) []string
}

// Pinger issues one lightweight request to check reachability.
type Pinger interface {
	Source
	Ping(ctx context.Context) error
}
