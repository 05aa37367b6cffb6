package service

import (
	"context"
	"strings"
	"time"

	"github.com/windoze95/recipefinder-api/internal/cache"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/metrics"
	"github.com/windoze95/recipefinder-api/internal/models"
)

// maxIngredientTokenLength is the longest whitespace token a query may have
// and still be read as an ingredient list.
const maxIngredientTokenLength = 12

// SearchService runs smart searches: intent detection, aggregation,
// enrichment, ranking and result filters.
type SearchService struct {
	Cfg        *config.Config
	Aggregator *Aggregator
	Cache      cache.Cache
	Enricher   *Enricher
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg *config.Config, aggregator *Aggregator, c cache.Cache, enricher *Enricher) *SearchService {
	return &SearchService{
		Cfg:        cfg,
		Aggregator: aggregator,
		Cache:      c,
		Enricher:   enricher,
	}
}

// searchCacheKey holds the parameters that change what the aggregator fetches.
type searchCacheKey struct {
	Query            string          `json:"q"`
	Ingredients      []string        `json:"i"`
	Cuisine          string          `json:"c"`
	Type             models.ItemType `json:"t"`
	IncludeCocktails bool            `json:"x"`
}

// Search returns ranked, enriched items for params. Match percentages are
// computed against pantry. Parameters without a query or ingredients yield
// an empty list.
func (s *SearchService) Search(ctx context.Context, params models.SearchParams, pantry []string) []models.MenuItem {
	if ingredients := DetectIngredientIntent(params); ingredients != nil {
		params.Ingredients = ingredients
	}
	if !params.HasIntent() {
		return []models.MenuItem{}
	}

	key := cache.Key("search", searchCacheKey{
		Query:            params.Query,
		Ingredients:      params.Ingredients,
		Cuisine:          params.Cuisine,
		Type:             params.Type,
		IncludeCocktails: params.CocktailsIncluded(),
	})
	items := cachedItems(ctx, s.Cache, "search", key, s.searchTTL(), func() []models.MenuItem {
		return s.Aggregator.Aggregate(ctx, params)
	})

	items = s.Enricher.EnrichAll(ctx, items)
	items = WithMatchScores(items, pantry)
	items = FilterResults(Rank(items), params)

	metrics.ObserveSearchResults(len(items))
	return items
}

func (s *SearchService) searchTTL() time.Duration {
	if s.Cfg == nil {
		return 0
	}
	return s.Cfg.EnvVars.SearchCacheTTL
}

// DetectIngredientIntent returns the ingredient list a search should use,
// or nil when it has none. Explicit ingredients win. Otherwise a query that
// contains a comma, or has at least three short words, is split on commas
// and used when that yields more than one term.
func DetectIngredientIntent(params models.SearchParams) []string {
	if len(params.Ingredients) > 0 {
		return params.Ingredients
	}
	if !looksLikeIngredientList(params.Query) {
		return nil
	}

	var terms []string
	for _, part := range strings.Split(params.Query, ",") {
		if part = strings.TrimSpace(part); part != "" {
			terms = append(terms, part)
		}
	}
	if len(terms) > 1 {
		return terms
	}
	return nil
}

func looksLikeIngredientList(query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(query, ",") {
		return true
	}
	tokens := strings.Fields(query)
	if len(tokens) < 3 {
		return false
	}
	for _, token := range tokens {
		if len(token) > maxIngredientTokenLength {
			return false
		}
	}
	return true
}

// FilterResults applies the video, cook time and cuisine filters. Items
// whose cook time or cuisine is unknown pass those filters. diet is not
// applied because no source reports diet data.
func FilterResults(items []models.MenuItem, params models.SearchParams) []models.MenuItem {
	cuisine := strings.ToLower(strings.TrimSpace(params.Cuisine))
	if cuisine == "all" {
		cuisine = ""
	}

	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if params.VideoOnly && !item.HasVideo() {
			continue
		}
		if params.CookTime > 0 && item.CookTime != nil && *item.CookTime > params.CookTime {
			continue
		}
		if cuisine != "" && item.Cuisine != "" && !strings.Contains(strings.ToLower(item.Cuisine), cuisine) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
