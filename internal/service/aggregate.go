package service

import (
	"context"
	"strings"

	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/sources"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxIngredientSearches caps the per-ingredient text searches issued when
// a search has ingredients but no query.
const maxIngredientSearches = 3

// maxConcurrentSourceCalls bounds how many adapter calls one search runs at once.
const maxConcurrentSourceCalls = 8

// Aggregator fans a search out to every applicable source and merges the
// results. Any of its sources may be nil.
type Aggregator struct {
	Meals       sources.TextSearcher
	Cocktails   sources.TextSearcher
	Ingredients sources.IngredientSearcher
}

// NewAggregator creates a new Aggregator.
func NewAggregator(meals, cocktails sources.TextSearcher, ingredients sources.IngredientSearcher) *Aggregator {
	return &Aggregator{
		Meals:       meals,
		Cocktails:   cocktails,
		Ingredients: ingredients,
	}
}

// sourceCall is one planned adapter invocation.
type sourceCall func(ctx context.Context) []models.MenuItem

// Aggregate returns nothing for params without a query or ingredients.
// Otherwise it runs every planned call concurrently and waits for all of them.
// A failing source contributes nothing and never affects the others. The
// merged list is filtered by type and deduplicated by title, keeping the
// first occurrence in call order.
func (a *Aggregator) Aggregate(ctx context.Context, params models.SearchParams) []models.MenuItem {
	if !params.HasIntent() {
		return []models.MenuItem{}
	}
	calls := a.plan(params)
	if len(calls) == 0 {
		return []models.MenuItem{}
	}

	results := make([][]models.MenuItem, len(calls))
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentSourceCalls)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.Get().Error("source call panicked", zap.Any("panic", r))
					results[i] = nil
				}
			}()
			results[i] = call(ctx)
			return nil
		})
	}
	_ = g.Wait()

	merged := []models.MenuItem{}
	for _, items := range results {
		for _, item := range items {
			if params.AllowsType(item.Type) {
				merged = append(merged, item)
			}
		}
	}
	return DedupeByTitle(merged)
}

// plan decides which adapter calls a search needs, in result order.
func (a *Aggregator) plan(params models.SearchParams) []sourceCall {
	var calls []sourceCall

	if enabled(a.Meals) && params.AllowsType(models.ItemTypeStandardDish) {
		if params.Query != "" {
			calls = append(calls, textCall(a.Meals, params.Query))
		}
		if len(params.Ingredients) > 0 && params.Query == "" {
			for _, ingredient := range firstN(params.Ingredients, maxIngredientSearches) {
				calls = append(calls, textCall(a.Meals, ingredient))
			}
		}
		if cuisine := strings.ToLower(params.Cuisine); cuisine != "" && cuisine != "all" && cuisine != "international" {
			calls = append(calls, textCall(a.Meals, params.Cuisine))
		}
	}

	if enabled(a.Cocktails) && params.CocktailsIncluded() && params.AllowsType(models.ItemTypeCocktail) && params.Query != "" {
		calls = append(calls, textCall(a.Cocktails, params.Query))
	}

	if enabled(a.Ingredients) && len(params.Ingredients) > 0 && params.AllowsType(models.ItemTypeStandardDish) {
		searcher, terms := a.Ingredients, params.Ingredients
		calls = append(calls, func(ctx context.Context) []models.MenuItem {
			return searcher.SearchByIngredients(ctx, terms)
		})
	}

	return calls
}

func textCall(searcher sources.TextSearcher, term string) sourceCall {
	return func(ctx context.Context) []models.MenuItem {
		return searcher.SearchByText(ctx, term)
	}
}

func enabled(s sources.Source) bool {
	return s != nil && s.Enabled()
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// DedupeByTitle keeps the first item for each case-insensitive title.
func DedupeByTitle(items []models.MenuItem) []models.MenuItem {
	return dedupe(items, func(item models.MenuItem) string {
		return strings.ToLower(item.Title)
	})
}

// DedupeByID keeps the first item for each id.
func DedupeByID(items []models.MenuItem) []models.MenuItem {
	return dedupe(items, func(item models.MenuItem) string {
		return item.ID
	})
}

func dedupe(items []models.MenuItem, key func(models.MenuItem) string) []models.MenuItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
