package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/windoze95/recipefinder-api/internal/cache"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/sources"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MealSource is what the catalog needs from the standard dish source.
type MealSource interface {
	sources.TextSearcher
	sources.ItemFetcher
	sources.AreaBrowser
}

// CocktailSource is what the catalog needs from the cocktail source.
type CocktailSource interface {
	sources.TextSearcher
	sources.ItemFetcher
	sources.RandomFetcher
}

// Popular feed shape.
const (
	spotlightAreaCount      = 5
	spotlightLookupsPerArea = 10
	spotlightAreaTarget     = 15
	spotlightDishTarget     = 20
	spotlightSize           = 20
	popularQueryCount       = 4
	popularPerQuery         = 5
	popularCocktailPulls    = 6
	popularFeedSize         = 30
)

// Cocktail listing bounds.
const (
	DefaultCocktailCount = 5
	MaxCocktailCount     = 20
)

var (
	popularAreas = []string{
		"Italian", "Mexican", "American", "British", "Canadian", "Chinese", "Croatian",
		"Dutch", "Egyptian", "French", "Greek", "Indian", "Irish", "Jamaican", "Japanese",
		"Kenyan", "Malaysian", "Moroccan", "Polish", "Portuguese", "Russian", "Spanish",
		"Thai", "Tunisian", "Turkish", "Ukrainian", "Vietnamese",
	}
	spotlightDishes = []string{"pasta", "pizza", "chicken", "beef", "rice", "soup"}
	popularQueries  = []string{"chicken", "beef", "pasta", "rice", "fish", "cake"}
)

// CatalogService serves item lookups, the popular feed and cocktail listings.
type CatalogService struct {
	Cfg       *config.Config
	Meals     MealSource
	Cocktails CocktailSource
	Local     *LocalRecipeService
	Cache     cache.Cache
	Enricher  *Enricher

	shuffle func([]models.MenuItem)
}

// NewCatalogService creates a new CatalogService. Either source may be nil.
func NewCatalogService(cfg *config.Config, meals MealSource, cocktails CocktailSource, local *LocalRecipeService, c cache.Cache, enricher *Enricher) *CatalogService {
	return &CatalogService{
		Cfg:       cfg,
		Meals:     meals,
		Cocktails: cocktails,
		Local:     local,
		Cache:     c,
		Enricher:  enricher,
		shuffle: func(items []models.MenuItem) {
			rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		},
	}
}

// GetItem looks an item up by its prefixed id. Ids from sources without a
// lookup, and any source miss, fall back to the admin-submitted recipes.
func (s *CatalogService) GetItem(ctx context.Context, id string) (models.MenuItem, error) {
	if providerID, ok := strings.CutPrefix(id, models.SourceTheMealDB.IDPrefix()); ok && s.Meals != nil && s.Meals.Enabled() {
		if item, found := s.Meals.GetByID(ctx, providerID); found {
			return s.Enricher.Enrich(ctx, item), nil
		}
	}
	if providerID, ok := strings.CutPrefix(id, models.SourceTheCocktailDB.IDPrefix()); ok && s.Cocktails != nil && s.Cocktails.Enabled() {
		if item, found := s.Cocktails.GetByID(ctx, providerID); found {
			return s.Enricher.Enrich(ctx, item), nil
		}
	}

	if s.Local != nil {
		item, found, err := s.Local.Find(ctx, id)
		if err != nil {
			return models.MenuItem{}, err
		}
		if found {
			return s.Enricher.Enrich(ctx, item), nil
		}
	}
	return models.MenuItem{}, repository.NewNotFoundError("item " + id + " not found")
}

// ListCocktails searches drinks by name, or returns count random drinks
// when query is empty. count is clamped to [1, MaxCocktailCount].
func (s *CatalogService) ListCocktails(ctx context.Context, query string, count int) []models.MenuItem {
	if s.Cocktails == nil || !s.Cocktails.Enabled() {
		return []models.MenuItem{}
	}
	if query = strings.TrimSpace(query); query != "" {
		return s.Enricher.EnrichAll(ctx, s.Cocktails.SearchByText(ctx, query))
	}
	if count <= 0 {
		count = DefaultCocktailCount
	}
	if count > MaxCocktailCount {
		count = MaxCocktailCount
	}
	return s.Enricher.EnrichAll(ctx, s.Cocktails.GetRandom(ctx, count))
}

// Popular builds the landing feed: a regional spotlight, the top results of
// a few popular searches and some random cocktails, deduplicated by title,
// shuffled and capped.
func (s *CatalogService) Popular(ctx context.Context) []models.MenuItem {
	var ttl time.Duration
	if s.Cfg != nil {
		ttl = s.Cfg.EnvVars.PopularCacheTTL
	}
	items := cachedItems(ctx, s.Cache, "popular", "popular:feed", ttl, func() []models.MenuItem {
		return s.buildPopular(ctx)
	})
	return s.Enricher.EnrichAll(ctx, items)
}

func (s *CatalogService) buildPopular(ctx context.Context) []models.MenuItem {
	var spotlight, searched, cocktails []models.MenuItem

	g := new(errgroup.Group)
	g.Go(func() error {
		spotlight = s.RegionalSpotlight(ctx)
		return nil
	})
	g.Go(func() error {
		searched = s.popularSearches(ctx)
		return nil
	})
	g.Go(func() error {
		cocktails = s.featuredCocktails(ctx)
		return nil
	})
	_ = g.Wait()

	all := make([]models.MenuItem, 0, len(spotlight)+len(searched)+len(cocktails))
	all = append(all, spotlight...)
	all = append(all, searched...)
	all = append(all, cocktails...)

	unique := DedupeByTitle(all)
	s.shuffle(unique)
	if len(unique) > popularFeedSize {
		unique = unique[:popularFeedSize]
	}
	logger.Get().Debug("built popular feed",
		zap.Int("spotlight", len(spotlight)),
		zap.Int("searched", len(searched)),
		zap.Int("cocktails", len(cocktails)),
		zap.Int("total", len(unique)))
	return unique
}

// RegionalSpotlight collects dishes from well-known areas the meal source
// supports, topped up with searches for popular dishes.
func (s *CatalogService) RegionalSpotlight(ctx context.Context) []models.MenuItem {
	if s.Meals == nil || !s.Meals.Enabled() {
		return []models.MenuItem{}
	}

	available := s.Meals.ListAreas(ctx)
	areas := []string{}
	for _, area := range popularAreas {
		for _, a := range available {
			if strings.EqualFold(a, area) {
				areas = append(areas, area)
				break
			}
		}
	}
	if len(areas) == 0 {
		areas = available
	}

	results := []models.MenuItem{}
	for _, area := range firstN(areas, spotlightAreaCount) {
		results = append(results, s.itemsInArea(ctx, area)...)
		if len(results) >= spotlightAreaTarget {
			break
		}
	}
	for _, dish := range spotlightDishes {
		found := s.Meals.SearchByText(ctx, dish)
		if len(found) == 0 {
			continue
		}
		results = append(results, found...)
		if len(results) >= spotlightDishTarget {
			break
		}
	}

	unique := DedupeByID(results)
	if len(unique) > spotlightSize {
		unique = unique[:spotlightSize]
	}
	return unique
}

// itemsInArea looks up the full details of the first few dishes of an area.
func (s *CatalogService) itemsInArea(ctx context.Context, area string) []models.MenuItem {
	ids := firstN(s.Meals.FilterByArea(ctx, area), spotlightLookupsPerArea)
	found := make([]*models.MenuItem, len(ids))

	g := new(errgroup.Group)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if item, ok := s.Meals.GetByID(ctx, id); ok {
				found[i] = &item
			}
			return nil
		})
	}
	_ = g.Wait()

	items := make([]models.MenuItem, 0, len(found))
	for _, item := range found {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

func (s *CatalogService) popularSearches(ctx context.Context) []models.MenuItem {
	if s.Meals == nil || !s.Meals.Enabled() {
		return []models.MenuItem{}
	}

	queries := popularQueries[:popularQueryCount]
	results := make([][]models.MenuItem, len(queries))
	g := new(errgroup.Group)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			found := s.Meals.SearchByText(ctx, q)
			if len(found) > popularPerQuery {
				found = found[:popularPerQuery]
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	items := []models.MenuItem{}
	for _, r := range results {
		items = append(items, r...)
	}
	return items
}

// featuredCocktails pulls one random cocktail per concurrent pull.
func (s *CatalogService) featuredCocktails(ctx context.Context) []models.MenuItem {
	if s.Cocktails == nil || !s.Cocktails.Enabled() {
		return []models.MenuItem{}
	}

	results := make([][]models.MenuItem, popularCocktailPulls)
	g := new(errgroup.Group)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i] = firstItems(s.Cocktails.GetRandom(ctx, 1), 1)
			return nil
		})
	}
	_ = g.Wait()

	items := []models.MenuItem{}
	for _, r := range results {
		items = append(items, r...)
	}
	return items
}

func firstItems(items []models.MenuItem, n int) []models.MenuItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
