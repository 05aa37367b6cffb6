package sources

import (
	"context"
	"net/url"

	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"go.uber.org/zap"
)

// mealDBIngredientSlots is the number of numbered ingredient fields on a meal.
const mealDBIngredientSlots = 20

// TheMealDB adapts the TheMealDB v1 API.
type TheMealDB struct {
	baseURL string
	enabled bool
	client  *jsonClient
}

// NewTheMealDB creates a TheMealDB adapter.
func NewTheMealDB(ep config.SourceEndpoint, enabled bool) *TheMealDB {
	return &TheMealDB{
		baseURL: ep.BaseURL,
		enabled: enabled,
		client:  newJSONClient(string(models.SourceTheMealDB), ep),
	}
}

type mealDBResponse struct {
	Meals []payload `json:"meals"`
}

// Name returns the display name of the source.
func (s *TheMealDB) Name() string { return "TheMealDB" }

// ItemType returns the variant this source produces.
func (s *TheMealDB) ItemType() models.ItemType { return models.ItemTypeStandardDish }

// Enabled reports whether the source is switched on.
func (s *TheMealDB) Enabled() bool { return s.enabled }

// SearchByText searches meals by name.
func (s *TheMealDB) SearchByText(ctx context.Context, term string) []models.MenuItem {
	meals, err := s.fetchMeals(ctx, "search", "/search.php?s="+url.QueryEscape(term))
	if err != nil {
		s.warn("search", err, zap.String("term", term))
		return []models.MenuItem{}
	}
	return toItems(meals, transformMeal)
}

// GetByID looks a meal up by its TheMealDB id.
func (s *TheMealDB) GetByID(ctx context.Context, providerID string) (models.MenuItem, bool) {
	meals, err := s.fetchMeals(ctx, "lookup", "/lookup.php?i="+url.QueryEscape(providerID))
	if err != nil {
		s.warn("lookup", err, zap.String("provider_id", providerID))
		return models.MenuItem{}, false
	}
	if len(meals) == 0 {
		return models.MenuItem{}, false
	}
	return transformMeal(meals[0]), true
}

// GetRandom returns up to count random meals, one request each.
func (s *TheMealDB) GetRandom(ctx context.Context, count int) []models.MenuItem {
	items := []models.MenuItem{}
	for i := 0; i < count; i++ {
		meals, err := s.fetchMeals(ctx, "random", "/random.php")
		if err != nil {
			s.warn("random", err)
			continue
		}
		if len(meals) > 0 {
			items = append(items, transformMeal(meals[0]))
		}
	}
	return items
}

// ListAreas returns the regional cuisines TheMealDB knows about.
func (s *TheMealDB) ListAreas(ctx context.Context) []string {
	meals, err := s.fetchMeals(ctx, "list_areas", "/list.php?a=list")
	if err != nil {
		s.warn("list_areas", err)
		return []string{}
	}
	areas := make([]string, 0, len(meals))
	for _, m := range meals {
		if area := m.str("strArea"); area != "" {
			areas = append(areas, area)
		}
	}
	return areas
}

// FilterByArea returns the ids of meals from one area. The filter endpoint
// only returns summaries, so callers look details up by id.
func (s *TheMealDB) FilterByArea(ctx context.Context, area string) []string {
	meals, err := s.fetchMeals(ctx, "filter_area", "/filter.php?a="+url.QueryEscape(area))
	if err != nil {
		s.warn("filter_area", err, zap.String("area", area))
		return []string{}
	}
	ids := make([]string, 0, len(meals))
	for _, m := range meals {
		if id := m.str("idMeal"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ping requests one random meal.
func (s *TheMealDB) Ping(ctx context.Context) error {
	_, err := s.client.getBody(ctx, "ping", s.baseURL+"/random.php", nil)
	return err
}

func (s *TheMealDB) fetchMeals(ctx context.Context, operation, path string) ([]payload, error) {
	var resp mealDBResponse
	if err := s.client.getJSON(ctx, operation, s.baseURL+path, &resp); err != nil {
		return nil, err
	}
	return resp.Meals, nil
}

func (s *TheMealDB) warn(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	logger.ForSource(s.Name()).Warn("source request failed", fields...)
}

// transformMeal maps a TheMealDB meal onto a standard dish.
func transformMeal(m payload) models.MenuItem {
	item := models.NewStandardDish(
		models.SourceTheMealDB,
		providerIDOr(m.str("idMeal")),
		orDefault(m.str("strMeal"), "Untitled Recipe"),
	)
	item.Image = m.str("strMealThumb")
	item.Ingredients = m.numberedIngredients(mealDBIngredientSlots)
	item.Instructions = splitInstructions(m.str("strInstructions"))
	item.Area = m.str("strArea")
	item.Cuisine = orDefault(item.Area, "International")
	item.VideoURL = m.str("strYoutube")
	item.SourceURL = m.str("strSource")
	return item
}

func toItems(records []payload, transform func(payload) models.MenuItem) []models.MenuItem {
	items := make([]models.MenuItem, 0, len(records))
	for _, r := range records {
		items = append(items, transform(r))
	}
	return items
}
