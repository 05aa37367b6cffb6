package sources

import (
	"context"
	"net/url"

	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"go.uber.org/zap"
)

const cocktailDBIngredientSlots = 15

// TheCocktailDB adapts the TheCocktailDB v1 API.
type TheCocktailDB struct {
	baseURL string
	enabled bool
	client  *jsonClient
}

// NewTheCocktailDB creates a TheCocktailDB adapter.
func NewTheCocktailDB(ep config.SourceEndpoint, enabled bool) *TheCocktailDB {
	return &TheCocktailDB{
		baseURL: ep.BaseURL,
		enabled: enabled,
		client:  newJSONClient(string(models.SourceTheCocktailDB), ep),
	}
}

type cocktailDBResponse struct {
	Drinks []payload `json:"drinks"`
}

func (s *TheCocktailDB) Name() string              { return "TheCocktailDB" }
func (s *TheCocktailDB) ItemType() models.ItemType { return models.ItemTypeCocktail }
func (s *TheCocktailDB) Enabled() bool             { return s.enabled }

// SearchByText searches drinks by name.
func (s *TheCocktailDB) SearchByText(ctx context.Context, term string) []models.MenuItem {
	drinks, err := s.fetchDrinks(ctx, "search", "/search.php?s="+url.QueryEscape(term))
	if err != nil {
		s.warn("search", err, zap.String("term", term))
		return []models.MenuItem{}
	}
	return toItems(drinks, transformDrink)
}

// GetByID looks a drink up by its TheCocktailDB id.
func (s *TheCocktailDB) GetByID(ctx context.Context, providerID string) (models.MenuItem, bool) {
	drinks, err := s.fetchDrinks(ctx, "lookup", "/lookup.php?i="+url.QueryEscape(providerID))
	if err != nil {
		s.warn("lookup", err, zap.String("provider_id", providerID))
		return models.MenuItem{}, false
	}
	if len(drinks) == 0 {
		return models.MenuItem{}, false
	}
	return transformDrink(drinks[0]), true
}

// GetRandom pulls count random drinks one after another. A failed pull is
// skipped, so fewer than count items may come back.
func (s *TheCocktailDB) GetRandom(ctx context.Context, count int) []models.MenuItem {
	items := []models.MenuItem{}
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			break
		}
		drinks, err := s.fetchDrinks(ctx, "random", "/random.php")
		if err != nil {
			s.warn("random", err)
			continue
		}
		if len(drinks) > 0 {
			items = append(items, transformDrink(drinks[0]))
		}
	}
	return items
}

// Ping requests one random drink.
func (s *TheCocktailDB) Ping(ctx context.Context) error {
	_, err := s.client.getBody(ctx, "ping", s.baseURL+"/random.php", nil)
	return err
}

func (s *TheCocktailDB) fetchDrinks(ctx context.Context, operation, path string) ([]payload, error) {
	var resp cocktailDBResponse
	if err := s.client.getJSON(ctx, operation, s.baseURL+path, &resp); err != nil {
		return nil, err
	}
	return resp.Drinks, nil
}

func (s *TheCocktailDB) warn(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	logger.ForSource(s.Name()).Warn("source request failed", fields...)
}

func transformDrink(d payload) models.MenuItem {
	category := d.str("strCategory")
	item := models.NewCocktail(
		models.SourceTheCocktailDB,
		providerIDOr(d.str("idDrink")),
		orDefault(d.str("strDrink"), "Untitled Drink"),
		models.CocktailDetails{
			Alcoholic: d.str("strAlcoholic") == "Alcoholic",
			Glass:     d.str("strGlass"),
			Category:  category,
		},
	)
	item.Image = d.str("strDrinkThumb")
	item.Ingredients = d.numberedIngredients(cocktailDBIngredientSlots)
	item.Instructions = splitInstructions(d.str("strInstructions"))
	item.Cuisine = orDefault(category, "Cocktail")
	item.VideoURL = d.str("strVideo")
	return item
}
