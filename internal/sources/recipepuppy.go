package sources

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"go.uber.org/zap"
)

// RecipePuppy adapts the RecipePuppy ingredient search API. It has no
// lookup by id. When a proxy URL is set it is tried before the direct
// endpoint.
type RecipePuppy struct {
	baseURL  string
	proxyURL string
	enabled  bool
	client   *jsonClient
}

// NewRecipePuppy creates a RecipePuppy adapter. proxyURL may be empty.
func NewRecipePuppy(ep config.SourceEndpoint, proxyURL string, enabled bool) *RecipePuppy {
	return &RecipePuppy{
		baseURL:  ep.BaseURL,
		proxyURL: strings.TrimRight(proxyURL, "/"),
		enabled:  enabled,
		client:   newJSONClient(string(models.SourceRecipePuppy), ep),
	}
}

type recipePuppyResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Href        string `json:"href"`
		Ingredients string `json:"ingredients"`
		Thumbnail   string `json:"thumbnail"`
	} `json:"results"`
}

func (s *RecipePuppy) Name() string              { return "RecipePuppy" }
func (s *RecipePuppy) ItemType() models.ItemType { return models.ItemTypeStandardDish }
func (s *RecipePuppy) Enabled() bool             { return s.enabled }

// SearchByIngredients searches with all terms in one request.
func (s *RecipePuppy) SearchByIngredients(ctx context.Context, terms []string) []models.MenuItem {
	body, err := s.lookup(ctx, "search", strings.Join(terms, ","))
	if err != nil {
		s.warn("search", err, zap.Strings("terms", terms))
		return []models.MenuItem{}
	}

	var resp recipePuppyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		s.warn("search", err, zap.Strings("terms", terms))
		return []models.MenuItem{}
	}

	items := make([]models.MenuItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		item := models.NewStandardDish(
			models.SourceRecipePuppy,
			providerIDOr(lastPathSegment(r.Href)),
			orDefault(strings.TrimSpace(r.Title), "Untitled Recipe"),
		)
		item.Image = r.Thumbnail
		item.SourceURL = r.Href
		item.Ingredients = splitList(r.Ingredients, ", ")
		items = append(items, item)
	}
	return items
}

// FetchRaw returns the upstream response body for an ingredient query
// without transforming it. It always goes to the direct endpoint.
func (s *RecipePuppy) FetchRaw(ctx context.Context, ingredients string) ([]byte, error) {
	return s.client.getBody(ctx, "passthrough", s.baseURL+"/?i="+url.QueryEscape(ingredients), validJSON)
}

// Ping issues a one-ingredient search.
func (s *RecipePuppy) Ping(ctx context.Context) error {
	_, err := s.client.getBody(ctx, "ping", s.baseURL+"/?i=egg", nil)
	return err
}

// lookup tries the proxy first, then the direct endpoint.
func (s *RecipePuppy) lookup(ctx context.Context, operation, ingredients string) ([]byte, error) {
	query := "?i=" + url.QueryEscape(ingredients)
	if s.proxyURL != "" {
		body, err := s.client.getBody(ctx, operation+"_proxy", s.proxyURL+query, validJSON)
		if err == nil {
			return body, nil
		}
		s.warn(operation+"_proxy", err)
	}
	return s.client.getBody(ctx, operation, s.baseURL+"/"+query, validJSON)
}

func (s *RecipePuppy) warn(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	logger.ForSource(s.Name()).Warn("source request failed", fields...)
}

func validJSON(body []byte) error {
	var v json.RawMessage
	return json.Unmarshal(body, &v)
}
