package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/models"
)

const mealJSON = `{"meals":[{
	"idMeal":"52771",
	"strMeal":"Spicy Arrabiata Penne",
	"strArea":"Italian",
	"strMealThumb":"https://img/penne.jpg",
	"strYoutube":"https://www.youtube.com/watch?v=1IszT_guI08",
	"strInstructions":"Bring water to boil.\r\n\r\nAdd penne.\nServe.",
	"strIngredient1":"penne rigate","strMeasure1":"1 pound",
	"strIngredient2":"olive oil","strMeasure2":"1/4 cup",
	"strIngredient3":"","strMeasure3":"",
	"strIngredient4":null,"strMeasure4":null
}]}`

const drinkJSON = `{"drinks":[{
	"idDrink":"11007",
	"strDrink":"Margarita",
	"strCategory":"Ordinary Drink",
	"strAlcoholic":"Alcoholic",
	"strGlass":"Cocktail glass",
	"strDrinkThumb":"https://img/margarita.jpg",
	"strInstructions":"Shake with ice.",
	"strIngredient1":"Tequila","strMeasure1":"1 1/2 oz ",
	"strIngredient2":"Lime juice","strMeasure2":null
}]}`

const puppyJSON = `{"results":[{
	"title":" Bean Soup ",
	"href":"http://www.recipezaar.com/Bean-Soup-3134",
	"ingredients":"beans, onions, , garlic",
	"thumbnail":"http://img/bean.jpg"
}]}`

func endpoint(url string) config.SourceEndpoint {
	return config.SourceEndpoint{BaseURL: url, Timeout: 2 * time.Second}
}

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTheMealDB_SearchByText(t *testing.T) {
	var gotQuery string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("s")
		w.Write([]byte(mealJSON))
	})

	items := NewTheMealDB(endpoint(srv.URL), true).SearchByText(context.Background(), "penne pasta")
	if gotQuery != "penne pasta" {
		t.Errorf("query s = %q", gotQuery)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	item := items[0]
	if item.ID != "themealdb-52771" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.Type != models.ItemTypeStandardDish || item.Source != models.SourceTheMealDB {
		t.Errorf("Type/Source = %q/%q", item.Type, item.Source)
	}
	wantIngredients := []string{"1 pound penne rigate", "1/4 cup olive oil"}
	if strings.Join(item.Ingredients, "|") != strings.Join(wantIngredients, "|") {
		t.Errorf("Ingredients = %v, want %v", item.Ingredients, wantIngredients)
	}
	if len(item.Instructions) != 3 || item.Instructions[0] != "Bring water to boil." {
		t.Errorf("Instructions = %q", item.Instructions)
	}
	if item.Cuisine != "Italian" || item.Area != "Italian" {
		t.Errorf("Cuisine/Area = %q/%q", item.Cuisine, item.Area)
	}
	if item.VideoURL == "" {
		t.Error("strYoutube should become VideoURL")
	}
}

func TestTheMealDB_MissingAreaAndID(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":[{"strMeal":"Mystery"}]}`))
	})

	items := NewTheMealDB(endpoint(srv.URL), true).SearchByText(context.Background(), "x")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d", len(items))
	}
	if items[0].Cuisine != "International" {
		t.Errorf("Cuisine = %q, want International", items[0].Cuisine)
	}
	if !strings.HasPrefix(items[0].ID, "themealdb-") || len(items[0].ID) <= len("themealdb-") {
		t.Errorf("ID = %q, want generated id", items[0].ID)
	}
}

func TestTheMealDB_FailuresBecomeEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"meals":`)) }},
		{"null meals", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"meals":null}`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.handler)
			items := NewTheMealDB(endpoint(srv.URL), true).SearchByText(context.Background(), "x")
			if items == nil || len(items) != 0 {
				t.Errorf("items = %v, want empty non-nil", items)
			}
		})
	}
}

func TestTheMealDB_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewTheMealDB(endpoint(url), true)
	if items := s.SearchByText(context.Background(), "x"); len(items) != 0 {
		t.Errorf("items = %v", items)
	}
	if _, ok := s.GetByID(context.Background(), "1"); ok {
		t.Error("GetByID should miss when unreachable")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping should fail when unreachable")
	}
}

func TestTheMealDB_AreaBrowsing(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/list.php":
			w.Write([]byte(`{"meals":[{"strArea":"Italian"},{"strArea":"Mexican"},{"strArea":""}]}`))
		case "/filter.php":
			if r.URL.Query().Get("a") != "Italian" {
				t.Errorf("filter area = %q", r.URL.Query().Get("a"))
			}
			w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"A"},{"idMeal":"2","strMeal":"B"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	s := NewTheMealDB(endpoint(srv.URL), true)
	areas := s.ListAreas(context.Background())
	if strings.Join(areas, ",") != "Italian,Mexican" {
		t.Errorf("areas = %v", areas)
	}
	ids := s.FilterByArea(context.Background(), "Italian")
	if strings.Join(ids, ",") != "1,2" {
		t.Errorf("ids = %v", ids)
	}
}

func TestTheMealDB_GetByIDNotFound(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	})
	if _, ok := NewTheMealDB(endpoint(srv.URL), true).GetByID(context.Background(), "999"); ok {
		t.Error("GetByID should report absent")
	}
}

func TestTheCocktailDB_Transform(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(drinkJSON))
	})

	item, ok := NewTheCocktailDB(endpoint(srv.URL), true).GetByID(context.Background(), "11007")
	if !ok {
		t.Fatal("GetByID should find the drink")
	}
	if item.ID != "cocktail-11007" || !item.IsCocktail() {
		t.Errorf("ID = %q, Type = %q", item.ID, item.Type)
	}
	if item.Cocktail == nil || !item.Cocktail.Alcoholic || item.Cocktail.Glass != "Cocktail glass" {
		t.Errorf("Cocktail = %+v", item.Cocktail)
	}
	if item.Cuisine != "Ordinary Drink" {
		t.Errorf("Cuisine = %q, want category", item.Cuisine)
	}
	if strings.Join(item.Ingredients, "|") != "1 1/2 oz Tequila|Lime juice" {
		t.Errorf("Ingredients = %q", item.Ingredients)
	}
}

func TestTheCocktailDB_DefaultsWithoutCategory(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"drinks":[{"idDrink":"1","strAlcoholic":"Non alcoholic"}]}`))
	})

	items := NewTheCocktailDB(endpoint(srv.URL), true).SearchByText(context.Background(), "x")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d", len(items))
	}
	if items[0].Title != "Untitled Drink" || items[0].Cuisine != "Cocktail" || items[0].Cocktail.Alcoholic {
		t.Errorf("item = %+v", items[0])
	}
}

func TestTheCocktailDB_GetRandomSkipsFailedPulls(t *testing.T) {
	var calls int32
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1)%2 == 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(drinkJSON))
	})

	items := NewTheCocktailDB(endpoint(srv.URL), true).GetRandom(context.Background(), 4)
	if atomic.LoadInt32(&calls) != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestRecipePuppy_SearchByIngredients(t *testing.T) {
	var gotQuery string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("i")
		w.Write([]byte(puppyJSON))
	})

	items := NewRecipePuppy(endpoint(srv.URL), "", true).SearchByIngredients(context.Background(), []string{"beans", "garlic"})
	if gotQuery != "beans,garlic" {
		t.Errorf("query i = %q", gotQuery)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d", len(items))
	}
	item := items[0]
	if item.ID != "recipepuppy-Bean-Soup-3134" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.Title != "Bean Soup" {
		t.Errorf("Title = %q", item.Title)
	}
	if strings.Join(item.Ingredients, "|") != "beans|onions|garlic" {
		t.Errorf("Ingredients = %q", item.Ingredients)
	}
	if len(item.Instructions) != 0 || item.SourceURL != "http://www.recipezaar.com/Bean-Soup-3134" {
		t.Errorf("Instructions = %v, SourceURL = %q", item.Instructions, item.SourceURL)
	}
}

func TestRecipePuppy_ProxyFallsBackToDirect(t *testing.T) {
	var proxyCalls, directCalls int32
	proxy := serve(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&proxyCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	direct := serve(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&directCalls, 1)
		w.Write([]byte(puppyJSON))
	})

	items := NewRecipePuppy(endpoint(direct.URL), proxy.URL, true).SearchByIngredients(context.Background(), []string{"beans"})
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
	if proxyCalls != 1 || directCalls != 1 {
		t.Errorf("proxy calls = %d, direct calls = %d", proxyCalls, directCalls)
	}
}

func TestRecipePuppy_ProxyUsedWhenHealthy(t *testing.T) {
	var directCalls int32
	proxy := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(puppyJSON))
	})
	direct := serve(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&directCalls, 1)
	})

	items := NewRecipePuppy(endpoint(direct.URL), proxy.URL, true).SearchByIngredients(context.Background(), []string{"beans"})
	if len(items) != 1 || directCalls != 0 {
		t.Errorf("len(items) = %d, direct calls = %d", len(items), directCalls)
	}
}

func TestRecipePuppy_FetchRaw(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "bad" {
			w.Write([]byte("<html>"))
			return
		}
		w.Write([]byte(puppyJSON))
	})
	s := NewRecipePuppy(endpoint(srv.URL), "", true)

	body, err := s.FetchRaw(context.Background(), "beans")
	if err != nil || !strings.Contains(string(body), "Bean Soup") {
		t.Errorf("FetchRaw = %q, %v", body, err)
	}
	if _, err := s.FetchRaw(context.Background(), "bad"); err == nil {
		t.Error("FetchRaw should reject non-JSON bodies")
	}
}

func TestStatusError_Message(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := NewTheCocktailDB(endpoint(srv.URL), true).Ping(context.Background())
	if err == nil || err.Error() != "HTTP 503" {
		t.Errorf("Ping error = %v, want HTTP 503", err)
	}
}
