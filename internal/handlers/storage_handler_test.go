package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/middleware"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/service"
	"github.com/windoze95/recipefinder-api/internal/testutil"
)

func newStorageRouter(store *testutil.MockKVStore) *gin.Engine {
	favorites := NewFavoritesHandler(service.NewFavoritesService(store))
	pantry := NewPantryHandler(service.NewPantryService(store))

	r := gin.New()
	api := r.Group("/", middleware.RequireClientID())
	api.GET("/favorites", favorites.ListFavorites)
	api.POST("/favorites", favorites.AddFavorite)
	api.POST("/favorites/toggle", favorites.ToggleFavorite)
	api.GET("/favorites/:item_id", favorites.IsFavorite)
	api.DELETE("/favorites/:item_id", favorites.RemoveFavorite)
	api.GET("/pantry", pantry.GetPantry)
	api.PUT("/pantry", pantry.ReplacePantry)
	api.POST("/pantry/items", pantry.AddPantryItem)
	api.DELETE("/pantry/items/:name", pantry.RemovePantryItem)
	return r
}

func doJSON(r http.Handler, method, path, clientID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if clientID != "" {
		req.Header.Set(middleware.ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFavorites(t *testing.T, w *httptest.ResponseRecorder) []models.MenuItem {
	t.Helper()
	var body struct {
		Favorites []models.MenuItem `json:"favorites"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body.Favorites
}

func decodePantry(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body.Ingredients
}

func TestFavorites_RequireClientID(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())

	w := doJSON(r, "GET", "/favorites", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFavorites_AddListRemove(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())
	dish := testutil.TestDish("52772", "Teriyaki Chicken Casserole")

	w := doJSON(r, "POST", "/favorites", "client-1", dish)
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d, body: %s", w.Code, w.Body.String())
	}
	// Adding the same id twice keeps one entry.
	doJSON(r, "POST", "/favorites", "client-1", dish)

	w = doJSON(r, "GET", "/favorites", "client-1", nil)
	if favorites := decodeFavorites(t, w); len(favorites) != 1 || favorites[0].ID != dish.ID {
		t.Fatalf("favorites = %+v, want [%s]", favorites, dish.ID)
	}

	// Favorites are per client.
	w = doJSON(r, "GET", "/favorites", "client-2", nil)
	if favorites := decodeFavorites(t, w); len(favorites) != 0 {
		t.Errorf("client-2 favorites = %+v, want none", favorites)
	}

	w = doJSON(r, "GET", "/favorites/"+dish.ID, "client-1", nil)
	var contains struct {
		Favorite bool `json:"favorite"`
	}
	json.Unmarshal(w.Body.Bytes(), &contains)
	if !contains.Favorite {
		t.Error("expected item to be a favorite")
	}

	w = doJSON(r, "DELETE", "/favorites/"+dish.ID, "client-1", nil)
	if favorites := decodeFavorites(t, w); len(favorites) != 0 {
		t.Errorf("favorites after remove = %+v, want none", favorites)
	}
}

func TestFavorites_AddRejectsInvalidItem(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())

	w := doJSON(r, "POST", "/favorites", "client-1", map[string]string{"title": "No id"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	req := httptest.NewRequest("POST", "/favorites", bytes.NewBufferString("{not json"))
	req.Header.Set(middleware.ClientIDHeader, "client-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestFavorites_Toggle(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())
	drink := testutil.TestCocktail("11007", "Margarita")

	for i, want := range []bool{true, false, true} {
		w := doJSON(r, "POST", "/favorites/toggle", "client-1", drink)
		if w.Code != http.StatusOK {
			t.Fatalf("toggle %d status = %d", i, w.Code)
		}
		var body struct {
			Favorite bool `json:"favorite"`
		}
		json.Unmarshal(w.Body.Bytes(), &body)
		if body.Favorite != want {
			t.Errorf("toggle %d favorite = %v, want %v", i, body.Favorite, want)
		}
	}
}

func TestFavorites_StoreFailure(t *testing.T) {
	store := testutil.NewMockKVStore()
	store.GetErr = errors.New("connection refused")
	r := newStorageRouter(store)

	w := doJSON(r, "GET", "/favorites", "client-1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Failed to load favorites" {
		t.Errorf("error = %q, store details should not leak", body["error"])
	}
}

func TestPantry_ReplaceAddRemove(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())

	w := doJSON(r, "PUT", "/pantry", "client-1", ReplacePantryRequest{Ingredients: []string{" Rice", "rice", "", "Onion"}})
	if w.Code != http.StatusOK {
		t.Fatalf("replace status = %d, body: %s", w.Code, w.Body.String())
	}
	if got := decodePantry(t, w); !equalStrings(got, []string{"rice", "onion"}) {
		t.Errorf("pantry = %v, want [rice onion]", got)
	}

	w = doJSON(r, "POST", "/pantry/items", "client-1", AddPantryItemRequest{Ingredient: "Garlic"})
	if got := decodePantry(t, w); !equalStrings(got, []string{"rice", "onion", "garlic"}) {
		t.Errorf("pantry = %v, want [rice onion garlic]", got)
	}

	w = doJSON(r, "DELETE", "/pantry/items/ONION", "client-1", nil)
	if got := decodePantry(t, w); !equalStrings(got, []string{"rice", "garlic"}) {
		t.Errorf("pantry = %v, want [rice garlic]", got)
	}

	w = doJSON(r, "GET", "/pantry", "client-1", nil)
	if got := decodePantry(t, w); !equalStrings(got, []string{"rice", "garlic"}) {
		t.Errorf("pantry = %v, want [rice garlic]", got)
	}
}

func TestPantry_AddBlankIngredient(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())

	w := doJSON(r, "POST", "/pantry/items", "client-1", AddPantryItemRequest{Ingredient: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPantry_EmptyByDefault(t *testing.T) {
	r := newStorageRouter(testutil.NewMockKVStore())

	w := doJSON(r, "GET", "/pantry", "client-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decodePantry(t, w); got == nil || len(got) != 0 {
		t.Errorf("pantry = %#v, want an empty list", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
