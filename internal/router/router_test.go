package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/middleware"
	"github.com/windoze95/recipefinder-api/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// offlineRouter builds the full router with every external source switched
// off so no request leaves the process.
func offlineRouter() *gin.Engine {
	cfg := &config.Config{
		EnvVars: config.EnvVars{
			AdminToken:  "admin-token",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Sources: config.DefaultSources(),
	}
	return SetupRouter(cfg, repository.NewMemoryKVStore(), nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req.RemoteAddr = "192.0.2.1:4321"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	r := offlineRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		body     string
		wantCode int
	}{
		{"ping", "GET", "/ping", nil, "", http.StatusOK},
		{"metrics", "GET", "/metrics", nil, "", http.StatusOK},
		{"health", "GET", "/v1/health", nil, "", http.StatusOK},
		{"search", "GET", "/v1/search?q=chicken", nil, "", http.StatusOK},
		{"search bad type", "GET", "/v1/search?q=chicken&type=soup", nil, "", http.StatusBadRequest},
		{"popular", "GET", "/v1/items/popular", nil, "", http.StatusOK},
		{"item not found", "GET", "/v1/items/themealdb-52772", nil, "", http.StatusNotFound},
		{"cocktails", "GET", "/v1/cocktails", nil, "", http.StatusOK},
		{"proxy without i", "GET", "/v1/proxy/recipepuppy", nil, "", http.StatusBadRequest},
		{"favorites without client", "GET", "/v1/favorites", nil, "", http.StatusBadRequest},
		{"favorites", "GET", "/v1/favorites", map[string]string{middleware.ClientIDHeader: "browser-1"}, "", http.StatusOK},
		{"pantry", "GET", "/v1/pantry", map[string]string{middleware.ClientIDHeader: "browser-1"}, "", http.StatusOK},
		{"admin auth", "POST", "/v1/admin/auth", nil, `{"token":"admin-token"}`, http.StatusOK},
		{"admin auth wrong", "POST", "/v1/admin/auth", nil, `{"token":"nope"}`, http.StatusUnauthorized},
		{"admin recipes without token", "GET", "/v1/admin/recipes", nil, "", http.StatusUnauthorized},
		{"admin recipes", "GET", "/v1/admin/recipes", map[string]string{middleware.AdminTokenHeader: "admin-token"}, "", http.StatusOK},
		{"admin images unconfigured", "POST", "/v1/admin/images", map[string]string{middleware.AdminTokenHeader: "admin-token"}, "", http.StatusServiceUnavailable},
		{"cook mode unknown item", "GET", "/v1/ws/cook/local-missing", nil, "", http.StatusNotFound},
		{"storage feed without client", "GET", "/v1/ws/storage", nil, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := serve(r, req)
			if w.Code != tt.wantCode {
				t.Errorf("%s %s = %d, want %d. body: %s", tt.method, tt.path, w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestHealth_AllSourcesDisabled(t *testing.T) {
	r := offlineRouter()

	w := serve(r, httptest.NewRequest("GET", "/v1/health", nil))

	var body struct {
		OK      bool `json:"ok"`
		Results []struct {
			Name    string `json:"name"`
			Enabled bool   `json:"enabled"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.OK || len(body.Results) != 3 {
		t.Fatalf("body = %+v, want ok with three sources", body)
	}
	for _, r := range body.Results {
		if r.Enabled {
			t.Errorf("%s should be disabled", r.Name)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := offlineRouter()

	w := serve(r, httptest.NewRequest("GET", "/ping", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID response header")
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	if !allowsAnyOrigin([]string{"*"}) || !allowsAnyOrigin(nil) {
		t.Error("wildcard and empty origin lists should allow any origin")
	}
	if allowsAnyOrigin([]string{"https://recipes.example.com"}) {
		t.Error("explicit origins should not allow any origin")
	}
}
