package testutil

import (
	"context"
	"sync"

	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
)

// --- MockSource ---

// MockSource is a mock implementation of every sources capability. Unset
// function fields return empty results.
type MockSource struct {
	SourceName string
	Type       models.ItemType
	Disabled   bool

	SearchByTextFunc        func(ctx context.Context, term string) []models.MenuItem
	SearchByIngredientsFunc func(ctx context.Context, terms []string) []models.MenuItem
	GetByIDFunc             func(ctx context.Context, providerID string) (models.MenuItem, bool)
	GetRandomFunc           func(ctx context.Context, count int) []models.MenuItem
	ListAreasFunc           func(ctx context.Context) []string
	FilterByAreaFunc        func(ctx context.Context, area string) []string
	PingFunc                func(ctx context.Context) error

	mu    sync.Mutex
	Calls []string
}

func (m *MockSource) record(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	m.mu.Unlock()
}

// CallCount returns how many calls were recorded.
func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsSnapshot returns a copy of the recorded calls.
func (m *MockSource) CallsSnapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

func (m *MockSource) Name() string {
	if m.SourceName == "" {
		return "Mock"
	}
	return m.SourceName
}

func (m *MockSource) ItemType() models.ItemType {
	if m.Type == "" {
		return models.ItemTypeStandardDish
	}
	return m.Type
}

func (m *MockSource) Enabled() bool { return !m.Disabled }

func (m *MockSource) SearchByText(ctx context.Context, term string) []models.MenuItem {
	m.record("text:" + term)
	if m.SearchByTextFunc != nil {
		return m.SearchByTextFunc(ctx, term)
	}
	return []models.MenuItem{}
}

func (m *MockSource) SearchByIngredients(ctx context.Context, terms []string) []models.MenuItem {
	m.record("ingredients")
	if m.SearchByIngredientsFunc != nil {
		return m.SearchByIngredientsFunc(ctx, terms)
	}
	return []models.MenuItem{}
}

func (m *MockSource) GetByID(ctx context.Context, providerID string) (models.MenuItem, bool) {
	m.record("lookup:" + providerID)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, providerID)
	}
	return models.MenuItem{}, false
}

func (m *MockSource) GetRandom(ctx context.Context, count int) []models.MenuItem {
	m.record("random")
	if m.GetRandomFunc != nil {
		return m.GetRandomFunc(ctx, count)
	}
	return []models.MenuItem{}
}

func (m *MockSource) ListAreas(ctx context.Context) []string {
	m.record("areas")
	if m.ListAreasFunc != nil {
		return m.ListAreasFunc(ctx)
	}
	return []string{}
}

func (m *MockSource) FilterByArea(ctx context.Context, area string) []string {
	m.record("area:" + area)
	if m.FilterByAreaFunc != nil {
		return m.FilterByAreaFunc(ctx, area)
	}
	return []string{}
}

func (m *MockSource) Ping(ctx context.Context) error {
	m.record("ping")
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- MockKVStore ---

// MockKVStore is an in-memory repository.KVStore whose operations can be
// forced to fail.
type MockKVStore struct {
	*repository.MemoryKVStore

	// Error overrides: set these to force specific methods to return errors.
	GetErr    error
	PutErr    error
	DeleteErr error
}

// NewMockKVStore creates an empty MockKVStore.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{MemoryKVStore: repository.NewMemoryKVStore()}
}

func (m *MockKVStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.MemoryKVStore.Get(ctx, namespace, key)
}

func (m *MockKVStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	return m.MemoryKVStore.Put(ctx, namespace, key, value)
}

func (m *MockKVStore) Delete(ctx context.Context, namespace, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.MemoryKVStore.Delete(ctx, namespace, key)
}
