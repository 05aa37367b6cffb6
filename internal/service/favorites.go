package service

import (
	"context"

	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
)

// FavoritesKey is the store key holding a client's favorite items.
const FavoritesKey = "recipe-finder-favorites"

// FavoritesService manages the favorite items of each client. Every
// operation reads the whole list and writes it back.
type FavoritesService struct {
	Store repository.KVStore
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(store repository.KVStore) *FavoritesService {
	return &FavoritesService{Store: store}
}

// List returns the client's favorites in the order they were added.
func (s *FavoritesService) List(ctx context.Context, clientID string) ([]models.MenuItem, error) {
	favorites := []models.MenuItem{}
	if err := loadValue(ctx, s.Store, clientID, FavoritesKey, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add appends item unless an item with the same id is already a favorite.
func (s *FavoritesService) Add(ctx context.Context, clientID string, item models.MenuItem) ([]models.MenuItem, error) {
	if item.ID == "" || item.Title == "" {
		return nil, validationErrorf("favorite must have an id and a title")
	}
	favorites, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if indexOfItem(favorites, item.ID) >= 0 {
		return favorites, nil
	}
	favorites = append(favorites, item)
	if err := saveValue(ctx, s.Store, clientID, FavoritesKey, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Remove drops the favorite with the given id.
func (s *FavoritesService) Remove(ctx context.Context, clientID, itemID string) ([]models.MenuItem, error) {
	favorites, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.MenuItem, 0, len(favorites))
	for _, f := range favorites {
		if f.ID != itemID {
			filtered = append(filtered, f)
		}
	}
	if err := saveValue(ctx, s.Store, clientID, FavoritesKey, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Contains reports whether the item is a favorite.
func (s *FavoritesService) Contains(ctx context.Context, clientID, itemID string) (bool, error) {
	favorites, err := s.List(ctx, clientID)
	if err != nil {
		return false, err
	}
	return indexOfItem(favorites, itemID) >= 0, nil
}

// Toggle adds the item when it is not a favorite and removes it otherwise.
// It returns whether the item is a favorite afterwards.
func (s *FavoritesService) Toggle(ctx context.Context, clientID string, item models.MenuItem) (bool, error) {
	isFavorite, err := s.Contains(ctx, clientID, item.ID)
	if err != nil {
		return false, err
	}
	if isFavorite {
		_, err = s.Remove(ctx, clientID, item.ID)
		return false, err
	}
	if _, err = s.Add(ctx, clientID, item); err != nil {
		return false, err
	}
	return true, nil
}

func indexOfItem(items []models.MenuItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
