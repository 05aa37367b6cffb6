package service

import (
	"context"
	"strings"

	"github.com/windoze95/recipefinder-api/internal/repository"
)

// PantryKey is the store key holding a client's pantry.
const PantryKey = "recipe-finder-pantry"

// PantryService manages the ingredients each client has on hand. Entries
// are stored lower-cased.
type PantryService struct {
	Store repository.KVStore
}

// NewPantryService creates a new PantryService.
func NewPantryService(store repository.KVStore) *PantryService {
	return &PantryService{Store: store}
}

// Get returns the client's pantry.
func (s *PantryService) Get(ctx context.Context, clientID string) ([]string, error) {
	pantry := []string{}
	if err := loadValue(ctx, s.Store, clientID, PantryKey, &pantry); err != nil {
		return nil, err
	}
	return pantry, nil
}

// Replace overwrites the pantry. Entries are trimmed and lower-cased, and
// blanks and repeats are dropped.
func (s *PantryService) Replace(ctx context.Context, clientID string, ingredients []string) ([]string, error) {
	pantry := []string{}
	for _, ingredient := range ingredients {
		ingredient = normalizePantryEntry(ingredient)
		if ingredient != "" && !contains(pantry, ingredient) {
			pantry = append(pantry, ingredient)
		}
	}
	if err := saveValue(ctx, s.Store, clientID, PantryKey, pantry); err != nil {
		return nil, err
	}
	return pantry, nil
}

// Add appends one ingredient unless it is already present.
func (s *PantryService) Add(ctx context.Context, clientID, ingredient string) ([]string, error) {
	ingredient = normalizePantryEntry(ingredient)
	if ingredient == "" {
		return nil, validationErrorf("ingredient must not be empty")
	}
	pantry, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if contains(pantry, ingredient) {
		return pantry, nil
	}
	pantry = append(pantry, ingredient)
	if err := saveValue(ctx, s.Store, clientID, PantryKey, pantry); err != nil {
		return nil, err
	}
	return pantry, nil
}

// Remove drops one ingredient, compared lower-cased.
func (s *PantryService) Remove(ctx context.Context, clientID, ingredient string) ([]string, error) {
	ingredient = normalizePantryEntry(ingredient)
	pantry, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	filtered := make([]string, 0, len(pantry))
	for _, p := range pantry {
		if p != ingredient {
			filtered = append(filtered, p)
		}
	}
	if err := saveValue(ctx, s.Store, clientID, PantryKey, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

func normalizePantryEntry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
