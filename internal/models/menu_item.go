package models

import "strings"

// ItemType tags which variant a MenuItem is.
type ItemType string

// ItemType enum values.
const (
	ItemTypeStandardDish ItemType = "standard-dish"
	ItemTypeCocktail     ItemType = "cocktail"
)

// ParseItemType maps user input onto an ItemType. "recipe" is accepted as an
// alias for standard dishes and "drink" for cocktails.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard-dish", "recipe", "dish":
		return ItemTypeStandardDish, true
	case "cocktail", "drink":
		return ItemTypeCocktail, true
	}
	return "", false
}

// Source identifies the adapter that produced an item.
type Source string

// Source enum values. The id prefix of an item is derived from its source.
const (
	SourceTheMealDB     Source = "themealdb"
	SourceTheCocktailDB Source = "thecocktaildb"
	SourceRecipePuppy   Source = "recipepuppy"
	SourceLocal         Source = "local"
)

// IDPrefix returns the prefix used for ids minted by this source.
func (s Source) IDPrefix() string {
	switch s {
	case SourceTheCocktailDB:
		return "cocktail-"
	case SourceTheMealDB:
		return "themealdb-"
	case SourceRecipePuppy:
		return "recipepuppy-"
	case SourceLocal:
		return "local-"
	}
	return string(s) + "-"
}

// Origin is a coarse geographic guess for a dish.
type Origin string

// Origin enum values.
const (
	OriginGhana   Origin = "Ghana"
	OriginNigeria Origin = "Nigeria"
	OriginAfrica  Origin = "Africa"
	OriginGlobal  Origin = "Global"
)

// Difficulty is an effort tier estimated from a recipe's size.
type Difficulty string

// Difficulty enum values.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// VideoTimestamp marks a labelled moment in a recipe video.
type VideoTimestamp struct {
	Label string `json:"label"`
	Time  int    `json:"time"`
}

// CocktailDetails holds the fields that only exist on the cocktail variant.
type CocktailDetails struct {
	Alcoholic bool   `json:"alcoholic"`
	Glass     string `json:"glass,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Enrichment holds derived, non-authoritative attributes.
type Enrichment struct {
	Origin          Origin           `json:"origin,omitempty"`
	Difficulty      Difficulty       `json:"difficulty,omitempty"`
	MatchPercentage *int             `json:"matchPercentage,omitempty"`
	VideoTimestamps []VideoTimestamp `json:"videoTimestamps,omitempty"`
}

// MenuItem is a normalized recipe or cocktail from any source. The shared
// base fields apply to both variants; Cocktail is set only when Type is
// ItemTypeCocktail.
type MenuItem struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Image        string           `json:"image,omitempty"`
	VideoURL     string           `json:"videoUrl,omitempty"`
	SourceURL    string           `json:"sourceUrl,omitempty"`
	Ingredients  []string         `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	CookTime     *int             `json:"cookTime,omitempty"`
	Servings     *int             `json:"servings,omitempty"`
	Cuisine      string           `json:"cuisine,omitempty"`
	Area         string           `json:"area,omitempty"`
	Type         ItemType         `json:"type"`
	Source       Source           `json:"source"`
	Cocktail     *CocktailDetails `json:"cocktail,omitempty"`
	Enrichment
}

// NewStandardDish builds the standard-dish variant.
func NewStandardDish(source Source, providerID, title string) MenuItem {
	return MenuItem{
		ID:           source.IDPrefix() + providerID,
		Title:        title,
		Ingredients:  []string{},
		Instructions: []string{},
		Type:         ItemTypeStandardDish,
		Source:       source,
	}
}

// NewCocktail builds the cocktail variant.
func NewCocktail(source Source, providerID, title string, details CocktailDetails) MenuItem {
	return MenuItem{
		ID:           source.IDPrefix() + providerID,
		Title:        title,
		Ingredients:  []string{},
		Instructions: []string{},
		Type:         ItemTypeCocktail,
		Source:       source,
		Cocktail:     &details,
	}
}

// IsCocktail reports whether the item is the cocktail variant.
func (m MenuItem) IsCocktail() bool {
	return m.Type == ItemTypeCocktail
}

// HasVideo reports whether the item links a video.
func (m MenuItem) HasVideo() bool {
	return m.VideoURL != ""
}

// WithEnrichment returns a copy of the item with the given derived fields.
// The receiver is left untouched.
func (m MenuItem) WithEnrichment(e Enrichment) MenuItem {
	m.Enrichment = e
	return m
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
