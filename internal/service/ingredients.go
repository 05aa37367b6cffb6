package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/windoze95/recipefinder-api/internal/models"
)

var (
	nonIngredientChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
)

// ingredientSynonyms maps a normalized pantry term to the spellings it also covers.
var ingredientSynonyms = map[string][]string{
	"tomato": {"tomatoes", "roma tomato", "cherry tomato"},
	"onion":  {"onions", "red onion", "white onion", "yellow onion"},
	"pepper": {"chili", "chilli", "bell pepper", "peppers"},
	"oil":    {"olive oil", "vegetable oil", "canola oil"},
	"garlic": {"garlic clove", "garlic cloves"},
}

// NormalizeIngredientName lower-cases name, replaces anything that is not a
// letter, digit or space with a space, and collapses runs of whitespace.
func NormalizeIngredientName(name string) string {
	n := nonIngredientChars.ReplaceAllString(strings.ToLower(name), " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(n, " "))
}

// ExpandSynonyms returns the normalized term followed by its normalized synonyms.
func ExpandSynonyms(term string) []string {
	key := NormalizeIngredientName(term)
	expanded := []string{key}
	for _, synonym := range ingredientSynonyms[key] {
		expanded = append(expanded, NormalizeIngredientName(synonym))
	}
	return expanded
}

// MatchScore is the result of comparing a pantry with a recipe's ingredients.
type MatchScore struct {
	Score   int `json:"score"`
	Matched int `json:"matched"`
	Missing int `json:"missing"`
}

// ComputeMatchScore counts the recipe ingredients that share at least one
// token with the synonym-expanded pantry. Score is the rounded percentage of
// matched ingredients; an empty pantry or ingredient list scores 0.
func ComputeMatchScore(pantry, ingredients []string) MatchScore {
	if len(pantry) == 0 {
		return MatchScore{Missing: len(ingredients)}
	}

	expanded := make(map[string]struct{})
	for _, item := range pantry {
		for _, term := range ExpandSynonyms(item) {
			expanded[term] = struct{}{}
		}
	}

	matched := 0
	for _, ingredient := range ingredients {
		for _, token := range strings.Split(NormalizeIngredientName(ingredient), " ") {
			if _, ok := expanded[token]; ok {
				matched++
				break
			}
		}
	}

	total := len(ingredients)
	if total < 1 {
		total = 1
	}
	return MatchScore{
		Score:   int(math.Round(float64(matched) / float64(total) * 100)),
		Matched: matched,
		Missing: len(ingredients) - matched,
	}
}

// EstimateDifficulty tiers a recipe by its ingredient and step count.
func EstimateDifficulty(ingredients, steps []string) models.Difficulty {
	count := len(ingredients) + len(steps)
	switch {
	case count <= 10:
		return models.DifficultyEasy
	case count <= 20:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}
