package testutil

import (
	"github.com/windoze95/recipefinder-api/internal/models"
)

// TestDish creates a standard dish with realistic fields.
func TestDish(providerID, title string) models.MenuItem {
	item := models.NewStandardDish(models.SourceTheMealDB, providerID, title)
	item.Image = "https://www.themealdb.com/images/media/meals/" + providerID + ".jpg"
	item.Ingredients = []string{"2 cups rice", "1 chicken breast", "1 onion"}
	item.Instructions = []string{"Rinse the rice", "Brown the chicken", "Simmer everything together"}
	item.Area = "British"
	item.Cuisine = "British"
	return item
}

// TestVideoDish creates a standard dish with a YouTube video.
func TestVideoDish(providerID, title string) models.MenuItem {
	item := TestDish(providerID, title)
	item.VideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	return item
}

// TestCocktail creates a cocktail with realistic fields.
func TestCocktail(providerID, title string) models.MenuItem {
	item := models.NewCocktail(models.SourceTheCocktailDB, providerID, title, models.CocktailDetails{
		Alcoholic: true,
		Glass:     "Cocktail glass",
		Category:  "Ordinary Drink",
	})
	item.Ingredients = []string{"1 1/2 oz Tequila", "1/2 oz Triple sec", "1 oz Lime juice"}
	item.Instructions = []string{"Rub the rim of the glass with lime", "Shake with ice and strain"}
	item.Cuisine = "Ordinary Drink"
	return item
}

// TestRecipePuppyDish creates an item as the ingredient search source returns it.
func TestRecipePuppyDish(slug, title string) models.MenuItem {
	item := models.NewStandardDish(models.SourceRecipePuppy, slug, title)
	item.SourceURL = "http://www.recipezaar.com/" + slug
	item.Ingredients = []string{"beans", "onions", "garlic"}
	return item
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
