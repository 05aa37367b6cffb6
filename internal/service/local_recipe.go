package service

import (
	"context"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
)

// LocalRecipesKey is the store key holding admin-submitted recipes.
const LocalRecipesKey = "local-recipes"

const maxLocalRecipeTitleLength = 200

// LocalRecipeInput is an admin recipe submission. Ingredients and
// instructions are newline-separated text.
type LocalRecipeInput struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	CookTime     *int   `json:"cookTime"`
	Servings     *int   `json:"servings"`
	Cuisine      string `json:"cuisine"`
	Area         string `json:"area"`
	Image        string `json:"image"`
	VideoURL     string `json:"videoUrl"`
}

// LocalRecipeService stores recipes submitted by the admin. They live in
// the global namespace and are visible to every client.
type LocalRecipeService struct {
	Store repository.KVStore
}

// NewLocalRecipeService creates a new LocalRecipeService.
func NewLocalRecipeService(store repository.KVStore) *LocalRecipeService {
	return &LocalRecipeService{Store: store}
}

// List returns every submitted recipe.
func (s *LocalRecipeService) List(ctx context.Context) ([]models.MenuItem, error) {
	recipes := []models.MenuItem{}
	if err := loadValue(ctx, s.Store, GlobalNamespace, LocalRecipesKey, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Find looks a submitted recipe up by id.
func (s *LocalRecipeService) Find(ctx context.Context, id string) (models.MenuItem, bool, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return models.MenuItem{}, false, err
	}
	if i := indexOfItem(recipes, id); i >= 0 {
		return recipes[i], true, nil
	}
	return models.MenuItem{}, false, nil
}

// Submit validates input and appends it as a new local recipe.
func (s *LocalRecipeService) Submit(ctx context.Context, input LocalRecipeInput) (models.MenuItem, error) {
	if err := ValidateLocalRecipe(input); err != nil {
		return models.MenuItem{}, err
	}

	item := models.NewStandardDish(models.SourceLocal, uuid.NewString(), strings.TrimSpace(input.Title))
	item.Ingredients = splitLines(input.Ingredients)
	item.Instructions = splitLines(input.Instructions)
	item.CookTime = input.CookTime
	item.Servings = input.Servings
	item.Cuisine = strings.TrimSpace(input.Cuisine)
	item.Area = strings.TrimSpace(input.Area)
	item.Image = strings.TrimSpace(input.Image)
	item.VideoURL = strings.TrimSpace(input.VideoURL)

	recipes, err := s.List(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	recipes = append(recipes, item)
	if err := saveValue(ctx, s.Store, GlobalNamespace, LocalRecipesKey, recipes); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// ValidateLocalRecipe checks a submission before it is stored.
func ValidateLocalRecipe(input LocalRecipeInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return validationErrorf("title is required")
	}
	if len(title) > maxLocalRecipeTitleLength {
		return validationErrorf("title must be at most %d characters", maxLocalRecipeTitleLength)
	}

	profanityDetector := goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	if profanityDetector.IsProfane(title) {
		return validationErrorf("title contains inappropriate language")
	}

	if len(splitLines(input.Ingredients)) == 0 {
		return validationErrorf("at least one ingredient is required")
	}
	if len(splitLines(input.Instructions)) == 0 {
		return validationErrorf("at least one instruction is required")
	}
	if input.CookTime != nil && *input.CookTime <= 0 {
		return validationErrorf("cookTime must be positive")
	}
	if input.Servings != nil && *input.Servings <= 0 {
		return validationErrorf("servings must be positive")
	}
	if image := strings.TrimSpace(input.Image); image != "" && !govalidator.IsURL(image) {
		return validationErrorf("image must be a valid URL")
	}
	if video := strings.TrimSpace(input.VideoURL); video != "" && !govalidator.IsURL(video) {
		return validationErrorf("videoUrl must be a valid URL")
	}
	return nil
}

// splitLines splits text on newlines into trimmed, non-empty lines.
func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
