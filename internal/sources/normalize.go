package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// payload is one provider record with free-form, partly numbered fields.
type payload map[string]interface{}

// str returns the trimmed string value of key, or "" when it is missing,
// null, or not a string.
func (p payload) str(key string) string {
	if s, ok := p[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// numberedIngredients walks strIngredientN/strMeasureN pairs up to max and
// joins each into "<measure> <ingredient>". Pairs with a blank ingredient
// are skipped.
func (p payload) numberedIngredients(max int) []string {
	ingredients := []string{}
	for i := 1; i <= max; i++ {
		name := p.str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		measure := p.str(fmt.Sprintf("strMeasure%d", i))
		ingredients = append(ingredients, strings.TrimSpace(measure+" "+name))
	}
	return ingredients
}

// splitInstructions breaks a multi-line instruction blob into steps,
// dropping blank lines.
func splitInstructions(blob string) []string {
	steps := []string{}
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// splitList splits a separator-joined ingredient string, dropping blanks.
func splitList(s, sep string) []string {
	items := []string{}
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// providerIDOr returns id, or a random id when the provider omitted it.
func providerIDOr(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// lastPathSegment returns the final non-empty path segment of a URL.
func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return segments[len(segments)-1]
}
