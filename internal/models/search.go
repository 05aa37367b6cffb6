package models

// SearchParams is the inbound query descriptor for the aggregation pipeline.
// The zero value carries no search intent.
type SearchParams struct {
	Query            string   `json:"query,omitempty"`
	Ingredients      []string `json:"ingredients,omitempty"`
	Cuisine          string   `json:"cuisine,omitempty"`
	CookTime         int      `json:"cookTime,omitempty"`
	Diet             string   `json:"diet,omitempty"`
	VideoOnly        bool     `json:"videoOnly,omitempty"`
	Type             ItemType `json:"type,omitempty"`
	IncludeCocktails *bool    `json:"includeCocktails,omitempty"`
}

// HasIntent reports whether there is a query or an ingredient list to search for.
func (p SearchParams) HasIntent() bool {
	return p.Query != "" || len(p.Ingredients) > 0
}

// CocktailsIncluded reports whether cocktails may be searched. An unset
// flag counts as included.
func (p SearchParams) CocktailsIncluded() bool {
	return p.IncludeCocktails == nil || *p.IncludeCocktails
}

// AllowsType reports whether the type filter admits items of type t.
func (p SearchParams) AllowsType(t ItemType) bool {
	return p.Type == "" || p.Type == t
}

// SourceStatus is one source's entry in a health report.
type SourceStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// HealthReport aggregates the status of every configured source.
type HealthReport struct {
	OK      bool           `json:"ok"`
	Results []SourceStatus `json:"results"`
}
