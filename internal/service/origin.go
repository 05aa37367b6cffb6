package service

import (
	"strings"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// originKeywords is checked in order and the first matching region wins, so
// dishes claimed by several regions ("jollof") resolve to the earliest one.
var originKeywords = []struct {
	origin   models.Origin
	areaHint string
	keywords []string
}{
	{models.OriginGhana, "ghana", []string{"jollof", "banku", "fufu", "waakye", "kenkey", "kelewele", "light soup"}},
	{models.OriginNigeria, "nigeria", []string{"jollof", "egusi", "suya", "akara", "moin moin", "pounded yam", "pepper soup"}},
	{models.OriginAfrica, "africa", []string{"tagine", "injera", "couscous", "bobotie", "pilau"}},
}

// InferOrigin guesses a dish's region, first from its area and then from
// keywords in its title. It falls back to Global.
func InferOrigin(title, area string) models.Origin {
	if a := strings.ToLower(area); a != "" {
		for _, entry := range originKeywords {
			if strings.Contains(a, entry.areaHint) {
				return entry.origin
			}
		}
	}

	t := strings.ToLower(title)
	for _, entry := range originKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(t, keyword) {
				return entry.origin
			}
		}
	}
	return models.OriginGlobal
}
