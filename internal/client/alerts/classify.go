package alerts

import (
	"strings"
	"unicode"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// DefaultIcon is used when no keyword matches the alert type.
const DefaultIcon = "📢"

// ColorForLevel maps the backend's alert level onto a card color.
func ColorForLevel(level string) models.Color {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return models.ColorRed
	case "medium":
		return models.ColorYellow
	case "low":
		return models.ColorBlue
	default:
		return models.ColorDefault
	}
}

type iconRule struct {
	icon     string
	keywords []string
}

// First matching rule wins, so the more specific hazards come first.
var iconRules = []iconRule{
	{icon: "❄️", keywords: []string{"snow", "winter", "cold", "blizzard", "ice", "frost"}},
	{icon: "🌊", keywords: []string{"flood", "rain", "tsunami"}},
	{icon: "🔥", keywords: []string{"fire", "smoke"}},
	{icon: "🌡️", keywords: []string{"heat", "hot", "temperature"}},
	{icon: "🚆", keywords: []string{"transport", "strike", "traffic", "rail", "train"}},
	{icon: "🏭", keywords: []string{"air", "pollution", "smog", "ozone", "pollen", "dust"}},
	{icon: "🦠", keywords: []string{"virus", "flu", "disease", "outbreak", "pandemic", "infection", "covid"}},
	{icon: "⚠️", keywords: []string{"storm", "wind", "thunder", "hurricane", "tornado"}},
}

// IconForType picks a glyph by matching keywords against the words of the
// alert type. A keyword matches a word it starts or ends, so "heatwave" and
// "wildfire" both match.
func IconForType(alertType string) string {
	words := strings.FieldsFunc(strings.ToLower(alertType), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, rule := range iconRules {
		for _, w := range words {
			for _, k := range rule.keywords {
				if strings.HasPrefix(w, k) || strings.HasSuffix(w, k) {
					return rule.icon
				}
			}
		}
	}
	return DefaultIcon
}
