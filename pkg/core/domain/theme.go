package domain

// DefaultTheme is applied when a user's theme selector is unrecognized.
const DefaultTheme = "midnight"

// Theme holds the presentation attributes for a public profile page.
type Theme struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	TextMuted  string `json:"text_muted"`
	Accent     string `json:"accent"`
}

// Themes is the fixed set of selectable profile themes.
var Themes = map[string]Theme{
	"midnight": {
		Name:       "Midnight",
		Background: "linear-gradient(135deg, #111827, #2e1065, #111827)",
		Card:       "rgba(255, 255, 255, 0.10)",
		Text:       "#ffffff",
		TextMuted:  "#d1d5db",
		Accent:     "#c084fc",
	},
	"ocean": {
		Name:       "Ocean",
		Background: "linear-gradient(135deg, #164e63, #172554, #312e81)",
		Card:       "rgba(255, 255, 255, 0.10)",
		Text:       "#ffffff",
		TextMuted:  "#a5f3fc",
		Accent:     "#22d3ee",
	},
	"sunset": {
		Name:       "Sunset",
		Background: "linear-gradient(135deg, #7c2d12, #450a0a, #831843)",
		Card:       "rgba(255, 255, 255, 0.10)",
		Text:       "#ffffff",
		TextMuted:  "#fed7aa",
		Accent:     "#fb923c",
	},
	"forest": {
		Name:       "Forest",
		Background: "linear-gradient(135deg, #14532d, #022c22, #134e4a)",
		Card:       "rgba(255, 255, 255, 0.10)",
		Text:       "#ffffff",
		TextMuted:  "#bbf7d0",
		Accent:     "#4ade80",
	},
	"neon": {
		Name:       "Neon",
		Background: "linear-gradient(135deg, #000000, #030712, #000000)",
		Card:       "rgba(255, 255, 255, 0.05)",
		Text:       "#ffffff",
		TextMuted:  "#f9a8d4",
		Accent:     "#ec4899",
	},
	"minimal": {
		Name:       "Minimal",
		Background: "linear-gradient(135deg, #ffffff, #f9fafb, #f3f4f6)",
		Card:       "#ffffff",
		Text:       "#111827",
		TextMuted:  "#4b5563",
		Accent:     "#2563eb",
	},
}

// ThemeFor returns the theme for the given selector, falling back to the
// default for unknown values.
func ThemeFor(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes[DefaultTheme]
}

// ValidTheme reports whether name is a selectable theme.
func ValidTheme(name string) bool {
	_, ok := Themes[name]
	return ok
}
