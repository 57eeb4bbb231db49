package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeMidnight = Theme{
		Name:       "midnight",
		Primary:    lipgloss.Color("#48dbfb"),
		Secondary:  lipgloss.Color("#f368e0"),
		Accent:     lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#1e272e"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#576574"),
		Success:    lipgloss.Color("#1dd1a1"),
		Warning:    lipgloss.Color("#ff9f43"),
		Error:      lipgloss.Color("#ff6b6b"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Primary:    lipgloss.Color("#ff3838"),
		Secondary:  lipgloss.Color("#ffff00"),
		Accent:     lipgloss.Color("#ff9f43"),
		Background: lipgloss.Color("#1a0a0a"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b5e5e"),
		Success:    lipgloss.Color("#feca57"),
		Warning:    lipgloss.Color("#ff9f43"),
		Error:      lipgloss.Color("#b33939"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0984e3"),
		Secondary:  lipgloss.Color("#74b9ff"),
		Accent:     lipgloss.Color("#ffeaa7"),
		Background: lipgloss.Color("#0c2233"),
		Text:       lipgloss.Color("#dff9fb"),
		Muted:      lipgloss.Color("#4b7bec"),
		Success:    lipgloss.Color("#1dd1a1"),
		Warning:    lipgloss.Color("#feca57"),
		Error:      lipgloss.Color("#ee5253"),
	}

	ThemeNeon = Theme{
		Name:       "neon",
		Primary:    lipgloss.Color("#f368e0"),
		Secondary:  lipgloss.Color("#0abde3"),
		Accent:     lipgloss.Color("#ffdd59"),
		Background: lipgloss.Color("#130f1f"),
		Text:       lipgloss.Color("#f5f0ff"),
		Muted:      lipgloss.Color("#6c5c8a"),
		Success:    lipgloss.Color("#32ff7e"),
		Warning:    lipgloss.Color("#fffa65"),
		Error:      lipgloss.Color("#ff4d4d"),
	}

	ThemeChalk = Theme{
		Name:       "chalk",
		Primary:    lipgloss.Color("#dfe6e9"),
		Secondary:  lipgloss.Color("#b2bec3"),
		Accent:     lipgloss.Color("#74b9ff"),
		Background: lipgloss.Color("#2d3436"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#808e9b"),
		Success:    lipgloss.Color("#55efc4"),
		Warning:    lipgloss.Color("#fdcb6e"),
		Error:      lipgloss.Color("#e17055"),
	}

	CurrentTheme = ThemeMidnight

	Themes = []Theme{
		ThemeMidnight,
		ThemeEmber,
		ThemeOcean,
		ThemeNeon,
		ThemeChalk,
	}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one and returns it.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return CurrentTheme
		}
	}
	SetTheme(names[0])
	return CurrentTheme
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
