package render

import "github.com/charmbracelet/lipgloss"

// Palette is the color scheme of the interactive panel. Each palette pairs
// with the glamour style that reads best on its background.
type Palette struct {
	Name          string
	Description   string
	MarkdownStyle string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultPalette is used when the configured name is unknown
const DefaultPalette = "tokyonight"

var palettes = []Palette{
	{
		Name:          "tokyonight",
		Description:   "Tokyo Night, dark with blue accents",
		MarkdownStyle: StyleTokyoNight,

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	},
	{
		Name:          "catppuccin",
		Description:   "Catppuccin Mocha, warm pastels",
		MarkdownStyle: StyleDark,

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	},
	{
		Name:          "dracula",
		Description:   "Dracula, vibrant on dark",
		MarkdownStyle: StyleDracula,

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#8be9fd"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ff79c6"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	},
	{
		Name:          "paper",
		Description:   "Light background, muted ink",
		MarkdownStyle: StyleLight,

		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#eeeeee"),
		Border:     lipgloss.Color("#bdbdbd"),

		Primary:   lipgloss.Color("#1565c0"),
		Secondary: lipgloss.Color("#2e7d32"),
		Accent:    lipgloss.Color("#6a1b9a"),
		Warning:   lipgloss.Color("#ef6c00"),
		Error:     lipgloss.Color("#c62828"),

		Text:     lipgloss.Color("#212121"),
		TextDim:  lipgloss.Color("#616161"),
		TextMute: lipgloss.Color("#9e9e9e"),
	},
}

// PaletteByName looks up a palette
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// ResolvePalette returns the named palette or the default one
func ResolvePalette(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	p, _ := PaletteByName(DefaultPalette)
	return p
}

// PaletteNames returns the names of all palettes
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
