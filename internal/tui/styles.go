// Package tui provides the full-screen prompt panel.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/promptpanel/internal/errors"
	"github.com/diogo/promptpanel/internal/render"
)

// Color variables (updated from palette)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when the palette changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Field panels
	inputPanelStyle   lipgloss.Style
	inputFocusedStyle lipgloss.Style
	inputLabelStyle   lipgloss.Style

	// Result area
	resultAreaStyle  lipgloss.Style
	resultLabelStyle lipgloss.Style
	loadingStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	errorDetailStyle lipgloss.Style

	// Feedback line under the result
	feedbackOkStyle  lipgloss.Style
	feedbackErrStyle lipgloss.Style

	phaseIdleStyle lipgloss.Style
	phaseBusyStyle lipgloss.Style
)

// Gradient colors for the loading bar (fixed colors)
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"),
	lipgloss.Color("#feca57"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#ff9ff3"),
	lipgloss.Color("#54a0ff"),
	lipgloss.Color("#5f27cd"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#1dd1a1"),
}

func init() {
	UpdateTheme(render.ResolvePalette(render.DefaultPalette))
}

// UpdateTheme refreshes all styles from the given palette
func UpdateTheme(p render.Palette) {
	colorBorder = p.Border
	colorPrimary = p.Primary
	colorSecondary = p.Secondary
	colorAccent = p.Accent
	colorWarning = p.Warning
	colorError = p.Error
	colorText = p.Text
	colorTextDim = p.TextDim
	colorTextMute = p.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputFocusedStyle = inputPanelStyle.
		BorderForeground(colorPrimary)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	resultAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	resultLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	errorDetailStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	feedbackOkStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)

	feedbackErrStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true)

	phaseIdleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	phaseBusyStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)
}

// FormatError returns the error's literal description in the error style,
// followed by whatever context the structured error carries and a hint.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render("✗ " + err.Error()))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(errorDetailStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(errorDetailStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}
	if hint := ErrorHint(err); hint != "" {
		sb.WriteString(errorDetailStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

// ErrorHint suggests what to do about err, or returns ""
func ErrorHint(err error) string {
	switch {
	case errors.IsCredentialMissing(err):
		return "Enter a key with ctrl+k or run 'promptpanel key set'"
	case errors.IsAuthError(err):
		return "The API key was rejected. Check it and save it again"
	case errors.IsRateLimitError(err):
		return "Rate limited. Wait a moment and try again"
	case errors.IsTimeoutError(err):
		return "Request timed out. Try again or raise timeout_seconds"
	case errors.IsNetworkError(err):
		return "Check your internet connection and try again"
	case errors.IsDecodingError(err):
		return "The endpoint returned something other than a chat completion"
	default:
		return ""
	}
}
