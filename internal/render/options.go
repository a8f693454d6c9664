// Package render turns model replies into styled terminal text.
package render

import (
	"os"
	"strings"

	"github.com/diogo/promptpanel/internal/config"
)

// Glamour built-in style names
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleASCII      = "ascii"
	StyleNoTTY      = "notty"
)

// EnvGlamourStyle overrides the configured markdown style
const EnvGlamourStyle = "GLAMOUR_STYLE"

// Options configures the markdown renderer.
type Options struct {
	// Width is the word-wrap column (default: 80)
	Width int

	// Style is a glamour style name or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	if width > 0 {
		o.Width = width
	}
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	if style != "" {
		o.Style = style
	}
	return o
}

// Styles lists the built-in style names accepted by WithStyle
func Styles() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StylePink, StyleASCII, StyleNoTTY}
}

// IsBuiltinStyle reports whether name is one of Styles()
func IsBuiltinStyle(name string) bool {
	for _, s := range Styles() {
		if s == name {
			return true
		}
	}
	return false
}

// OptionsFromConfig builds Options from the markdown section of the config.
// GLAMOUR_STYLE, when set, wins over the configured style.
func OptionsFromConfig(cfg config.MarkdownConfig) Options {
	opts := DefaultOptions().WithStyle(cfg.Style)
	opts.EnableEmoji = cfg.EnableEmoji
	opts.PreserveNewLines = cfg.PreserveNewLines
	opts.TableWrap = cfg.TableWrap
	opts.InlineTableLinks = cfg.InlineTableLinks

	if style := strings.TrimSpace(os.Getenv(EnvGlamourStyle)); style != "" {
		opts.Style = style
	}
	return opts
}
