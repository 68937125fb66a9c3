package heatmap

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts light or dark; empty means light.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("theme must be light or dark")
}

// Swatch is the presentation of one intensity level.
type Swatch struct {
	Level  int    `json:"level"`
	Color  string `json:"color"`
	Border string `json:"border"`
	Glow   string `json:"glow"`
}

var palettes = map[Theme][5]Swatch{
	ThemeDark: {
		{0, "rgba(44, 83, 100, 0.2)", "rgba(192, 192, 192, 0.3)", "transparent"},
		{1, "rgba(46, 204, 113, 0.5)", "rgba(46, 204, 113, 0.8)", "rgba(46, 204, 113, 0.5)"},
		{2, "rgba(255, 193, 7, 0.7)", "rgba(255, 193, 7, 0.9)", "rgba(255, 193, 7, 0.6)"},
		{3, "rgba(255, 87, 34, 0.85)", "rgba(255, 87, 34, 1)", "rgba(255, 87, 34, 0.7)"},
		{4, "rgba(255, 20, 147, 0.95)", "rgba(255, 20, 147, 1)", "rgba(255, 20, 147, 0.8)"},
	},
	ThemeLight: {
		{0, "rgba(226, 232, 240, 0.5)", "rgba(203, 213, 225, 0.6)", "transparent"},
		{1, "rgba(76, 175, 80, 0.4)", "rgba(76, 175, 80, 0.7)", "rgba(76, 175, 80, 0.3)"},
		{2, "rgba(255, 193, 7, 0.6)", "rgba(255, 193, 7, 0.8)", "rgba(255, 193, 7, 0.4)"},
		{3, "rgba(255, 152, 0, 0.8)", "rgba(255, 152, 0, 0.9)", "rgba(255, 152, 0, 0.5)"},
		{4, "rgba(244, 67, 54, 0.9)", "rgba(244, 67, 54, 1)", "rgba(244, 67, 54, 0.6)"},
	},
}

// SwatchFor clamps level into 0..4.
func SwatchFor(theme Theme, level int) Swatch {
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLight]
	}
	return p[level]
}

func Legend(theme Theme) []Swatch {
	out := make([]Swatch, 0, 5)
	for level := 0; level <= 4; level++ {
		out = append(out, SwatchFor(theme, level))
	}
	return out
}
