package theme

import (
	"image/color"
	"runtime"

	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Palette defines the menu surface colors.
type Palette struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Highlight  color.NRGBA
	Accent     color.NRGBA
	Text       color.NRGBA
	TextMuted  color.NRGBA
	Separator  color.NRGBA
}

// Config defines the menu metrics.
type Config struct {
	CornerRadius unit.Dp
	Padding      unit.Dp
	RowInset     unit.Dp
	IndentStep   unit.Dp
	StateColumn  unit.Dp
	FontBody     unit.Sp
	FontCaption  unit.Sp
}

// Theme wraps the material theme with menu-specific styling.
type Theme struct {
	*material.Theme
	Palette Palette
	Config  Config
}

// NewTheme creates a new theme based on the current OS.
func NewTheme(mtheme *material.Theme) *Theme {
	t := &Theme{
		Theme: mtheme,
	}

	if runtime.GOOS == "darwin" {
		setupMacOSTheme(t)
	} else {
		setupDefaultTheme(t)
	}

	return t
}

func setupMacOSTheme(t *Theme) {
	t.Palette = Palette{
		Background: color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF},
		Surface:    color.NRGBA{R: 0x2A, G: 0x2A, B: 0x2A, A: 0xFF},
		Highlight:  color.NRGBA{R: 0x0A, G: 0x84, B: 0xFF, A: 0xFF},
		Accent:     color.NRGBA{R: 0x0A, G: 0x84, B: 0xFF, A: 0xFF},
		Text:       color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF7, A: 0xFF},
		TextMuted:  color.NRGBA{R: 0x86, G: 0x86, B: 0x8B, A: 0xFF},
		Separator:  color.NRGBA{R: 0x3A, G: 0x3A, B: 0x3C, A: 0xFF},
	}

	t.Config = Config{
		CornerRadius: unit.Dp(10),
		Padding:      unit.Dp(12),
		RowInset:     unit.Dp(8),
		IndentStep:   unit.Dp(14),
		StateColumn:  unit.Dp(22),
		FontBody:     unit.Sp(13),
		FontCaption:  unit.Sp(11),
	}
}

func setupDefaultTheme(t *Theme) {
	t.Palette = Palette{
		Background: color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		Surface:    color.NRGBA{R: 0x2C, G: 0x2C, B: 0x2C, A: 0xFF},
		Highlight:  color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		Accent:     color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		Text:       color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		TextMuted:  color.NRGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF},
		Separator:  color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF},
	}

	t.Config = Config{
		CornerRadius: unit.Dp(4),
		Padding:      unit.Dp(12),
		RowInset:     unit.Dp(8),
		IndentStep:   unit.Dp(14),
		StateColumn:  unit.Dp(22),
		FontBody:     unit.Sp(14),
		FontCaption:  unit.Sp(12),
	}
}
