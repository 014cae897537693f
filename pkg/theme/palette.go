// Package theme resolves indicator color names against the Catppuccin
// palettes, picking Mocha or Latte to match the system dark/light mode.
package theme

import "github.com/lucasb-eyer/go-colorful"

// fallbackColor is used for unknown color names.
const fallbackColor = "sky"

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad palette literal " + s)
	}
	return c
}

// Mocha is the Catppuccin dark palette.
var Mocha = map[string]colorful.Color{
	"rosewater": hex("#f5e0dc"),
	"flamingo":  hex("#f2cdcd"),
	"pink":      hex("#f5c2e7"),
	"mauve":     hex("#cba6f7"),
	"red":       hex("#f38ba8"),
	"maroon":    hex("#eba0ac"),
	"peach":     hex("#fab387"),
	"yellow":    hex("#f9e2af"),
	"green":     hex("#a6e3a1"),
	"teal":      hex("#94e2d5"),
	"sky":       hex("#89dceb"),
	"sapphire":  hex("#74c7ec"),
	"blue":      hex("#89b4fa"),
	"lavender":  hex("#b4befe"),
}

// Latte is the Catppuccin light palette.
var Latte = map[string]colorful.Color{
	"rosewater": hex("#dc8a78"),
	"flamingo":  hex("#dd7878"),
	"pink":      hex("#ea76cb"),
	"mauve":     hex("#8839ef"),
	"red":       hex("#d20f39"),
	"maroon":    hex("#e64553"),
	"peach":     hex("#fe640b"),
	"yellow":    hex("#df8e1d"),
	"green":     hex("#40a02b"),
	"teal":      hex("#179299"),
	"sky":       hex("#04a5e5"),
	"sapphire":  hex("#209fb5"),
	"blue":      hex("#1e66f5"),
	"lavender":  hex("#7287fd"),
}

// Lookup resolves a color name against a palette, falling back to sky.
func Lookup(palette map[string]colorful.Color, name string) colorful.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette[fallbackColor]
}

// Known reports whether the name exists in the palettes.
func Known(name string) bool {
	_, ok := Mocha[name]
	return ok
}
