// Package render paints computed milestone frames: SVG and PNG for pixel
// hosts, styled text for terminals. Renderers only consume a
// milestone.Frame; they never lay out or classify anything themselves.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/clive/milestones/internal/milestone"
)

// Theme holds the colors of one progress view. Colors are "#RRGGBB" or
// "#AARRGGBB" (alpha first).
type Theme struct {
	Canvas     string `yaml:"canvas" json:"canvas"`
	Track      string `yaml:"track" json:"track"`
	Progress   string `yaml:"progress" json:"progress"`
	Inactive   string `yaml:"inactive" json:"inactive"`
	Active     string `yaml:"active" json:"active"`
	Completed  string `yaml:"completed" json:"completed"`
	Text       string `yaml:"text" json:"text"`
	Emphasis   string `yaml:"emphasis" json:"emphasis"`
	Shadow     string `yaml:"shadow" json:"shadow"`
	Mark       string `yaml:"mark" json:"mark"` // checkmark and active dot
	FontFamily string `yaml:"font_family" json:"font_family"`
}

// DefaultTheme is the orange-on-gray scheme.
func DefaultTheme() Theme {
	return Theme{
		Canvas:     "#FFFFFF",
		Track:      "#E5E7EB",
		Progress:   "#FF7A00",
		Inactive:   "#E5E7EB",
		Active:     "#FF7A00",
		Completed:  "#FF7A00",
		Text:       "#4B5563",
		Emphasis:   "#FF7A00",
		Shadow:     "#33000000",
		Mark:       "#FFFFFF",
		FontFamily: "Go, sans-serif",
	}
}

// Merge fills empty fields of t from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Theme{
		Canvas:     pick(t.Canvas, fallback.Canvas),
		Track:      pick(t.Track, fallback.Track),
		Progress:   pick(t.Progress, fallback.Progress),
		Inactive:   pick(t.Inactive, fallback.Inactive),
		Active:     pick(t.Active, fallback.Active),
		Completed:  pick(t.Completed, fallback.Completed),
		Text:       pick(t.Text, fallback.Text),
		Emphasis:   pick(t.Emphasis, fallback.Emphasis),
		Shadow:     pick(t.Shadow, fallback.Shadow),
		Mark:       pick(t.Mark, fallback.Mark),
		FontFamily: pick(t.FontFamily, fallback.FontFamily),
	}
}

// Validate checks that every color parses.
func (t Theme) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"canvas", t.Canvas},
		{"track", t.Track},
		{"progress", t.Progress},
		{"inactive", t.Inactive},
		{"active", t.Active},
		{"completed", t.Completed},
		{"text", t.Text},
		{"emphasis", t.Emphasis},
		{"shadow", t.Shadow},
		{"mark", t.Mark},
	}
	for _, f := range fields {
		if _, err := ParseColor(f.value); err != nil {
			return fmt.Errorf("theme %s: %w", f.name, err)
		}
	}
	return nil
}

// MarkerColor is the fill of a marker in the given state.
func (t Theme) MarkerColor(s milestone.State) string {
	switch s {
	case milestone.Done:
		return t.Completed
	case milestone.Active:
		return t.Active
	default:
		return t.Inactive
	}
}

// LabelColor is the label fill for an emphasized or plain label.
func (t Theme) LabelColor(emphasized bool) string {
	if emphasized {
		return t.Emphasis
	}
	return t.Text
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
	if len(hex) == 8 {
		c.A = uint8(v >> 24)
	}
	return c, nil
}

// mustColor parses s, falling back to opaque black. Themes are validated
// before rendering, so the fallback only shows up for hand-built themes.
func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xFF}
	}
	return c
}

// rgbHex drops the alpha channel: "#RRGGBB".
func rgbHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
