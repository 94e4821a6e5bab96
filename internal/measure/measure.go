// Package measure provides label measurers for the layout solver: real font
// metrics for pixel renderers, terminal cell widths for the TUI, and a
// character-count estimate when neither is available.
package measure

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font measures labels with the embedded Go Regular face at a fixed size.
// A font.Face is not safe for concurrent use, so Measure serializes access.
type Font struct {
	size float64

	mu   sync.Mutex
	face font.Face
}

// NewFont loads Go Regular at size pixels (72 DPI, so points == pixels).
func NewFont(size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Font{size: size, face: face}, nil
}

// Measure returns the advance width of label in pixels.
func (f *Font) Measure(label string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fromFixed(font.MeasureString(f.face, label))
}

// Size is the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Ascent is the distance from baseline to the top of the tallest glyphs.
func (f *Font) Ascent() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fromFixed(f.face.Metrics().Ascent)
}

// DrawCentered draws label onto dst horizontally centered on x with its
// baseline at y.
func (f *Font) DrawCentered(dst draw.Image, x, y float64, label string, c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()

	width := font.MeasureString(f.face, label)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot: fixed.Point26_6{
			X: toFixed(x) - width/2,
			Y: toFixed(y),
		},
	}
	d.DrawString(label)
}

// Close releases the face.
func (f *Font) Close() error {
	return f.face.Close()
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// Cells measures labels in terminal cells, honoring wide runes.
type Cells struct{}

// Measure implements milestone.LabelMeasurer.
func (Cells) Measure(label string) float64 {
	return float64(lipgloss.Width(label))
}

// Estimate approximates label width from rune count: each glyph is taken as
// 0.6 of the font size wide.
type Estimate struct {
	FontSize float64
}

// Measure implements milestone.LabelMeasurer.
func (e Estimate) Measure(label string) float64 {
	return float64(utf8.RuneCountInString(label)) * e.FontSize * 0.6
}
