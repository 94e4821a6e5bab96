package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/milestone"
)

func sampleFrame(t *testing.T, progress float64, vp milestone.Viewport, m milestone.LabelMeasurer) milestone.Frame {
	t.Helper()
	s := milestone.NewStore()
	s.SetMilestones([]milestone.Milestone{
		{Position: 0.0, Label: "Start"},
		{Position: 0.5, Label: "Mid"},
		{Position: 1.0, Label: "End"},
	})
	return milestone.ComputeFrame(s.SetProgress(progress), vp, m)
}

func pixelOptions() Options {
	return Options{
		Viewport: milestone.Viewport{
			Width:             320,
			Height:            90,
			PaddingLeft:       8,
			PaddingRight:      8,
			MarkerRadius:      12,
			SmallMarkerRadius: 4,
			BarHeight:         2,
			Spacing:           6,
		},
		Theme:    DefaultTheme(),
		FontSize: 14,
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    [4]uint8
		wantErr bool
	}{
		{"#FF7A00", [4]uint8{0xFF, 0x7A, 0x00, 0xFF}, false},
		{"#33000000", [4]uint8{0, 0, 0, 0x33}, false},
		{"e5e7eb", [4]uint8{0xE5, 0xE7, 0xEB, 0xFF}, false},
		{"#FFF", [4]uint8{}, true},
		{"#GGGGGG", [4]uint8{}, true},
		{"", [4]uint8{}, true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && [4]uint8{c.R, c.G, c.B, c.A} != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}
}

func TestThemeMerge(t *testing.T) {
	got := Theme{Progress: "#123456"}.Merge(DefaultTheme())
	if got.Progress != "#123456" {
		t.Errorf("Progress = %q, want override kept", got.Progress)
	}
	if got.Track != DefaultTheme().Track {
		t.Errorf("Track = %q, want default", got.Track)
	}
}

func TestSVGDrawsFrame(t *testing.T) {
	o := pixelOptions()
	f := sampleFrame(t, 0.5, o.Viewport, measure.Estimate{FontSize: o.FontSize})

	var buf bytes.Buffer
	if err := SVG(&buf, f, o); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="320" height="90"`,
		`class="milestone done"`,
		`class="milestone active"`,
		`class="milestone pending"`,
		`>Start</text>`,
		`fill-opacity="0.2"`,
		`stroke-linecap="round"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	// one check path for the single done milestone
	if n := strings.Count(out, "<path "); n != 1 {
		t.Errorf("got %d check paths, want 1", n)
	}
}

func TestSVGSkipsFillAtZeroProgress(t *testing.T) {
	o := pixelOptions()
	f := sampleFrame(t, 0, o.Viewport, nil)

	var buf bytes.Buffer
	if err := SVG(&buf, f, o); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	// background track only
	if n := strings.Count(buf.String(), `rx="1"`); n != 1 {
		t.Errorf("got %d bars, want only the background track", n)
	}
}

func TestSVGEmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, milestone.Frame{}, pixelOptions()); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<circle") || strings.Contains(out, "<text") {
		t.Errorf("empty frame drew content:\n%s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("svg document not closed")
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	o := pixelOptions()
	s := milestone.NewStore()
	s.SetMilestones([]milestone.Milestone{{Position: 0.5, Label: `<R&D>`}})
	f := milestone.ComputeFrame(s.Snapshot(), o.Viewport, nil)

	var buf bytes.Buffer
	if err := SVG(&buf, f, o); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	if !strings.Contains(buf.String(), "&lt;R&amp;D&gt;") {
		t.Error("label was not escaped")
	}
}

func TestSVGRejectsBadTheme(t *testing.T) {
	o := pixelOptions()
	o.Theme.Track = "orange"
	if err := SVG(&bytes.Buffer{}, milestone.Frame{}, o); err == nil {
		t.Error("expected error for invalid theme color")
	}
}

func TestPNGEncodesViewportSize(t *testing.T) {
	o := pixelOptions()
	font, err := measure.NewFont(o.FontSize)
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	defer font.Close()
	o.Ascent = font.Ascent()
	f := sampleFrame(t, 0.75, o.Viewport, font)

	var buf bytes.Buffer
	if err := PNG(&buf, f, o); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 90 {
		t.Errorf("image size = %dx%d, want 320x90", b.Dx(), b.Dy())
	}
}

func TestRasterPaintsFilledTrack(t *testing.T) {
	o := pixelOptions()
	o.Viewport.BarHeight = 8
	o.FontSize = 0 // no labels
	f := sampleFrame(t, 1.0, o.Viewport, nil)

	img, err := Raster(f, o)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	// a point on the track between two markers is painted in the progress color
	x := int((f.Items[0].CenterX + f.Items[1].CenterX) / 2)
	y := int(o.Viewport.Height * 0.3)
	r, g, b, _ := img.At(x, y).RGBA()
	if r>>8 < 0xF0 || g>>8 < 0x60 || g>>8 > 0x90 || b>>8 > 0x20 {
		t.Errorf("pixel (%d,%d) = %02x%02x%02x, want close to FF7A00", x, y, r>>8, g>>8, b>>8)
	}
	// canvas corner stays white
	if r, g, b, _ := img.At(0, int(o.Viewport.Height)-1).RGBA(); r>>8 < 0xF8 || g>>8 < 0xF8 || b>>8 < 0xF8 {
		t.Errorf("corner pixel = %02x%02x%02x, want ffffff", r>>8, g>>8, b>>8)
	}
}

func TestRasterRejectsEmptyViewport(t *testing.T) {
	if _, err := Raster(milestone.Frame{}, Options{}); err == nil {
		t.Error("expected error for zero-size viewport")
	}
}

func TestTextRendersBarAndLabels(t *testing.T) {
	const width = 40
	f := sampleFrame(t, 0.5, TextViewport(width), measure.Cells{})
	out := Text(f, width, TextStyles{})

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	bar, labels := lines[0], lines[1]

	if n := strings.Count(bar, GlyphDone); n != 1 {
		t.Errorf("bar has %d done markers, want 1: %q", n, bar)
	}
	if n := strings.Count(bar, GlyphActive); n != 1 {
		t.Errorf("bar has %d active markers, want 1: %q", n, bar)
	}
	if n := strings.Count(bar, GlyphPending); n != 1 {
		t.Errorf("bar has %d pending markers, want 1: %q", n, bar)
	}
	if !strings.Contains(bar, glyphFill) || !strings.Contains(bar, glyphTrack) {
		t.Errorf("bar should show filled and unfilled track: %q", bar)
	}
	if !strings.HasPrefix(labels, "Start") || !strings.HasSuffix(labels, "End") || !strings.Contains(labels, "Mid") {
		t.Errorf("labels = %q", labels)
	}
	if len([]rune(bar)) != width {
		t.Errorf("bar is %d cells, want %d", len([]rune(bar)), width)
	}
}

func TestTextEmptyFrame(t *testing.T) {
	if got := Text(milestone.Frame{}, 40, TextStyles{}); got != "" {
		t.Errorf("Text(empty) = %q, want empty", got)
	}
}

func TestTruncateCells(t *testing.T) {
	if got := truncateCells("Milestone", 4); got != "Mile" {
		t.Errorf("truncateCells = %q, want Mile", got)
	}
	if got := truncateCells("출시", 3); got != "출" {
		t.Errorf("truncateCells wide = %q, want 출", got)
	}
}
