package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/clive/milestones/internal/milestone"
)

// SVG writes frame as a standalone SVG document. An empty frame produces a
// canvas with nothing on it. Empty theme fields fall back to DefaultTheme.
func SVG(w io.Writer, frame milestone.Frame, o Options) error {
	o.Theme = o.Theme.Merge(DefaultTheme())
	if err := o.Theme.Validate(); err != nil {
		return err
	}
	vp := o.Viewport
	sc := newScene(o)

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
<rect width="100%%" height="100%%"%s/>
`, num(vp.Width), num(vp.Height), num(vp.Width), num(vp.Height), fill(o.Theme.Canvas))

	if !frame.Empty() {
		fmt.Fprintf(&svg, `<g font-family="%s" font-size="%s" text-anchor="middle">
`, escapeXML(o.Theme.FontFamily), num(o.FontSize))
		for _, it := range frame.Items {
			fmt.Fprintf(&svg, `<text x="%s" y="%s"%s>%s</text>
`, num(it.CenterX), num(sc.labelBaseline), fill(o.Theme.LabelColor(it.Emphasized)), escapeXML(it.Label))
		}
		svg.WriteString("</g>\n")

		l := frame.Layout
		writeBar(&svg, l.TrackLeft, l.TrackRight, sc, o.Theme.Track)
		if frame.FilledRight > l.TrackLeft {
			writeBar(&svg, l.TrackLeft, frame.FilledRight, sc, o.Theme.Progress)
		}

		for _, it := range frame.Items {
			writeMarker(&svg, it, sc, o)
		}
	}

	svg.WriteString("</svg>\n")

	if _, err := io.WriteString(w, svg.String()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeBar(svg *strings.Builder, left, right float64, sc scene, color string) {
	fmt.Fprintf(svg, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>
`, num(left), num(sc.barTop), num(math.Max(0, right-left)), num(sc.barBottom-sc.barTop), num(sc.barRadius), fill(color))
}

func writeMarker(svg *strings.Builder, it milestone.Item, sc scene, o Options) {
	x, y, r := it.CenterX, sc.barY, it.Radius
	if r <= 0 {
		return
	}

	if hasShadow(it, o.Viewport) {
		fmt.Fprintf(svg, `<circle cx="%s" cy="%s" r="%s"%s/>
`, num(x), num(y+shadowOffsetY), num(r*shadowScale), fill(o.Theme.Shadow))
	}
	fmt.Fprintf(svg, `<circle class="milestone %s" cx="%s" cy="%s" r="%s"%s/>
`, it.State, num(x), num(y), num(r), fill(o.Theme.MarkerColor(it.State)))

	switch it.State {
	case milestone.Active:
		fmt.Fprintf(svg, `<circle cx="%s" cy="%s" r="%s"%s/>
`, num(x), num(y), num(activeDotRadius(o.Viewport)), fill(o.Theme.Mark))
	case milestone.Done:
		p := checkPath(x, y, r)
		fmt.Fprintf(svg, `<path d="M%s %s L%s %s L%s %s" fill="none"%s stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>
`, num(p[0].x), num(p[0].y), num(p[1].x), num(p[1].y), num(p[2].x), num(p[2].y),
			stroke(o.Theme.Mark), num(checkStroke(r)))
	}
}

// fill renders a fill attribute, splitting an alpha channel into fill-opacity.
func fill(color string) string {
	return paint("fill", color)
}

func stroke(color string) string {
	return paint("stroke", color)
}

func paint(attr, color string) string {
	c := mustColor(color)
	if c.A == 0xFF {
		return fmt.Sprintf(` %s="%s"`, attr, rgbHex(c))
	}
	return fmt.Sprintf(` %s="%s" %s-opacity="%s"`, attr, rgbHex(c), attr, num(float64(c.A)/255))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
