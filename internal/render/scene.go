package render

import "github.com/clive/milestones/internal/milestone"

// Options configures the pixel renderers.
type Options struct {
	Viewport milestone.Viewport
	Theme    Theme
	FontSize float64
	// Ascent of the label font in pixels. Zero estimates it from FontSize.
	Ascent float64
}

// scene is the vertical geometry shared by the SVG and PNG renderers.
// The track sits at 30% of the height; labels hang below the big markers.
type scene struct {
	barY          float64
	barTop        float64
	barBottom     float64
	barRadius     float64
	labelBaseline float64
}

func newScene(o Options) scene {
	vp := o.Viewport
	ascent := o.Ascent
	if ascent <= 0 {
		ascent = o.FontSize * 0.93
	}
	barY := vp.Height * 0.3
	return scene{
		barY:          barY,
		barTop:        barY - vp.BarHeight/2,
		barBottom:     barY + vp.BarHeight/2,
		barRadius:     vp.BarHeight / 2,
		labelBaseline: barY + vp.MarkerRadius + vp.Spacing*2 + ascent/2,
	}
}

// point is a vertex of the checkmark polyline.
type point struct{ x, y float64 }

// checkPath is the three-point checkmark drawn over a marker of radius r.
func checkPath(cx, cy, r float64) [3]point {
	size := r * 0.8
	return [3]point{
		{cx - size*0.3, cy},
		{cx - size*0.1, cy + size*0.2},
		{cx + size*0.3, cy - size*0.2},
	}
}

// checkStroke is the stroke width of the checkmark for radius r.
func checkStroke(r float64) float64 {
	return r * 0.8 * 0.25
}

// shadow offsets and shrinks the drop shadow under big markers.
const (
	shadowOffsetY = 2.0
	shadowScale   = 0.9
)

// activeDotRadius is the inner dot of an active marker.
func activeDotRadius(vp milestone.Viewport) float64 {
	if vp.SmallMarkerRadius > 0 {
		return vp.SmallMarkerRadius
	}
	return vp.MarkerRadius / 3
}

// hasShadow reports whether an item is drawn with the big radius.
func hasShadow(it milestone.Item, vp milestone.Viewport) bool {
	return it.State != milestone.Pending && vp.MarkerRadius > 0
}
