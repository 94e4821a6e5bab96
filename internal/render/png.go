package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/milestone"
)

// supersample is the oversampling factor; the image is drawn this much
// larger and scaled down for smooth edges.
const supersample = 4

// PNG writes frame as a PNG image of the viewport size.
func PNG(w io.Writer, frame milestone.Frame, o Options) error {
	img, err := Raster(frame, o)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Raster paints frame into an RGBA image of the viewport size.
func Raster(frame milestone.Frame, o Options) (*image.RGBA, error) {
	o.Theme = o.Theme.Merge(DefaultTheme())
	if err := o.Theme.Validate(); err != nil {
		return nil, err
	}

	width := int(math.Ceil(o.Viewport.Width))
	height := int(math.Ceil(o.Viewport.Height))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("viewport %vx%v has no area", o.Viewport.Width, o.Viewport.Height)
	}

	large := image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample))
	p := &painter{img: large, scale: supersample}
	draw.Draw(large, large.Bounds(), image.NewUniform(mustColor(o.Theme.Canvas)), image.Point{}, draw.Src)

	if !frame.Empty() {
		if err := p.frame(frame, o); err != nil {
			return nil, err
		}
	}

	final := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return final, nil
}

type painter struct {
	img   *image.RGBA
	scale float64
}

func (p *painter) frame(frame milestone.Frame, o Options) error {
	sc := newScene(o)
	vp := o.Viewport
	theme := o.Theme

	if o.FontSize > 0 {
		face, err := measure.NewFont(o.FontSize * p.scale)
		if err != nil {
			return fmt.Errorf("label font: %w", err)
		}
		defer face.Close()
		for _, it := range frame.Items {
			face.DrawCentered(p.img, it.CenterX*p.scale, sc.labelBaseline*p.scale, it.Label, mustColor(theme.LabelColor(it.Emphasized)))
		}
	}

	l := frame.Layout
	p.bar(l.TrackLeft, l.TrackRight, sc, mustColor(theme.Track))
	if frame.FilledRight > l.TrackLeft {
		p.bar(l.TrackLeft, frame.FilledRight, sc, mustColor(theme.Progress))
	}

	for _, it := range frame.Items {
		x, y, r := it.CenterX, sc.barY, it.Radius
		if r <= 0 {
			continue
		}
		if hasShadow(it, vp) {
			p.disc(x, y+shadowOffsetY, r*shadowScale, mustColor(theme.Shadow))
		}
		p.disc(x, y, r, mustColor(theme.MarkerColor(it.State)))

		switch it.State {
		case milestone.Active:
			p.disc(x, y, activeDotRadius(vp), mustColor(theme.Mark))
		case milestone.Done:
			pts := checkPath(x, y, r)
			mark := mustColor(theme.Mark)
			width := checkStroke(r)
			p.line(pts[0], pts[1], width, mark)
			p.line(pts[1], pts[2], width, mark)
		}
	}
	return nil
}

// bar draws a track segment with fully rounded ends.
func (p *painter) bar(left, right float64, sc scene, c color.Color) {
	r := sc.barRadius
	a := point{left + r, sc.barY}
	b := point{right - r, sc.barY}
	if b.x < a.x {
		mid := (left + right) / 2
		a.x, b.x = mid, mid
	}
	p.capsule(a, b, r, c)
}

func (p *painter) disc(cx, cy, r float64, c color.Color) {
	p.capsule(point{cx, cy}, point{cx, cy}, r, c)
}

func (p *painter) line(a, b point, width float64, c color.Color) {
	p.capsule(a, b, width/2, c)
}

// capsule fills every pixel within r of segment ab, in unscaled units.
func (p *painter) capsule(a, b point, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	s := p.scale
	m := &capsuleMask{
		ax: a.x * s, ay: a.y * s,
		bx: b.x * s, by: b.y * s,
		r: r * s,
	}
	draw.DrawMask(p.img, m.Bounds(), image.NewUniform(c), image.Point{}, m, m.Bounds().Min, draw.Over)
}

// capsuleMask is an alpha mask of a segment swept by a disc.
type capsuleMask struct {
	ax, ay, bx, by, r float64
}

func (m *capsuleMask) ColorModel() color.Model { return color.AlphaModel }

func (m *capsuleMask) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(math.Min(m.ax, m.bx)-m.r)),
		int(math.Floor(math.Min(m.ay, m.by)-m.r)),
		int(math.Ceil(math.Max(m.ax, m.bx)+m.r))+1,
		int(math.Ceil(math.Max(m.ay, m.by)+m.r))+1,
	)
}

func (m *capsuleMask) At(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	dx, dy := m.bx-m.ax, m.by-m.ay
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = math.Max(0, math.Min(1, ((px-m.ax)*dx+(py-m.ay)*dy)/l2))
	}
	cx, cy := m.ax+t*dx, m.ay+t*dy
	if math.Hypot(px-cx, py-cy) <= m.r {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}
