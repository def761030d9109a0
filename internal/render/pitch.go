// Package render draws pass networks, shot maps and goal freeze frames as SVG
// on a StatsBomb pitch.
package render

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/pable/go-sb-charts/internal/model"
)

const (
	scale  = 6  // pixels per pitch unit
	margin = 30 // pixels around the pitch
	header = 40 // title band above the pitch

	pitchStyle = "fill:none;stroke:#c7d5cc;stroke-width:2"
	background = "fill:#22312b"
	titleStyle = "fill:#ffffff;font-family:Helvetica,Arial,sans-serif;font-size:18px;text-anchor:middle"
	labelStyle = "fill:#ffffff;font-family:Helvetica,Arial,sans-serif;font-size:11px;text-anchor:middle"
)

// pitch maps StatsBomb coordinates onto a vertical canvas with the attacked
// goal at the top. A half pitch only shows x >= 60.
type pitch struct {
	canvas *svg.SVG
	minX   float64
	width  int
	height int
}

func newPitch(w io.Writer, half bool) *pitch {
	p := &pitch{canvas: svg.New(w)}
	if half {
		p.minX = model.PitchLength / 2
	}
	p.width = int(model.PitchWidth)*scale + 2*margin
	p.height = int(model.PitchLength-p.minX)*scale + 2*margin + header
	return p
}

// xy converts a pitch location to canvas pixels.
func (p *pitch) xy(pt model.Point) (int, int) {
	x := margin + pt.Y*scale
	y := header + margin + (model.PitchLength-pt.X)*scale
	return int(math.Round(x)), int(math.Round(y))
}

func (p *pitch) line(a, b model.Point, style ...string) {
	x1, y1 := p.xy(a)
	x2, y2 := p.xy(b)
	p.canvas.Line(x1, y1, x2, y2, style...)
}

// box draws the rectangle spanned by two opposite corners.
func (p *pitch) box(a, b model.Point) {
	x1, y1 := p.xy(a)
	x2, y2 := p.xy(b)
	p.canvas.Rect(min(x1, x2), min(y1, y2), abs(x2-x1), abs(y2-y1), pitchStyle)
}

func (p *pitch) spot(pt model.Point) {
	x, y := p.xy(pt)
	p.canvas.Circle(x, y, 2, "fill:#c7d5cc")
}

// start opens the document and draws the markings.
func (p *pitch) start(title string) {
	c := p.canvas
	c.Start(p.width, p.height)
	c.Rect(0, 0, p.width, p.height, background)
	if title != "" {
		c.Title(title)
		c.Text(p.width/2, header/2+6, title, titleStyle)
	}

	c.Gid("pitch")
	p.box(model.Point{X: p.minX, Y: 0}, model.Point{X: model.PitchLength, Y: model.PitchWidth})
	p.line(model.Point{X: 60, Y: 0}, model.Point{X: 60, Y: model.PitchWidth}, pitchStyle)

	// attacked end
	p.box(model.Point{X: 102, Y: 18}, model.Point{X: 120, Y: 62})
	p.box(model.Point{X: 114, Y: 30}, model.Point{X: 120, Y: 50})
	p.box(model.Point{X: 120, Y: 36}, model.Point{X: 122, Y: 44})
	p.spot(model.Point{X: 108, Y: 40})

	cx, cy := p.xy(model.Point{X: 60, Y: 40})
	if p.minX == 0 {
		c.Circle(cx, cy, 10*scale, pitchStyle)
		p.box(model.Point{X: 0, Y: 18}, model.Point{X: 18, Y: 62})
		p.box(model.Point{X: 0, Y: 30}, model.Point{X: 6, Y: 50})
		p.box(model.Point{X: -2, Y: 36}, model.Point{X: 0, Y: 44})
		p.spot(model.Point{X: 12, Y: 40})
	} else {
		// top half of the centre circle
		c.Arc(cx-10*scale, cy, 10*scale, 10*scale, 0, false, true, cx+10*scale, cy, pitchStyle)
	}
	c.Gend()
}

func (p *pitch) end() {
	p.canvas.End()
}

// radius converts a scatter marker area to a circle radius in pixels.
func radius(area float64) int {
	if area <= 0 {
		return 0
	}
	return int(math.Round(math.Sqrt(area / math.Pi)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

// WriteFile creates path and renders into it with draw.
func WriteFile(path string, draw func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := draw(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
