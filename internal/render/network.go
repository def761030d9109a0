package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pable/go-sb-charts/internal/model"
)

const (
	maxMarkerSize = 1500.0
	maxLineWidth  = 8.0
	minLineAlpha  = 0.5

	nodeColor = "#d62728"
	linkColor = "#ffffff"

	numberStyle = "fill:#ffffff;font-family:Helvetica,Arial,sans-serif;font-size:10px;font-weight:bold;text-anchor:middle"
)

// NetworkStyle scales markers and lines relative to the busiest passer and
// the strongest link of a network.
type NetworkStyle struct {
	MaxVolume int
	MaxCount  int
}

// NewNetworkStyle measures n.
func NewNetworkStyle(n *model.Network) NetworkStyle {
	var s NetworkStyle
	for _, p := range n.Positions {
		s.MaxVolume = max(s.MaxVolume, p.Volume)
	}
	for _, l := range n.Links {
		s.MaxCount = max(s.MaxCount, l.Count)
	}
	return s
}

// MarkerSize is the marker area for a player who sent volume passes.
func (s NetworkStyle) MarkerSize(volume int) float64 {
	if s.MaxVolume == 0 {
		return 0
	}
	return float64(volume) / float64(s.MaxVolume) * maxMarkerSize
}

func (s NetworkStyle) LineWidth(count int) float64 {
	if s.MaxCount == 0 {
		return 0
	}
	return float64(count) / float64(s.MaxCount) * maxLineWidth
}

// LineAlpha never drops below 0.5 so weak links stay visible.
func (s NetworkStyle) LineAlpha(count int) float64 {
	if s.MaxCount == 0 {
		return minLineAlpha
	}
	return math.Max(float64(count)/float64(s.MaxCount), minLineAlpha)
}

// PassNetwork draws links under player markers at their average positions.
// Links whose endpoints have no position are skipped.
func PassNetwork(w io.Writer, n *model.Network, title string) error {
	ew := &errWriter{w: w}
	p := newPitch(ew, false)
	style := NewNetworkStyle(n)

	p.start(title)

	p.canvas.Gid("links")
	for _, l := range n.Links {
		a, okA := n.Position(l.PlayerA)
		b, okB := n.Position(l.PlayerB)
		if !okA || !okB {
			continue
		}
		p.line(a.Average, b.Average, `class="link"`,
			fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-opacity:%.2f;stroke-linecap:round",
				linkColor, style.LineWidth(l.Count), style.LineAlpha(l.Count)))
	}
	p.canvas.Gend()

	p.canvas.Gid("players")
	for _, pos := range n.Positions {
		x, y := p.xy(pos.Average)
		r := max(radius(style.MarkerSize(pos.Volume)), 3)
		p.canvas.Circle(x, y, r, `class="player"`,
			fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:1", nodeColor))
		if pos.JerseyNumber > 0 {
			p.canvas.Text(x, y+4, strconv.Itoa(pos.JerseyNumber), numberStyle)
		}
		p.canvas.Text(x, y+r+12, model.ShortName(pos.Player), labelStyle)
	}
	p.canvas.Gend()

	p.end()
	return ew.err
}
