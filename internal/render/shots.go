package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-sb-charts/internal/aggregator"
	"github.com/pable/go-sb-charts/internal/model"
)

const (
	goalColor     = "#ad993c"
	teammateColor = "#3a86ff"
	opponentColor = "#d62728"
	keeperColor   = "#f4d35e"
)

// ShotMap draws a team's shots on the attacked half. Marker area follows xG;
// goals are filled, other shots hollow.
func ShotMap(w io.Writer, m *aggregator.ShotMap) error {
	ew := &errWriter{w: w}
	p := newPitch(ew, true)

	title := fmt.Sprintf("%s shots vs %s", m.Team, m.Opponent)
	p.start(title)

	p.canvas.Gid("shots")
	for _, s := range m.NonGoals {
		x, y := p.xy(s.Start)
		p.canvas.Circle(x, y, radius(aggregator.ShotMarkerArea(s.XG)), `class="shot"`,
			"fill:none;stroke:#ffffff;stroke-width:1.5")
	}
	for _, s := range m.Goals {
		x, y := p.xy(s.Start)
		p.canvas.Circle(x, y, radius(aggregator.ShotMarkerArea(s.XG)), `class="goal"`,
			"fill:"+goalColor+";stroke:#ffffff;stroke-width:1.5")
	}
	p.canvas.Gend()

	p.canvas.Text(p.width/2, p.height-margin/2,
		fmt.Sprintf("%d goals, %d shots, %.2f xG", len(m.Goals), len(m.Goals)+len(m.NonGoals), m.TotalXG()),
		labelStyle)

	p.end()
	return ew.err
}

// FreezeFrame draws the players around a goal at the moment of the shot, with
// the ball path from the shooter to the end location.
func FreezeFrame(w io.Writer, g aggregator.GoalFrame, title string) error {
	ew := &errWriter{w: w}
	p := newPitch(ew, true)

	p.start(title)

	p.line(g.Shot.Start, g.Shot.End, `class="ball"`, "stroke:#ffffff;stroke-width:2;stroke-dasharray:6,4")

	p.canvas.Gid("frame")
	drawFramed(p, g.Teammates(), "teammate", teammateColor)
	drawFramed(p, g.Opponents(), "opponent", opponentColor)
	drawFramed(p, g.Goalkeepers(), "goalkeeper", keeperColor)
	p.canvas.Gend()

	x, y := p.xy(g.Shot.Start)
	p.canvas.Circle(x, y, 9, `class="shooter"`, "fill:"+goalColor+";stroke:#ffffff;stroke-width:2")
	p.canvas.Text(x, y-14, model.ShortName(g.Shot.Player), labelStyle)

	p.end()
	return ew.err
}

func drawFramed(p *pitch, players []model.FreezeFramePlayer, class, color string) {
	for _, fp := range players {
		x, y := p.xy(fp.Location)
		p.canvas.Circle(x, y, 8, `class="`+class+`"`, "fill:"+color+";stroke:#000000;stroke-width:1")
		if fp.JerseyNumber > 0 {
			p.canvas.Text(x, y+4, strconv.Itoa(fp.JerseyNumber), "fill:#000000;font-size:10px;text-anchor:middle")
		}
	}
}
