package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// glyphs per element type in the pipe strip
var glyphs = map[piping.ElementType]string{
	piping.PST:   "─",
	piping.VALVE: "▓",
	piping.BWE:   "╮",
	piping.BCSM:  "╮",
	piping.BWSM:  "╮",
}

// DrawPipeStrip draws every pipe as a row of its elements in order, each
// element proportional to its member length. Restrained element ends are
// marked with ┼, free ends with ┤.
func DrawPipeStrip(doc *model.Document, width int) string {
	var sb strings.Builder

	type row struct {
		pipe     string
		elements []*model.BeamElement
		length   float64
	}
	var rows []*row
	byPipe := make(map[string]*row)
	lengths := make(map[int]float64, len(doc.Members))
	for _, m := range doc.Members {
		lengths[m.Label] = m.Length
	}
	for _, e := range doc.SortedElements() {
		r, ok := byPipe[e.Pipe]
		if !ok {
			r = &row{pipe: e.Pipe}
			byPipe[e.Pipe] = r
			rows = append(rows, r)
		}
		r.elements = append(r.elements, e)
		r.length += lengths[e.Label]
	}

	longest := 0.0
	nameWidth := 4
	for _, r := range rows {
		longest = math.Max(longest, r.length)
		nameWidth = max(nameWidth, len(r.pipe))
	}
	if longest == 0 || width <= 0 {
		return ""
	}
	scale := float64(width) / longest

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %-*s   ELEMENTS\n", nameWidth, "PIPE"))
	sb.WriteString(fmt.Sprintf("  %s   %s\n", strings.Repeat("─", nameWidth), strings.Repeat("─", 8)))

	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-*s   ", nameWidth, r.pipe))
		for i, e := range r.elements {
			if i == 0 {
				sb.WriteString(endMark(doc, e.Node1))
			}
			g, ok := glyphs[e.Type]
			if !ok {
				g = "┬" // tees and reducers
			}
			n := max(1, int(math.Round(lengths[e.Label]*scale)))
			sb.WriteString(strings.Repeat(g, n))
			sb.WriteString(endMark(doc, e.Node2))
		}
		sb.WriteString(fmt.Sprintf("  %.1f m\n", r.length/1000))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ─── = straight pipe   ▓▓▓ = valve   ╮ = bend   ┬ = tee/reducer\n")
	sb.WriteString("  ┼ = restrained node    ┤ = free node\n")

	return sb.String()
}

func endMark(doc *model.Document, node int) string {
	if _, ok := doc.BeamNodes[node]; ok {
		return "┼"
	}
	return "┤"
}

// DrawWindBars draws the total wind force per direction as horizontal bars.
func DrawWindBars(dirs []*model.WindDirection) string {
	var sb strings.Builder

	width := 40
	peak := 0.0
	for _, d := range dirs {
		peak = math.Max(peak, d.Force)
	}

	sb.WriteString("\n")
	sb.WriteString("  WIND EXPOSURE BY DIRECTION\n")
	sb.WriteString("  ──────────────────────────\n\n")

	for _, d := range dirs {
		bar := 0
		if peak > 0 {
			bar = int(d.Force / peak * float64(width))
		}
		sb.WriteString(fmt.Sprintf("  %5.1f° │%s %.1f N\n", d.Angle, strings.Repeat("█", bar), d.Force))
	}

	return sb.String()
}

// DrawWindGraph plots the total wind force against the direction angle.
func DrawWindGraph(dirs []*model.WindDirection) string {
	if len(dirs) < 2 {
		return ""
	}
	forces := make([]float64, len(dirs)+1)
	for i, d := range dirs {
		forces[i] = d.Force
	}
	forces[len(dirs)] = dirs[0].Force // close the turn at 360°

	step := 360 / float64(len(dirs))
	graph := asciigraph.Plot(forces,
		asciigraph.Height(8),
		asciigraph.Width(4*len(dirs)),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("wind force (N), 0° to 360° in %.1f° steps", step)),
	)
	return "\n" + graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes.
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
