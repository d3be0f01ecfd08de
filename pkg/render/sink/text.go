package sink

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/drainplan/pkg/layout"
)

var (
	textHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	textDrainageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	textMullionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	textBorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderText lists every mullion and drainage point in position order with the
// gap to the previous point of the same kind.
func RenderText(l layout.Layout) string {
	type row struct {
		kind string
		pos  float64
		gap  string
	}
	rows := make([]row, 0, len(l.Mullions)+len(l.Drainage))
	for i, m := range l.Mullions {
		rows = append(rows, row{"mullion", m, gapText(l.MullionGaps, i)})
	}
	for i, d := range l.Drainage {
		rows = append(rows, row{"drainage", d, gapText(l.DrainageGaps, i)})
	}
	slices.SortStableFunc(rows, func(a, b row) int {
		if c := cmp.Compare(a.pos, b.pos); c != 0 {
			return c
		}
		return cmp.Compare(b.kind, a.kind)
	})

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.kind, fmt.Sprintf("%.2f", r.pos), r.gap}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(textBorderStyle).
		Headers("Kind", "Position", "Gap").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return textHeaderStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				base = base.Align(lipgloss.Right)
			}
			if row < len(rows) && rows[row].kind == "drainage" {
				return base.Inherit(textDrainageStyle)
			}
			return base.Inherit(textMullionStyle)
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	for _, v := range l.Violations {
		fmt.Fprintf(&b, "! %s\n", v)
	}
	if !l.Converged {
		fmt.Fprintf(&b, "! resolution stopped after %d iterations without converging\n", l.Iterations)
	}
	return b.String()
}

// gapText formats the gap ending at point i, empty for the first point.
func gapText(gaps []layout.Gap, i int) string {
	if i == 0 || i > len(gaps) {
		return ""
	}
	return fmt.Sprintf("%.2f", gaps[i-1].Width)
}
