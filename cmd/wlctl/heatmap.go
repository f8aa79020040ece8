package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	heatCells  = []string{"·", "░", "▒", "▓", "█"}
	heatColors = []lipgloss.Color{
		lipgloss.Color("#666666"),
		lipgloss.Color("#04B575"),
		lipgloss.Color("#00D7FF"),
		lipgloss.Color("#FFA500"),
		lipgloss.Color("#FF4B4B"),
	}

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	heatTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))
)

// heatLevel maps a write count to a cell index; any nonzero count is at
// least level 1.
func heatLevel(n, peak uint32) int {
	if n == 0 || peak == 0 {
		return 0
	}
	top := uint64(len(heatCells) - 1)
	return int((uint64(n)*top + uint64(peak) - 1) / uint64(peak))
}

// renderHeatMap draws counts as rows of width cells, one cell per address.
func renderHeatMap(counts []uint32, base, width int, color bool) string {
	if width <= 0 {
		width = 64
	}
	var peak uint32
	for _, n := range counts {
		peak = max(peak, n)
	}

	styles := make([]lipgloss.Style, len(heatCells))
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(heatColors[i])
	}
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	for row := 0; row < len(counts); row += width {
		end := min(row+width, len(counts))
		b.WriteString(paint(addrStyle, fmt.Sprintf("%06x", base+row)))
		b.WriteString(" │")
		for _, n := range counts[row:end] {
			lvl := heatLevel(n, peak)
			b.WriteString(paint(styles[lvl], heatCells[lvl]))
		}
		b.WriteByte('\n')
	}

	legend := make([]string, len(heatCells))
	for i := range heatCells {
		legend[i] = paint(styles[i], heatCells[i])
	}
	fmt.Fprintf(&b, "%s 0 … %d writes\n", strings.Join(legend, ""), peak)
	return b.String()
}

func renderTitle(s string, color bool) string {
	if !color {
		return s
	}
	return heatTitleStyle.Render(s)
}
