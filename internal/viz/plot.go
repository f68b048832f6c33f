// Package viz renders trajectories in the terminal: component plots
// via asciigraph and a live orbit view via bubbletea.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/lpaiva/kutta/internal/rk"
)

// PlotComponents renders one asciigraph per requested state component.
func PlotComponents(traj rk.Trajectory, components []int, labels []string) string {
	var sb strings.Builder
	for i, c := range components {
		caption := fmt.Sprintf("y%d", c)
		if i < len(labels) && labels[i] != "" {
			caption = labels[i]
		}

		graph := asciigraph.Plot(traj.Component(c),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		sb.WriteString(graph)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// PlotOrbits draws every body's (x, y) path on one braille canvas.
// positions maps body index to its x/y component indices in the state.
func PlotOrbits(traj rk.Trajectory, positions [][2]int, width, height int) string {
	canvas := NewCanvas(width, height)

	minX, maxX, minY, maxY := bounds(traj, positions)
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	pw, ph := float64(width*2-1), float64(height*4-1)
	for _, p := range traj {
		for _, pos := range positions {
			x, y := p.Y[pos[0]], p.Y[pos[1]]
			px := int((x - minX) / spanX * pw)
			py := int((maxY - y) / spanY * ph) // screen y grows downward
			canvas.Set(px, py)
		}
	}
	return canvas.String()
}

func bounds(traj rk.Trajectory, positions [][2]int) (minX, maxX, minY, maxY float64) {
	first := true
	for _, p := range traj {
		for _, pos := range positions {
			x, y := p.Y[pos[0]], p.Y[pos[1]]
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return minX, maxX, minY, maxY
}
