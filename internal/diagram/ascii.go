package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	asciiHeight = 12
	asciiWidth  = 60
)

// SpanwiseASCII renders the radial thrust loading as a terminal chart.
func SpanwiseASCII(data SpanwiseData) string {
	if len(data.Thrust) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n  SPANWISE THRUST LOADING dT/dr (N/m)\n")
	sb.WriteString("  ───────────────────────────────────\n")
	sb.WriteString(asciigraph.Plot(data.Thrust,
		asciigraph.Height(asciiHeight),
		asciigraph.Width(asciiWidth),
		asciigraph.Offset(4),
	))
	sb.WriteString("\n")
	if n := len(data.Radius); n > 0 {
		sb.WriteString(fmt.Sprintf("  r = %.3f m %s %.3f m\n",
			data.Radius[0], strings.Repeat(".", 40), data.Radius[n-1]))
	}
	return sb.String()
}

// SweepASCII renders the efficiency curve of a velocity sweep.
func SweepASCII(data SweepData) string {
	if len(data.Efficiency) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n  PROPULSIVE EFFICIENCY vs VELOCITY\n")
	sb.WriteString("  ─────────────────────────────────\n")
	sb.WriteString(asciigraph.Plot(data.Efficiency,
		asciigraph.Height(asciiHeight),
		asciigraph.Width(asciiWidth),
		asciigraph.Offset(4),
	))
	sb.WriteString("\n")
	if n := len(data.Velocity); n > 0 {
		sb.WriteString(fmt.Sprintf("  V = %.1f m/s %s %.1f m/s\n",
			data.Velocity[0], strings.Repeat(".", 38), data.Velocity[n-1]))
	}
	return sb.String()
}
