// Package diagram renders rotor analysis results as terminal charts and
// image files.
package diagram

// SpanwiseData holds one radial load distribution for plotting.
type SpanwiseData struct {
	Radius []float64 // m, hub to tip
	Thrust []float64 // dT/dr, N/m
	Torque []float64 // dQ/dr, N
}

// SweepData holds performance curves over a velocity sweep.
type SweepData struct {
	Velocity   []float64 // m/s
	Thrust     []float64 // N
	Power      []float64 // W
	Efficiency []float64
}
