package rotor

import (
	"fmt"

	"gobemt/internal/airfoil"
)

// Rotation sense looking along the thrust axis.
const (
	Clockwise        = 1
	CounterClockwise = -1
)

// FallbackAirfoil marks a station with no assigned polar table; such
// stations use the closed-form lift/drag model instead of a surrogate.
const FallbackAirfoil = -1

// Geometry describes one rotor or propeller. All per-station slices share
// the same length Nr and run from the hub outward. The geometry is treated
// as immutable once handed to New.
type Geometry struct {
	Blades    int
	TipRadius float64 // m
	HubRadius float64 // m

	// Radius holds the dimensional station radii. Leave nil to place Nr
	// stations uniformly from the hub, excluding the exact tip.
	Radius []float64

	Chord            []float64 // m
	Twist            []float64 // radians
	ThicknessToChord []float64

	// MidChordAlignment is an optional sweep offset per station. It does
	// not enter the inflow solve; it is carried for downstream consumers.
	MidChordAlignment []float64

	Rotation int // Clockwise or CounterClockwise

	// Airfoils and AirfoilStations assign a polar table to each station.
	// AirfoilStations[i] indexes into Airfoils, or is FallbackAirfoil.
	// A nil AirfoilStations uses the fallback model everywhere.
	Airfoils        []*airfoil.Polar
	AirfoilStations []int
}

// Stations returns the number of radial stations.
func (g Geometry) Stations() int { return len(g.Chord) }

// Validate fails fast on configuration errors; these indicate a caller bug
// rather than a numerical edge case, so nothing downstream guards for them.
func (g *Geometry) Validate() error {
	nr := g.Stations()
	if g.Blades < 1 {
		return fmt.Errorf("invalid blade count: %d", g.Blades)
	}
	if g.TipRadius <= 0 {
		return fmt.Errorf("invalid tip radius: %.4f", g.TipRadius)
	}
	if g.HubRadius < 0 || g.HubRadius >= g.TipRadius {
		return fmt.Errorf("invalid hub radius: %.4f (tip %.4f)", g.HubRadius, g.TipRadius)
	}
	if nr < 2 {
		return fmt.Errorf("need at least 2 radial stations, got %d", nr)
	}
	if len(g.Twist) != nr {
		return fmt.Errorf("twist has %d stations, chord has %d", len(g.Twist), nr)
	}
	if len(g.ThicknessToChord) != nr {
		return fmt.Errorf("thickness-to-chord has %d stations, chord has %d", len(g.ThicknessToChord), nr)
	}
	if g.MidChordAlignment != nil && len(g.MidChordAlignment) != nr {
		return fmt.Errorf("mid-chord alignment has %d stations, chord has %d", len(g.MidChordAlignment), nr)
	}
	if g.Rotation != Clockwise && g.Rotation != CounterClockwise {
		return fmt.Errorf("rotation sense must be %+d or %+d, got %d", Clockwise, CounterClockwise, g.Rotation)
	}
	if g.Radius != nil {
		if len(g.Radius) != nr {
			return fmt.Errorf("radius has %d stations, chord has %d", len(g.Radius), nr)
		}
		for i, r := range g.Radius {
			if r < g.HubRadius || r > g.TipRadius {
				return fmt.Errorf("station %d radius %.4f outside [%.4f, %.4f]", i, r, g.HubRadius, g.TipRadius)
			}
			if i > 0 && r <= g.Radius[i-1] {
				return fmt.Errorf("radius must be strictly increasing at station %d", i)
			}
		}
	}
	if g.AirfoilStations != nil {
		if len(g.AirfoilStations) != nr {
			return fmt.Errorf("airfoil assignment has %d stations, chord has %d", len(g.AirfoilStations), nr)
		}
		for i, id := range g.AirfoilStations {
			if id == FallbackAirfoil {
				continue
			}
			if id < 0 || id >= len(g.Airfoils) {
				return fmt.Errorf("station %d references airfoil %d of %d", i, id, len(g.Airfoils))
			}
		}
	}
	for _, p := range g.Airfoils {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// stationRadii returns the dimensional radial coordinate of each station.
// With no explicit distribution the stations are spaced uniformly from the
// hub, stopping one cell short of the tip where the tip-loss factor is
// singular.
func (g *Geometry) stationRadii() []float64 {
	nr := g.Stations()
	r := make([]float64, nr)
	if g.Radius != nil {
		copy(r, g.Radius)
		return r
	}
	chi0 := g.HubRadius / g.TipRadius
	dchi := (1 - chi0) / float64(nr)
	for i := range r {
		r[i] = (chi0 + dchi*float64(i)) * g.TipRadius
	}
	return r
}
