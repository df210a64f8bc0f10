package rotor

import (
	"fmt"
	"math"
)

// Settings are the solver tunables. The zero value is not usable; start
// from DefaultSettings.
type Settings struct {
	// Tolerance is the convergence threshold on the largest inflow-angle
	// update across all stations and azimuths.
	Tolerance float64

	// MaxIterations caps the Newton iteration before the solver gives up
	// with a non-convergence warning.
	MaxIterations int

	// AzimuthStations is the number of azimuthal stations used when the
	// inflow is not axisymmetric.
	AzimuthStations int

	// StallAngle is the inflow angle (radians) beyond which a still
	// increasing iterate is treated as a stalled, non-convergent
	// trajectory and the iteration stops early.
	StallAngle float64
}

// DefaultSettings returns the standard solver configuration.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:       1e-6,
		MaxIterations:   10000,
		AzimuthStations: 24,
		StallAngle:      math.Pi / 2,
	}
}

func (s *Settings) validate() error {
	if s.Tolerance <= 0 {
		return fmt.Errorf("invalid tolerance: %.4g", s.Tolerance)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("invalid iteration limit: %d", s.MaxIterations)
	}
	if s.AzimuthStations < 1 {
		return fmt.Errorf("invalid azimuth station count: %d", s.AzimuthStations)
	}
	if s.StallAngle <= 0 {
		return fmt.Errorf("invalid stall angle: %.4g", s.StallAngle)
	}
	return nil
}
