package rotor

import (
	"fmt"

	"gobemt/internal/atmosphere"
)

// OperatingPoint is one independent operating condition (a control point).
// The velocity is already resolved in the rotor's thrust-aligned frame:
// index 0 is the axial component (positive into the disc), 1 and 2 are the
// in-plane lateral and vertical components that drive azimuthal variation.
type OperatingPoint struct {
	Density          float64 // kg/m^3
	DynamicViscosity float64 // kg/(m s)
	SpeedOfSound     float64 // m/s
	Temperature      float64 // K

	Velocity [3]float64 // m/s, thrust frame

	Omega        float64 // rad/s, sign is rotation direction
	PitchCommand float64 // radians, added to the twist distribution
	Throttle     float64 // commanded throttle; <= 0 gates all loads to zero
}

// PointAtAltitude builds an operating point from standard-atmosphere
// properties at the given altitude.
func PointAtAltitude(altitude, deltaISA float64) (OperatingPoint, error) {
	props, err := atmosphere.AtAltitude(altitude, deltaISA)
	if err != nil {
		return OperatingPoint{}, err
	}
	return OperatingPoint{
		Density:          props.Density,
		DynamicViscosity: props.DynamicViscosity,
		SpeedOfSound:     props.SpeedOfSound,
		Temperature:      props.Temperature,
		Throttle:         1,
	}, nil
}

func (op *OperatingPoint) validate() error {
	if op.Density <= 0 {
		return fmt.Errorf("invalid freestream density: %.4g", op.Density)
	}
	if op.DynamicViscosity <= 0 {
		return fmt.Errorf("invalid dynamic viscosity: %.4g", op.DynamicViscosity)
	}
	if op.SpeedOfSound <= 0 {
		return fmt.Errorf("invalid speed of sound: %.4g", op.SpeedOfSound)
	}
	if op.Temperature <= 0 {
		return fmt.Errorf("invalid freestream temperature: %.4g", op.Temperature)
	}
	return nil
}

// skewed reports whether the inflow has an in-plane component large enough
// to require the azimuthally resolved analysis.
func (op *OperatingPoint) skewed() bool {
	const inPlaneThreshold = 1e-3 // m/s
	return abs(op.Velocity[1]) > inPlaneThreshold || abs(op.Velocity[2]) > inPlaneThreshold
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// InflowField is an externally supplied velocity perturbation at the rotor
// disc, shaped [azimuth][station]. Axial is positive into the disc,
// Tangential positive against the blade motion, Radial positive outboard.
type InflowField struct {
	Axial      [][]float64
	Tangential [][]float64
	Radial     [][]float64
}

// InducedVelocities carries induced velocities produced by an external
// wake model, shaped [azimuth][station]. They substitute for the momentum
// theory solve in SpinPrescribedWake.
type InducedVelocities struct {
	Axial      [][]float64
	Tangential [][]float64
}

func checkField(name string, field [][]float64, na, nr int) error {
	if field == nil {
		return nil
	}
	if len(field) != na {
		return fmt.Errorf("%s field has %d azimuth rows, want %d", name, len(field), na)
	}
	for j := range field {
		if len(field[j]) != nr {
			return fmt.Errorf("%s field row %d has %d stations, want %d", name, j, len(field[j]), nr)
		}
	}
	return nil
}
