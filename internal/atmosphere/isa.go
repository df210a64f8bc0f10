// Package atmosphere provides US Standard Atmosphere 1976 properties for
// the troposphere and lower stratosphere, with an optional ISA temperature
// offset. It supplies the freestream quantities the rotor solver consumes:
// density, dynamic viscosity, speed of sound and temperature.
package atmosphere

import (
	"fmt"
	"math"
)

const (
	seaLevelTemperature = 288.15  // K
	seaLevelPressure    = 101325. // Pa
	temperatureLapse    = 0.0065  // K/m, troposphere
	tropopauseAltitude  = 11000.  // m
	stratopauseAltitude = 20000.  // m, upper limit of the isothermal layer

	gasConstantAir = 287.053 // J/(kg K)
	gravity        = 9.80665 // m/s^2
	gamma          = 1.4

	// Sutherland's law for dynamic viscosity.
	sutherlandReference = 1.458e-6 // kg/(m s K^0.5)
	sutherlandConstant  = 110.4    // K
)

// Properties holds the freestream state at one altitude.
type Properties struct {
	Temperature      float64 // K
	Pressure         float64 // Pa
	Density          float64 // kg/m^3
	SpeedOfSound     float64 // m/s
	DynamicViscosity float64 // kg/(m s)
}

// AtAltitude returns standard-day properties at the given geopotential
// altitude in meters. deltaISA shifts the temperature profile (K) without
// altering the pressure profile, the usual hot/cold-day convention.
func AtAltitude(altitude, deltaISA float64) (Properties, error) {
	if altitude < 0 || altitude > stratopauseAltitude {
		return Properties{}, fmt.Errorf("altitude %.0f m outside supported range [0, %.0f]", altitude, stratopauseAltitude)
	}

	// One shared expression for both layers keeps the temperature exactly
	// continuous at the tropopause.
	tStd := seaLevelTemperature - temperatureLapse*math.Min(altitude, tropopauseAltitude)
	p := seaLevelPressure * math.Pow(tStd/seaLevelTemperature, gravity/(temperatureLapse*gasConstantAir))
	if altitude > tropopauseAltitude {
		p *= math.Exp(-gravity * (altitude - tropopauseAltitude) / (gasConstantAir * tStd))
	}

	t := tStd + deltaISA
	rho := p / (gasConstantAir * t)

	return Properties{
		Temperature:      t,
		Pressure:         p,
		Density:          rho,
		SpeedOfSound:     math.Sqrt(gamma * gasConstantAir * t),
		DynamicViscosity: sutherlandReference * t * math.Sqrt(t) / (t + sutherlandConstant),
	}, nil
}
