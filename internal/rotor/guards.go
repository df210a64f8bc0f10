package rotor

import "math"

// Numerical safety nets for the inflow iteration and load integration.
// Each guard replaces an otherwise silent NaN/Inf with a bounded value so
// the iteration keeps moving and the load integrator never sees a
// non-finite coefficient.
const (
	// zeroLiftEpsilon replaces an exactly zero lift coefficient so the
	// circulation relation and the drag-to-lift ratio stay finite.
	zeroLiftEpsilon = 1e-6

	// derivativeFallback substitutes for a degenerate (NaN) analytic
	// Jacobian entry; small and nonzero so the Newton step stays bounded.
	derivativeFallback = 0.1

	// maxDragToLift caps eps = Cd/Cl when the lift coefficient underflows.
	maxDragToLift = 10.0
)

// nonNegative floors a quantity at zero. Used on the inflow ratio and the
// tip-loss exponent, which are physically non-negative.
func nonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// nudgeZeroLift keeps a zero lift coefficient away from exact zero.
func nudgeZeroLift(cl float64) float64 {
	if cl == 0 {
		return zeroLiftEpsilon
	}
	return cl
}

// guardSlope substitutes a degenerate residual derivative.
func guardSlope(d float64) float64 {
	if math.IsNaN(d) {
		return derivativeFallback
	}
	return d
}

// dragToLift returns eps = Cd/Cl, capped when the division overflows.
func dragToLift(cd, cl float64) float64 {
	eps := cd / cl
	if math.IsInf(eps, 0) || math.Abs(eps) > maxDragToLift {
		if eps < 0 {
			return -maxDragToLift
		}
		return maxDragToLift
	}
	return eps
}

// tipLossFactor evaluates the Prandtl factor F from the blade count, the
// nondimensional radius chi and the (already floored) local inflow ratio.
// chi = 1 gives F = 0; a vanishing inflow ratio gives F = 1.
func tipLossFactor(blades int, chi, lamdaw float64) float64 {
	var f float64
	if lamdaw > 0 {
		f = nonNegative(float64(blades) / 2 * (1 - chi) / lamdaw)
	} else if chi < 1 {
		f = math.Inf(1)
	}
	return 2 * math.Acos(math.Exp(-f)) / math.Pi
}
