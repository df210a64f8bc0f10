package rotor

import (
	"math"

	"gobemt/internal/airfoil"
)

// Fallback lift/drag model constants, used at stations with no assigned
// polar table. The maximum lift estimate is a cubic fit in thickness to
// chord referenced to Re = 9e6; the drag estimate is a quartic fit in Cl
// referenced to Re = 5e4.
const (
	clMaxReferenceRe = 9e6
	dragReferenceRe  = 50000.0
	stalledDrag      = 2.0
)

// sectionForces returns the lift coefficient and the uncorrected drag
// coefficient at one blade section. When a polar surrogate is assigned the
// table is queried at (Re, alpha); otherwise the closed-form fallback model
// is used. Either way the returned lift is nudged away from exact zero so
// the circulation relation downstream stays finite.
func sectionForces(pol *airfoil.Polar, re, ma, alpha, tc float64) (cl, cdval float64) {
	if pol != nil {
		cl, cdval = pol.Evaluate(re, alpha)
		return nudgeZeroLift(cl), cdval
	}
	cl, cdval = fallbackForces(re, ma, alpha, tc)
	return nudgeZeroLift(cl), cdval
}

// fallbackForces is the thin-airfoil approximation with a Reynolds
// dependent stall clip, a Karman-Tsien compressibility correction below
// Mach 1, and a quartic drag fit scaled to the local Reynolds number.
func fallbackForces(re, ma, alpha, tc float64) (cl, cdval float64) {
	// Vanishing Reynolds numbers only occur at degenerate stations; the
	// floor keeps the drag fit finite for the load integrator.
	if re < 1 {
		re = 1
	}

	clMaxRef := -0.0009*tc*tc*tc + 0.0217*tc*tc - 0.0442*tc + 0.7005
	clMax := clMaxRef * math.Pow(re/clMaxReferenceRe, 0.1)

	cl = 2 * math.Pi * alpha
	if cl > clMax {
		cl = clMax
	}
	if cl < -clMax {
		cl = -clMax
	}
	if math.Abs(alpha) >= math.Pi/2 {
		cl = 0
	}

	// Karman-Tsien scaling, subsonic sections only.
	if ma < 1 {
		beta := math.Sqrt(1 - ma*ma)
		cl = cl / (beta + (ma*ma/(1+beta))*cl/2)
	}

	cdval = (0.108*cl*cl*cl*cl - 0.2612*cl*cl*cl + 0.181*cl*cl - 0.0139*cl + 0.0278) *
		math.Pow(dragReferenceRe/re, 0.2)
	if math.Abs(alpha) >= math.Pi/2 {
		cdval = stalledDrag
	}
	return cl, cdval
}
