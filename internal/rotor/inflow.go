package rotor

import (
	"math"

	"gobemt/internal/airfoil"
)

// inflowProblem gathers everything that stays constant across Newton
// iterations for one control point: geometry, section data, atmosphere
// scalars and the freestream velocity decomposition on the solution grid.
// All grids are shaped [azimuth][station]; the uniform axial case uses a
// single azimuth row.
type inflowProblem struct {
	blades    int
	tipRadius float64

	r     []float64 // dimensional station radii
	chord []float64
	tc    []float64
	beta  []float64 // twist + pitch command

	surrogates []*airfoil.Polar // per station, nil selects the fallback model

	speedOfSound       float64
	kinematicViscosity float64

	// Freestream decomposition at each grid cell: axial, tangential and
	// radial components, and the total magnitude U.
	ua, ut, ur, u [][]float64
}

// inflowState is the solver-internal iteration state, created fresh per
// evaluation, plus the field quantities of the last completed iteration.
type inflowState struct {
	na, nr int

	psi      [][]float64 // inflow angle, the Newton unknown
	wa, wt   [][]float64 // local axial/tangential velocities
	va, vt   [][]float64 // induced velocities
	alpha    [][]float64 // local angle of attack
	w        [][]float64 // local relative velocity magnitude
	ma       [][]float64 // local Mach number
	re       [][]float64 // local Reynolds number
	gamma    [][]float64 // circulation
	cl       [][]float64 // lift coefficient
	cdval    [][]float64 // drag coefficient before compressibility scaling
	tipLoss  [][]float64
	lamdaw   [][]float64 // nondimensional inflow ratio
	residual [][]float64

	converged  bool
	stalled    bool
	iterations int
	maxStep    float64
}

func newGrid(na, nr int) [][]float64 {
	g := make([][]float64, na)
	for j := range g {
		g[j] = make([]float64, nr)
	}
	return g
}

func fillGrid(g [][]float64, v float64) {
	for j := range g {
		for i := range g[j] {
			g[j][i] = v
		}
	}
}

func newInflowState(na, nr int) *inflowState {
	st := &inflowState{na: na, nr: nr}
	st.psi = newGrid(na, nr)
	st.wa = newGrid(na, nr)
	st.wt = newGrid(na, nr)
	st.va = newGrid(na, nr)
	st.vt = newGrid(na, nr)
	st.alpha = newGrid(na, nr)
	st.w = newGrid(na, nr)
	st.ma = newGrid(na, nr)
	st.re = newGrid(na, nr)
	st.gamma = newGrid(na, nr)
	st.cl = newGrid(na, nr)
	st.cdval = newGrid(na, nr)
	st.tipLoss = newGrid(na, nr)
	st.lamdaw = newGrid(na, nr)
	st.residual = newGrid(na, nr)
	return st
}

// evaluateCell computes the force-balance quantities at one grid cell from
// the local axial/tangential velocities and writes them into the state.
// It returns the residual of the circulation balance.
func (p *inflowProblem) evaluateCell(st *inflowState, j, i int, wa, wt float64) float64 {
	r := p.r[i]
	chi := r / p.tipRadius

	st.wa[j][i] = wa
	st.wt[j][i] = wt
	st.va[j][i] = wa - p.ua[j][i]
	st.vt[j][i] = p.ut[j][i] - wt
	st.alpha[j][i] = p.beta[i] - math.Atan2(wa, wt)

	w := math.Sqrt(wa*wa + wt*wt)
	st.w[j][i] = w
	st.ma[j][i] = w / p.speedOfSound
	st.re[j][i] = w * p.chord[i] / p.kinematicViscosity

	lamdaw := nonNegative(r * wa / (p.tipRadius * wt))
	st.lamdaw[j][i] = lamdaw

	F := tipLossFactor(p.blades, chi, lamdaw)
	st.tipLoss[j][i] = F

	helix := 4 * lamdaw * p.tipRadius / (math.Pi * float64(p.blades) * r)
	st.gamma[j][i] = st.vt[j][i] * (4 * math.Pi * r / float64(p.blades)) * F * math.Sqrt(1+helix*helix)

	cl, cdval := sectionForces(p.surrogates[i], st.re[j][i], st.ma[j][i], st.alpha[j][i], p.tc[i])
	st.cl[j][i] = cl
	st.cdval[j][i] = cdval

	res := st.gamma[j][i] - 0.5*w*p.chord[i]*cl
	st.residual[j][i] = res
	return res
}

// solve runs the Newton iteration on the inflow angle until the largest
// update falls below the tolerance, the trajectory stalls, or the
// iteration limit is hit. The state always holds the best available
// solution; quality degradation is reported through the flags, never as an
// error.
func (p *inflowProblem) solve(settings Settings) *inflowState {
	na := len(p.ua)
	nr := len(p.r)
	st := newInflowState(na, nr)

	// A neutral nonzero start keeps the Jacobian away from its psi = 0
	// degeneracy.
	fillGrid(st.psi, 1)

	for {
		st.iterations++
		maxStep := 0.0
		overStall := false
		increasing := false

		for j := 0; j < na; j++ {
			for i := 0; i < nr; i++ {
				psi := st.psi[j][i]
				sinPsi, cosPsi := math.Sincos(psi)

				u := p.u[j][i]
				wa := 0.5*p.ua[j][i] + 0.5*u*sinPsi
				wt := 0.5*p.ut[j][i] + 0.5*u*cosPsi

				res := p.evaluateCell(st, j, i, wa, wt)

				arccosPiece := st.tipLoss[j][i] * math.Pi / 2
				slope := guardSlope(p.residualSlope(i, sinPsi, cosPsi, wa, wt,
					p.ua[j][i], p.ut[j][i], u, math.Cos(arccosPiece), arccosPiece))

				dpsi := -res / slope
				st.psi[j][i] = psi + dpsi

				if step := math.Abs(dpsi); step > maxStep {
					maxStep = step
				}
				if st.psi[j][i] > settings.StallAngle {
					overStall = true
				}
				if dpsi > 0 {
					increasing = true
				}
			}
		}
		st.maxStep = maxStep

		if maxStep < settings.Tolerance {
			st.converged = true
			break
		}
		if overStall && increasing {
			st.stalled = true
			break
		}
		if st.iterations >= settings.MaxIterations {
			break
		}
	}

	// The tip-loss factor only entered the loads during the iteration;
	// fold it into the reported induced velocities.
	for j := 0; j < na; j++ {
		for i := 0; i < nr; i++ {
			st.va[j][i] *= st.tipLoss[j][i]
			st.vt[j][i] *= st.tipLoss[j][i]
		}
	}
	return st
}

// evaluatePrescribed computes the force-balance quantities once from
// externally supplied induced velocities, skipping the Newton iteration.
// The reported inflow angle is the local flow angle atan2(Wa, Wt).
func (p *inflowProblem) evaluatePrescribed(induced *InducedVelocities) *inflowState {
	na := len(p.ua)
	nr := len(p.r)
	st := newInflowState(na, nr)
	st.converged = true

	for j := 0; j < na; j++ {
		for i := 0; i < nr; i++ {
			wa := induced.Axial[j][i] + p.ua[j][i]
			wt := p.ut[j][i] - induced.Tangential[j][i]
			p.evaluateCell(st, j, i, wa, wt)
			st.psi[j][i] = math.Atan2(wa, wt)
		}
	}
	return st
}

// residualSlope is the closed-form derivative of the circulation balance
// residual with respect to the inflow angle, originally derived
// symbolically. Degenerate geometry can drive individual terms to NaN; the
// caller substitutes a small nonzero fallback in that case.
func (p *inflowProblem) residualSlope(i int, sinPsi, cosPsi, wa, wt, ua, ut, u, piece, arccosPiece float64) float64 {
	b := float64(p.blades)
	bb := b * b
	bbb := bb * b
	pi := math.Pi
	pi2 := pi * pi
	r := p.r[i]
	tipR := p.tipRadius
	beta := p.beta[i]

	fWt2 := 4 * wt * wt
	fWa2 := 4 * wa * wa
	uCosPsi := u * cosPsi
	uSinPsi := u * sinPsi
	utCosPsi := ut * cosPsi
	uaSinPsi := ua * sinPsi
	uaPlusUsin := ua + uSinPsi
	utPlusUcos := ut + uCosPsi
	utPlusUcos2 := utPlusUcos * utPlusUcos
	uaPlusUsin2 := uaPlusUsin * uaPlusUsin

	term1 := (4 * u * r * arccosPiece * sinPsi * math.Sqrt(16*uaPlusUsin2/(bb*pi2*fWt2)+1)) / b
	term2 := (pi * u * (ua*cosPsi - ut*sinPsi) * (beta - math.Atan((wa+wa)/(wt+wt)))) /
		(2 * math.Sqrt(fWt2+fWa2))
	term3 := (pi * u * math.Sqrt(fWt2+fWa2) * (u + utCosPsi + uaSinPsi)) /
		(2 * (fWa2/fWt2 + 1) * utPlusUcos2)
	term4 := (4 * u * piece * math.Sqrt(16*uaPlusUsin2/(bb*pi2*fWt2)+1) * (tipR - r) *
		(ut/2 - uCosPsi/2) * (u + utCosPsi + uaSinPsi)) /
		(fWa2 * math.Sqrt(1-math.Exp(-(b*(wt+wt)*(tipR-r))/(r*(wa+wa)))))
	term5 := (128 * u * r * arccosPiece * (wa + wa) * (ut/2 - uCosPsi/2) *
		(u + utCosPsi + uaSinPsi)) /
		(bbb * pi2 * utPlusUcos * utPlusUcos2 * math.Sqrt(16*fWa2/(bb*pi2*fWt2)+1))

	return term1 - term2 + term3 - term4 + term5
}
