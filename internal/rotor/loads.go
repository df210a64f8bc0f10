package rotor

import "math"

// correctedDrag applies the compressible turbulent skin-friction scaling
// (adiabatic-wall temperature ratio, AA241 form) to the raw section drag.
// The correction affects power and efficiency only; the circulation
// balance inside the Newton loop uses the uncorrected value.
func correctedDrag(cdval, ma, temperature float64) float64 {
	twRatio := 1 + 1.78*ma*ma
	tpRatio := 1 + 0.035*ma*ma + 0.45*(twRatio-1)
	tp := tpRatio * temperature
	reRatio := math.Pow(tpRatio, 2.5) * (tp + 110.4) / (temperature + 110.4)
	return (1 / tpRatio) * math.Pow(1/reRatio, 0.2) * cdval
}

// spanWidths returns the integration width of each station: central
// differences at interior stations, forward/backward at the endpoints.
func spanWidths(r []float64) []float64 {
	n := len(r)
	dr := make([]float64, n)
	dr[0] = r[1] - r[0]
	dr[n-1] = r[n-1] - r[n-2]
	for i := 1; i < n-1; i++ {
		dr[i] = (r[i+1] - r[i-1]) / 2
	}
	return dr
}

// integrate turns a converged inflow state into spanwise load
// distributions, totals and non-dimensional coefficients, applying the
// edge-case gating on throttle and rotation speed.
func (rt *Rotor) integrate(op OperatingPoint, st *inflowState) *Result {
	g := &rt.geometry
	b := float64(g.Blades)
	rho := op.Density
	omega := math.Abs(op.Omega)
	na := float64(st.na)

	res := rt.newResult(st)

	// Azimuth-averaged spanwise derivatives and per-station loads.
	for i := 0; i < st.nr; i++ {
		var dTdr, dQdr, inPlane float64
		for j := 0; j < st.na; j++ {
			cd := correctedDrag(st.cdval[j][i], st.ma[j][i], op.Temperature)
			eps := dragToLift(cd, st.cl[j][i])
			gamma := st.gamma[j][i]
			dTdr += rho * gamma * (st.wt[j][i] - eps*st.wa[j][i])
			dQdr += rho * gamma * (st.wa[j][i] + eps*st.wt[j][i]) * rt.r[i]

			// In-plane hub force from the section lift/drag resolved
			// through the azimuth angle.
			psiAz := 2 * math.Pi * float64(j) / na
			omegar := omega * rt.r[i]
			fromDrag := 0.5 * rho * g.Chord[i] * cd * omegar * omegar * rt.deltar[i]
			fromLift := 0.5 * rho * g.Chord[i] * st.cl[j][i] * omegar * omegar * rt.deltar[i]
			inPlane += fromDrag*math.Sin(psiAz) + fromLift*math.Cos(psiAz)

			res.DragCoefficient[j][i] = cd
		}
		res.ThrustPerSpan[i] = dTdr / na
		res.TorquePerSpan[i] = dQdr / na
		res.ThrustDistribution[i] = res.ThrustPerSpan[i] * rt.deltar[i]
		res.TorqueDistribution[i] = res.TorquePerSpan[i] * rt.deltar[i]
		res.DragDistribution[i] = inPlane / na
	}

	var thrust, torque, rotorDrag float64
	for i := 0; i < st.nr; i++ {
		thrust += res.ThrustDistribution[i]
		torque += res.TorqueDistribution[i]
		rotorDrag += res.DragDistribution[i]
	}
	thrust *= b
	torque *= b
	rotorDrag *= b
	power := omega * torque

	// Non-dimensional coefficients.
	n := omega / (2 * math.Pi)
	d := 2 * g.TipRadius
	d4 := d * d * d * d
	ct := thrust / (rho * n * n * d4)
	cq := torque / (rho * n * n * d4 * d)
	cp := power / (rho * n * n * n * d4 * d)
	crd := rotorDrag / (rho * n * n * d4)

	v := op.Velocity[0]
	eta := 0.0
	if power != 0 {
		eta = v * thrust / power
	}

	// Edge-case gating.
	ct = nonNegative(ct)
	cq = nonNegative(cq)
	cp = nonNegative(cp)
	if op.Throttle <= 0 {
		thrust, torque, power, rotorDrag = 0, 0, 0, 0
	}
	if op.Omega < 0 {
		thrust = -thrust
	}

	res.Thrust = thrust
	res.Torque = torque
	res.Power = power
	res.RotorDrag = rotorDrag
	res.ThrustPerBlade = thrust / b
	res.TorquePerBlade = torque / b
	res.Ct = ct
	res.Cq = cq
	res.Cp = cp
	res.Crd = crd
	res.Eta = eta
	return res
}
