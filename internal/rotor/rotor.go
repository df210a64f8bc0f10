// Package rotor implements a blade element momentum theory (BEMT) solver
// for rotors and propellers, after Drela's QPROP formulation. Given blade
// geometry, airfoil data and one operating condition it converges the
// inflow-angle distribution with a Newton iteration and integrates the
// spanwise loads into thrust, torque, power and their coefficients.
package rotor

import (
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"gobemt/internal/airfoil"
)

// Rotor is the analysis facade. It owns the validated geometry, the solver
// settings and the per-station airfoil dispatch, all immutable after New,
// so a single Rotor may be spun concurrently from multiple goroutines.
type Rotor struct {
	geometry Geometry
	settings Settings

	r          []float64 // dimensional station radii
	deltar     []float64 // integration width per station
	surrogates []*airfoil.Polar
}

// New validates the geometry and settings and resolves the per-station
// airfoil dispatch once, so the Newton loop never re-dispatches.
func New(g Geometry, s Settings) (*Rotor, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("rotor geometry: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("solver settings: %w", err)
	}

	rt := &Rotor{geometry: g, settings: s}
	rt.r = g.stationRadii()
	rt.deltar = spanWidths(rt.r)

	rt.surrogates = make([]*airfoil.Polar, g.Stations())
	if g.AirfoilStations != nil {
		for i, id := range g.AirfoilStations {
			if id != FallbackAirfoil {
				rt.surrogates[i] = g.Airfoils[id]
			}
		}
	}
	return rt, nil
}

// Geometry returns a copy of the rotor geometry.
func (rt *Rotor) Geometry() Geometry { return rt.geometry }

// Settings returns the solver settings in use.
func (rt *Rotor) Settings() Settings { return rt.settings }

// Radii returns the dimensional station radii.
func (rt *Rotor) Radii() []float64 {
	out := make([]float64, len(rt.r))
	copy(out, rt.r)
	return out
}

// Result is the output bundle of one evaluation. Disc quantities are
// shaped [azimuth][station]; the uniform axial case has one azimuth row.
// Spanwise distributions are azimuth averages.
type Result struct {
	RadialStations  int
	AzimuthStations int
	Radius          []float64
	Azimuth         []float64 // rad

	InflowAngle        [][]float64 // rad
	AxialVelocity      [][]float64 // Wa, m/s
	TangentialVelocity [][]float64 // Wt, m/s
	AxialInduced       [][]float64 // m/s
	TangentialInduced  [][]float64 // m/s
	AngleOfAttack      [][]float64 // rad
	Circulation        [][]float64 // m^2/s
	LiftCoefficient    [][]float64
	DragCoefficient    [][]float64 // compressibility-corrected
	TipLoss            [][]float64
	InflowRatio        [][]float64
	ReynoldsNumber     [][]float64
	MachNumber         [][]float64

	ThrustPerSpan      []float64 // dT/dr, N/m
	TorquePerSpan      []float64 // dQ/dr, N
	ThrustDistribution []float64 // N per station
	TorqueDistribution []float64 // N m per station
	DragDistribution   []float64 // in-plane hub force, N per station

	Thrust         float64 // N, sign follows omega
	Torque         float64 // N m
	Power          float64 // W
	RotorDrag      float64 // N
	ThrustPerBlade float64
	TorquePerBlade float64

	Ct  float64 // thrust coefficient
	Cq  float64 // torque coefficient
	Cp  float64 // power coefficient
	Crd float64 // rotor drag coefficient
	Eta float64 // propulsive efficiency

	Converged  bool
	Iterations int
	Message    string
}

func (rt *Rotor) newResult(st *inflowState) *Result {
	res := &Result{
		RadialStations:  st.nr,
		AzimuthStations: st.na,
		Radius:          rt.Radii(),
		Azimuth:         make([]float64, st.na),

		InflowAngle:        st.psi,
		AxialVelocity:      st.wa,
		TangentialVelocity: st.wt,
		AxialInduced:       st.va,
		TangentialInduced:  st.vt,
		AngleOfAttack:      st.alpha,
		Circulation:        st.gamma,
		LiftCoefficient:    st.cl,
		DragCoefficient:    newGrid(st.na, st.nr),
		TipLoss:            st.tipLoss,
		InflowRatio:        st.lamdaw,
		ReynoldsNumber:     st.re,
		MachNumber:         st.ma,

		ThrustPerSpan:      make([]float64, st.nr),
		TorquePerSpan:      make([]float64, st.nr),
		ThrustDistribution: make([]float64, st.nr),
		TorqueDistribution: make([]float64, st.nr),
		DragDistribution:   make([]float64, st.nr),
	}
	for j := range res.Azimuth {
		res.Azimuth[j] = 2 * math.Pi * float64(j) / float64(st.na)
	}
	return res
}

// Spin analyzes the rotor at one operating point. The azimuthally
// resolved path is selected automatically when the inflow has an in-plane
// component; otherwise a single uniform solution is computed. A result is
// returned even when the iteration stalls or hits its limit; the quality
// degradation is reported through Converged and Message, not as an error.
func (rt *Rotor) Spin(op OperatingPoint) (*Result, error) {
	if err := op.validate(); err != nil {
		return nil, err
	}
	if op.Omega == 0 {
		return rt.zeroResult(), nil
	}

	na := 1
	if op.skewed() {
		na = rt.settings.AzimuthStations
	}
	prob := rt.problem(op, na, nil)
	st := prob.solve(rt.settings)
	return rt.finish(op, st), nil
}

// SpinNonuniform analyzes the rotor with an externally supplied velocity
// perturbation field at the disc (for example upstream wing or fuselage
// influences). The field forces the azimuthally resolved analysis; the
// momentum-theory Newton solve still runs.
func (rt *Rotor) SpinNonuniform(op OperatingPoint, field *InflowField) (*Result, error) {
	if err := op.validate(); err != nil {
		return nil, err
	}
	na := rt.settings.AzimuthStations
	nr := rt.geometry.Stations()
	if err := checkField("axial", field.Axial, na, nr); err != nil {
		return nil, err
	}
	if err := checkField("tangential", field.Tangential, na, nr); err != nil {
		return nil, err
	}
	if err := checkField("radial", field.Radial, na, nr); err != nil {
		return nil, err
	}
	if op.Omega == 0 {
		return rt.zeroResult(), nil
	}

	prob := rt.problem(op, na, field)
	st := prob.solve(rt.settings)
	return rt.finish(op, st), nil
}

// SpinPrescribedWake substitutes induced velocities supplied by an
// external wake model for the momentum-theory solve: the force balance is
// evaluated once, directly from the given field, and the load integration
// proceeds unchanged.
func (rt *Rotor) SpinPrescribedWake(op OperatingPoint, induced *InducedVelocities) (*Result, error) {
	if err := op.validate(); err != nil {
		return nil, err
	}
	na := len(induced.Axial)
	nr := rt.geometry.Stations()
	if na == 0 {
		return nil, fmt.Errorf("prescribed wake: empty induced velocity field")
	}
	if err := checkField("axial induced", induced.Axial, na, nr); err != nil {
		return nil, err
	}
	if err := checkField("tangential induced", induced.Tangential, na, nr); err != nil {
		return nil, err
	}
	if op.Omega == 0 {
		return rt.zeroResult(), nil
	}

	prob := rt.problem(op, na, nil)
	st := prob.evaluatePrescribed(induced)
	return rt.finish(op, st), nil
}

// SpinBatch evaluates independent control points concurrently. Each point
// gets its own iteration state, so no synchronization beyond the join is
// needed.
func (rt *Rotor) SpinBatch(ops []OperatingPoint) ([]*Result, error) {
	results := make([]*Result, len(ops))
	errs := make([]error, len(ops))

	var wg sync.WaitGroup
	for k := range ops {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			results[k], errs[k] = rt.Spin(ops[k])
		}(k)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// problem assembles the freestream decomposition on an na-by-Nr grid.
func (rt *Rotor) problem(op OperatingPoint, na int, field *InflowField) *inflowProblem {
	g := &rt.geometry
	nr := g.Stations()
	omega := math.Abs(op.Omega)
	v := op.Velocity[0]
	vy := op.Velocity[1]
	vz := op.Velocity[2]
	rotation := float64(g.Rotation)

	beta := make([]float64, nr)
	for i := range beta {
		beta[i] = g.Twist[i] + op.PitchCommand
	}

	p := &inflowProblem{
		blades:             g.Blades,
		tipRadius:          g.TipRadius,
		r:                  rt.r,
		chord:              g.Chord,
		tc:                 g.ThicknessToChord,
		beta:               beta,
		surrogates:         rt.surrogates,
		speedOfSound:       op.SpeedOfSound,
		kinematicViscosity: op.DynamicViscosity / op.Density,
		ua:                 newGrid(na, nr),
		ut:                 newGrid(na, nr),
		ur:                 newGrid(na, nr),
		u:                  newGrid(na, nr),
	}

	for j := 0; j < na; j++ {
		psiAz := 2 * math.Pi * float64(j) / float64(na)
		sinAz, cosAz := math.Sincos(psiAz)
		for i := 0; i < nr; i++ {
			var ua, ut, ur float64

			// In-plane freestream components appear as once-per-rev
			// tangential and radial disturbances around the azimuth.
			if na > 1 && op.skewed() {
				ut += (vz*cosAz - vy*sinAz) * rotation
				ur += -vz*sinAz - vy*cosAz
			}
			if field != nil {
				if field.Axial != nil {
					ua += field.Axial[j][i]
				}
				if field.Tangential != nil {
					ut += field.Tangential[j][i]
				}
				if field.Radial != nil {
					ur += field.Radial[j][i]
				}
			}

			p.ua[j][i] = v + ua
			p.ut[j][i] = omega*rt.r[i] - ut
			p.ur[j][i] = ur
			p.u[j][i] = math.Sqrt(p.ua[j][i]*p.ua[j][i] + p.ut[j][i]*p.ut[j][i] + ur*ur)
		}
	}
	return p
}

// finish integrates the loads and attaches the convergence diagnostics.
func (rt *Rotor) finish(op OperatingPoint, st *inflowState) *Result {
	switch {
	case st.stalled:
		log.WithFields(log.Fields{
			"iterations": st.iterations,
			"max_step":   st.maxStep,
		}).Warn("BEMT did not converge to a solution (stall)")
	case !st.converged:
		log.WithFields(log.Fields{
			"iterations": st.iterations,
			"max_step":   st.maxStep,
		}).Warn("BEMT did not converge to a solution (iteration limit)")
	}

	res := rt.integrate(op, st)
	res.Converged = st.converged
	res.Iterations = st.iterations
	switch {
	case st.stalled:
		res.Message = "did not converge: stall"
	case !st.converged:
		res.Message = "did not converge: iteration limit"
	default:
		res.Message = "converged"
	}
	return res
}

// zeroResult is the zero-inflow state returned without iterating when the
// rotor is not spinning.
func (rt *Rotor) zeroResult() *Result {
	st := newInflowState(1, rt.geometry.Stations())
	res := rt.newResult(st)
	res.Converged = true
	res.Message = "rotor not spinning"
	return res
}
