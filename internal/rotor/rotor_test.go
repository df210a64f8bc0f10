package rotor

import (
	"math"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.ErrorLevel)
	os.Exit(m.Run())
}

func within(t *testing.T, name string, got, want, relTol float64) {
	t.Helper()
	if math.Abs(got-want) > relTol*math.Abs(want) {
		t.Errorf("%s = %v, want %v (rel tol %v)", name, got, want, relTol)
	}
}

// testGeometry is a two-bladed rotor with constant chord and twist, no
// polar tables assigned, spanning ten stations from 10% to 91% radius.
func testGeometry() Geometry {
	const nr = 10
	chord := make([]float64, nr)
	twist := make([]float64, nr)
	tc := make([]float64, nr)
	for i := range chord {
		chord[i] = 0.1
		twist[i] = 10 * math.Pi / 180
		tc[i] = 0.12
	}
	return Geometry{
		Blades:           2,
		TipRadius:        1.0,
		HubRadius:        0.1,
		Chord:            chord,
		Twist:            twist,
		ThicknessToChord: tc,
		Rotation:         Clockwise,
	}
}

func seaLevelPoint(v float64) OperatingPoint {
	return OperatingPoint{
		Density:          1.225,
		DynamicViscosity: 1.789e-5,
		SpeedOfSound:     340.29,
		Temperature:      288.15,
		Velocity:         [3]float64{v, 0, 0},
		Omega:            100,
		Throttle:         1,
	}
}

func testRotor(t *testing.T) *Rotor {
	t.Helper()
	rt, err := New(testGeometry(), DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	return rt
}

func TestHover(t *testing.T) {
	rt := testRotor(t)
	res, err := rt.Spin(seaLevelPoint(0))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("hover did not converge: %s", res.Message)
	}
	if res.Iterations >= DefaultSettings().MaxIterations {
		t.Errorf("convergence took the full iteration budget: %d", res.Iterations)
	}
	if res.Iterations > 200 {
		t.Errorf("hover should converge in well under 200 iterations, took %d", res.Iterations)
	}
	within(t, "thrust", res.Thrust, 183.03, 1e-3)
	within(t, "torque", res.Torque, 16.478, 1e-3)
	within(t, "power", res.Power, 100*res.Torque, 1e-12)
	within(t, "Ct", res.Ct, 0.036867, 1e-3)
	within(t, "Cq", res.Cq, 0.0016595, 1e-3)
	within(t, "Cp", res.Cp, 0.010427, 1e-3)
	within(t, "thrust per blade", res.ThrustPerBlade, res.Thrust/2, 1e-12)
	if res.Eta != 0 {
		t.Errorf("hover efficiency must be exactly zero, got %v", res.Eta)
	}
	if res.Ct < 0 || res.Ct > 1 || res.Cp < 0 || res.Cp > 1 {
		t.Errorf("coefficients out of range: Ct=%v Cp=%v", res.Ct, res.Cp)
	}
	if res.Message != "converged" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestClimb(t *testing.T) {
	rt := testRotor(t)
	hover, _ := rt.Spin(seaLevelPoint(0))
	res, err := rt.Spin(seaLevelPoint(10))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("climb did not converge: %s", res.Message)
	}
	within(t, "thrust", res.Thrust, 35.085, 1e-3)
	within(t, "efficiency", res.Eta, 0.35908, 1e-3)
	if res.Eta <= 0 || res.Eta >= 1 {
		t.Errorf("climb efficiency out of (0,1): %v", res.Eta)
	}
	if res.Thrust >= hover.Thrust {
		t.Errorf("axial inflow should unload the rotor: %v >= %v", res.Thrust, hover.Thrust)
	}
}

func TestWindmilling(t *testing.T) {
	rt := testRotor(t)
	res, err := rt.Spin(seaLevelPoint(50))
	if err != nil {
		t.Fatal(err)
	}
	if res.Thrust >= 0 {
		t.Errorf("expected negative thrust while windmilling, got %v", res.Thrust)
	}
	if res.Ct != 0 || res.Cp != 0 {
		t.Errorf("negative coefficients must be floored at zero: Ct=%v Cp=%v", res.Ct, res.Cp)
	}
}

func TestZeroOmega(t *testing.T) {
	rt := testRotor(t)
	op := seaLevelPoint(10)
	op.Omega = 0
	res, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}
	if res.Thrust != 0 || res.Torque != 0 || res.Power != 0 {
		t.Errorf("stopped rotor produced loads: T=%v Q=%v P=%v", res.Thrust, res.Torque, res.Power)
	}
	if !res.Converged {
		t.Error("stopped rotor must report a trivially converged state")
	}
	if res.Message != "rotor not spinning" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestThrottleGate(t *testing.T) {
	rt := testRotor(t)
	op := seaLevelPoint(0)
	op.Throttle = 0
	res, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}
	if res.Thrust != 0 || res.Torque != 0 || res.Power != 0 || res.RotorDrag != 0 {
		t.Errorf("zero throttle must gate all loads: T=%v Q=%v P=%v D=%v",
			res.Thrust, res.Torque, res.Power, res.RotorDrag)
	}
}

func TestReversedRotation(t *testing.T) {
	rt := testRotor(t)
	fwd, _ := rt.Spin(seaLevelPoint(0))
	op := seaLevelPoint(0)
	op.Omega = -100
	rev, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}
	within(t, "reversed thrust", rev.Thrust, -fwd.Thrust, 1e-9)
	within(t, "reversed torque", rev.Torque, fwd.Torque, 1e-9)
}

func TestRepeatability(t *testing.T) {
	rt := testRotor(t)
	a, _ := rt.Spin(seaLevelPoint(10))
	b, _ := rt.Spin(seaLevelPoint(10))
	if a.Thrust != b.Thrust || a.Power != b.Power || a.Iterations != b.Iterations {
		t.Errorf("repeated evaluation diverged: %v/%v vs %v/%v",
			a.Thrust, a.Power, b.Thrust, b.Power)
	}
}

func TestPitchCommandLoadsRotor(t *testing.T) {
	rt := testRotor(t)
	flat, _ := rt.Spin(seaLevelPoint(0))
	op := seaLevelPoint(0)
	op.PitchCommand = 5 * math.Pi / 180
	pitched, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}
	if pitched.Thrust <= flat.Thrust {
		t.Errorf("collective pitch should increase thrust: %v <= %v", pitched.Thrust, flat.Thrust)
	}
}

// The axisymmetric single-row solution and the azimuthally resolved
// analysis must agree when nothing varies around the disc.
func TestAxialMatchesResolved(t *testing.T) {
	rt := testRotor(t)
	op := seaLevelPoint(10)
	uniform, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}

	na := rt.Settings().AzimuthStations
	nr := rt.Geometry().Stations()
	field := &InflowField{
		Axial:      newGrid(na, nr),
		Tangential: newGrid(na, nr),
		Radial:     newGrid(na, nr),
	}
	resolved, err := rt.SpinNonuniform(op, field)
	if err != nil {
		t.Fatal(err)
	}
	if uniform.AzimuthStations != 1 || resolved.AzimuthStations != na {
		t.Fatalf("unexpected azimuth resolution: %d, %d", uniform.AzimuthStations, resolved.AzimuthStations)
	}
	within(t, "thrust", resolved.Thrust, uniform.Thrust, 1e-9)
	within(t, "torque", resolved.Torque, uniform.Torque, 1e-9)
	within(t, "power", resolved.Power, uniform.Power, 1e-9)
}

func TestLateralInflowResolvesAzimuth(t *testing.T) {
	rt := testRotor(t)
	op := seaLevelPoint(0)
	op.Velocity[1] = 5
	res, err := rt.Spin(op)
	if err != nil {
		t.Fatal(err)
	}
	if res.AzimuthStations != rt.Settings().AzimuthStations {
		t.Fatalf("lateral inflow must trigger the resolved analysis, got %d rows", res.AzimuthStations)
	}
	if !res.Converged {
		t.Fatalf("edgewise case did not converge: %s", res.Message)
	}
	if res.Thrust <= 0 {
		t.Errorf("expected positive thrust, got %v", res.Thrust)
	}

	// The advancing and retreating sides see different tangential
	// velocities, so the disc solution cannot be axisymmetric.
	mid := res.RadialStations / 2
	varies := false
	for j := 1; j < res.AzimuthStations; j++ {
		if res.InflowAngle[j][mid] != res.InflowAngle[0][mid] {
			varies = true
			break
		}
	}
	if !varies {
		t.Error("disc solution is axisymmetric under edgewise inflow")
	}
}

func TestPrescribedWakeZeroInduced(t *testing.T) {
	rt := testRotor(t)
	nr := rt.Geometry().Stations()
	induced := &InducedVelocities{
		Axial:      newGrid(1, nr),
		Tangential: newGrid(1, nr),
	}
	res, err := rt.SpinPrescribedWake(seaLevelPoint(0), induced)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Error("prescribed-wake evaluation must not iterate")
	}
	if res.Thrust != 0 || res.Torque != 0 {
		t.Errorf("zero induced velocity carries zero circulation: T=%v Q=%v", res.Thrust, res.Torque)
	}
}

func TestIterationLimit(t *testing.T) {
	s := DefaultSettings()
	s.MaxIterations = 1
	rt, err := New(testGeometry(), s)
	if err != nil {
		t.Fatal(err)
	}
	res, err := rt.Spin(seaLevelPoint(0))
	if err != nil {
		t.Fatalf("non-convergence must not be an error: %v", err)
	}
	if res.Converged {
		t.Error("one iteration cannot satisfy the tolerance")
	}
	if res.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", res.Iterations)
	}
	if res.Message != "did not converge: iteration limit" {
		t.Errorf("unexpected message %q", res.Message)
	}
	if math.IsNaN(res.Thrust) {
		t.Error("partial solution must still integrate to finite loads")
	}
}

func TestBatchMatchesSerial(t *testing.T) {
	rt := testRotor(t)
	ops := []OperatingPoint{seaLevelPoint(0), seaLevelPoint(10), seaLevelPoint(20)}
	batch, err := rt.SpinBatch(ops)
	if err != nil {
		t.Fatal(err)
	}
	for k, op := range ops {
		serial, _ := rt.Spin(op)
		if batch[k].Thrust != serial.Thrust || batch[k].Power != serial.Power {
			t.Errorf("point %d: batch %v/%v, serial %v/%v",
				k, batch[k].Thrust, batch[k].Power, serial.Thrust, serial.Power)
		}
	}
}

func TestOperatingPointValidation(t *testing.T) {
	rt := testRotor(t)
	op := seaLevelPoint(0)
	op.Density = 0
	if _, err := rt.Spin(op); err == nil {
		t.Error("zero density accepted")
	}
	op = seaLevelPoint(0)
	op.SpeedOfSound = -1
	if _, err := rt.Spin(op); err == nil {
		t.Error("negative speed of sound accepted")
	}
}

func TestFieldShapeValidation(t *testing.T) {
	rt := testRotor(t)
	bad := &InflowField{Axial: newGrid(3, rt.Geometry().Stations())}
	if _, err := rt.SpinNonuniform(seaLevelPoint(0), bad); err == nil {
		t.Error("mis-shaped inflow field accepted")
	}
	short := &InducedVelocities{
		Axial:      newGrid(1, 2),
		Tangential: newGrid(1, 2),
	}
	if _, err := rt.SpinPrescribedWake(seaLevelPoint(0), short); err == nil {
		t.Error("mis-shaped induced velocity field accepted")
	}
}

func TestSettingsValidation(t *testing.T) {
	g := testGeometry()
	s := DefaultSettings()
	s.Tolerance = 0
	if _, err := New(g, s); err == nil {
		t.Error("zero tolerance accepted")
	}
	s = DefaultSettings()
	s.MaxIterations = 0
	if _, err := New(g, s); err == nil {
		t.Error("zero iteration limit accepted")
	}
	s = DefaultSettings()
	s.AzimuthStations = 0
	if _, err := New(g, s); err == nil {
		t.Error("zero azimuth stations accepted")
	}
}
