package rotor

import (
	"math"
	"testing"
)

func TestSpanWidths(t *testing.T) {
	r := []float64{0.1, 0.2, 0.4, 0.7}
	dr := spanWidths(r)
	want := []float64{0.1, 0.15, 0.25, 0.3}
	for i := range want {
		if math.Abs(dr[i]-want[i]) > 1e-12 {
			t.Errorf("dr[%d] = %v, want %v", i, dr[i], want[i])
		}
	}
}

func TestCorrectedDragIncompressible(t *testing.T) {
	// At Mach zero every temperature ratio collapses to one.
	if got := correctedDrag(0.02, 0, 288.15); math.Abs(got-0.02) > 1e-12 {
		t.Errorf("Mach-zero correction altered drag: %v", got)
	}
}

func TestCorrectedDragReducesAtSpeed(t *testing.T) {
	base := 0.02
	got := correctedDrag(base, 0.5, 288.15)
	if got >= base {
		t.Errorf("compressible correction should reduce drag: %v >= %v", got, base)
	}
	if got <= 0 {
		t.Errorf("corrected drag must stay positive: %v", got)
	}
}

func TestSpanwiseDistributionsConsistent(t *testing.T) {
	rt := testRotor(t)
	res, err := rt.Spin(seaLevelPoint(0))
	if err != nil {
		t.Fatal(err)
	}

	// The reported totals must equal the blade count times the integrated
	// distributions.
	var thrust, torque float64
	for i := range res.ThrustDistribution {
		thrust += res.ThrustDistribution[i]
		torque += res.TorqueDistribution[i]
	}
	within(t, "integrated thrust", 2*thrust, res.Thrust, 1e-12)
	within(t, "integrated torque", 2*torque, res.Torque, 1e-12)

	// With constant chord and twist the loading grows with the local
	// dynamic pressure, hub to tip.
	for i := 1; i < len(res.ThrustPerSpan); i++ {
		if res.ThrustPerSpan[i] <= res.ThrustPerSpan[i-1] {
			t.Errorf("loading not increasing outboard at station %d: %v <= %v",
				i, res.ThrustPerSpan[i], res.ThrustPerSpan[i-1])
		}
	}
	for i, f := range res.TipLoss[0] {
		if f < 0 || f > 1 {
			t.Errorf("tip-loss factor out of [0,1] at station %d: %v", i, f)
		}
	}
}
