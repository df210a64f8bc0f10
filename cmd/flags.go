package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"gobemt/internal/config"
	"gobemt/internal/rotor"
)

// geometryFlags gathers the blade definition shared by the analysis
// commands. Chord and twist vary linearly from root to tip.
type geometryFlags struct {
	blades    int
	radius    float64
	hubRadius float64
	stations  int
	chordRoot float64
	chordTip  float64
	twistRoot float64 // deg
	twistTip  float64 // deg
	thickness float64
	ccw       bool
}

func (gf *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&gf.blades, "blades", "b", 2, "Number of blades")
	cmd.Flags().Float64VarP(&gf.radius, "radius", "r", 0, "Tip radius (m) [required]")
	cmd.Flags().Float64Var(&gf.hubRadius, "hub-radius", 0, "Hub radius (m), default 20% of tip radius")
	cmd.Flags().IntVar(&gf.stations, "stations", 20, "Number of radial stations")
	cmd.Flags().Float64Var(&gf.chordRoot, "chord-root", 0.1, "Root chord (m)")
	cmd.Flags().Float64Var(&gf.chordTip, "chord-tip", 0.05, "Tip chord (m)")
	cmd.Flags().Float64Var(&gf.twistRoot, "twist-root", 20, "Root twist (deg)")
	cmd.Flags().Float64Var(&gf.twistTip, "twist-tip", 5, "Tip twist (deg)")
	cmd.Flags().Float64Var(&gf.thickness, "thickness", 0.12, "Thickness-to-chord ratio")
	cmd.Flags().BoolVar(&gf.ccw, "ccw", false, "Counter-clockwise rotation")
	cmd.MarkFlagRequired("radius")
}

func (gf *geometryFlags) build() (rotor.Geometry, error) {
	nr := gf.stations
	if nr < 2 {
		return rotor.Geometry{}, fmt.Errorf("need at least 2 stations, got %d", nr)
	}
	hub := gf.hubRadius
	if hub == 0 {
		hub = 0.2 * gf.radius
	}

	chord := make([]float64, nr)
	twist := make([]float64, nr)
	tc := make([]float64, nr)
	for i := range chord {
		t := float64(i) / float64(nr-1)
		chord[i] = gf.chordRoot + t*(gf.chordTip-gf.chordRoot)
		twist[i] = (gf.twistRoot + t*(gf.twistTip-gf.twistRoot)) * math.Pi / 180
		tc[i] = gf.thickness
	}

	rotation := rotor.Clockwise
	if gf.ccw {
		rotation = rotor.CounterClockwise
	}
	return rotor.Geometry{
		Blades:           gf.blades,
		TipRadius:        gf.radius,
		HubRadius:        hub,
		Chord:            chord,
		Twist:            twist,
		ThicknessToChord: tc,
		Rotation:         rotation,
	}, nil
}

// loadSettings reads the solver INI file when one is given, otherwise
// the defaults apply.
func loadSettings(path string) (rotor.Settings, error) {
	if path == "" {
		return rotor.DefaultSettings(), nil
	}
	return config.LoadSettings(path)
}
