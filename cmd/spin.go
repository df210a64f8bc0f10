package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gobemt/internal/diagram"
	"gobemt/internal/rotor"
)

var (
	spinGeometry geometryFlags

	spinRPM      float64
	spinVelocity float64
	spinAltitude float64
	spinDeltaISA float64
	spinPitch    float64
	spinConfig   string
	spinPlot     string
	spinASCII    bool
)

var spinCmd = &cobra.Command{
	Use:   "spin",
	Short: "Analyze a rotor at one operating point",
	Long: `Converge the blade element momentum solution for one rotor at one
operating point and report thrust, torque, power, the non-dimensional
coefficients and the propulsive efficiency.

The atmosphere is the 1976 standard atmosphere at the given altitude;
chord and twist vary linearly from root to tip.

Examples:
  # Static thrust of a two-bladed 1 m rotor at 2000 RPM
  gobemt spin --radius 1.0 --rpm 2000

  # Cruise at 40 m/s and 2500 m altitude, with a spanwise chart
  gobemt spin -r 0.8 --rpm 2400 -v 40 --altitude 2500 --ascii

  # Export the load distribution to an image
  gobemt spin -r 1.0 --rpm 2000 --plot loads.png`,
	RunE: runSpin,
}

func init() {
	rootCmd.AddCommand(spinCmd)
	spinGeometry.register(spinCmd)

	spinCmd.Flags().Float64Var(&spinRPM, "rpm", 0, "Rotation speed (RPM) [required]")
	spinCmd.Flags().Float64VarP(&spinVelocity, "velocity", "v", 0, "Axial freestream velocity (m/s)")
	spinCmd.Flags().Float64Var(&spinAltitude, "altitude", 0, "Altitude (m)")
	spinCmd.Flags().Float64Var(&spinDeltaISA, "delta-isa", 0, "Temperature offset from ISA (K)")
	spinCmd.Flags().Float64Var(&spinPitch, "pitch", 0, "Collective pitch command (deg)")
	spinCmd.Flags().StringVarP(&spinConfig, "config", "c", "", "Solver settings INI file")
	spinCmd.Flags().StringVar(&spinPlot, "plot", "", "Export the spanwise loads to an image file")
	spinCmd.Flags().BoolVar(&spinASCII, "ascii", false, "Print the spanwise loading as a terminal chart")
	spinCmd.MarkFlagRequired("rpm")
}

func runSpin(cmd *cobra.Command, args []string) error {
	g, err := spinGeometry.build()
	if err != nil {
		return err
	}
	settings, err := loadSettings(spinConfig)
	if err != nil {
		return err
	}
	rt, err := rotor.New(g, settings)
	if err != nil {
		return err
	}

	op, err := rotor.PointAtAltitude(spinAltitude, spinDeltaISA)
	if err != nil {
		return err
	}
	op.Velocity[0] = spinVelocity
	op.Omega = spinRPM * 2 * math.Pi / 60
	op.PitchCommand = spinPitch * math.Pi / 180

	res, err := rt.Spin(op)
	if err != nil {
		return err
	}

	printSpinReport(rt, op, res)

	if spinASCII {
		fmt.Println(diagram.SpanwiseASCII(spanwise(res)))
	}
	if spinPlot != "" {
		if err := diagram.ExportSpanwiseDiagram(spanwise(res), spinPlot); err != nil {
			return err
		}
		fmt.Printf("  Spanwise load diagram written to %s\n\n", spinPlot)
	}
	return nil
}

func spanwise(res *rotor.Result) diagram.SpanwiseData {
	return diagram.SpanwiseData{
		Radius: res.Radius,
		Thrust: res.ThrustPerSpan,
		Torque: res.TorquePerSpan,
	}
}

func printSpinReport(rt *rotor.Rotor, op rotor.OperatingPoint, res *rotor.Result) {
	g := rt.Geometry()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ROTOR OPERATING POINT ANALYSIS - BEMT")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Blades:\t%d\n", g.Blades)
	fmt.Fprintf(w, "  Tip Radius:\t%.3f m\n", g.TipRadius)
	fmt.Fprintf(w, "  Hub Radius:\t%.3f m\n", g.HubRadius)
	fmt.Fprintf(w, "  Radial Stations:\t%d\n", g.Stations())
	fmt.Fprintf(w, "  Rotation Speed:\t%.0f RPM\n", op.Omega*60/(2*math.Pi))
	fmt.Fprintf(w, "  Axial Velocity:\t%.2f m/s\n", op.Velocity[0])
	fmt.Fprintf(w, "  Collective Pitch:\t%.2f deg\n", op.PitchCommand*180/math.Pi)
	w.Flush()
	fmt.Println()

	fmt.Println("OPERATING CONDITIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Density:\t%.4f kg/m³\n", op.Density)
	fmt.Fprintf(w, "  Temperature:\t%.2f K\n", op.Temperature)
	fmt.Fprintf(w, "  Speed of Sound:\t%.2f m/s\n", op.SpeedOfSound)
	fmt.Fprintf(w, "  Tip Mach Number:\t%.3f\n", math.Abs(op.Omega)*g.TipRadius/op.SpeedOfSound)
	w.Flush()
	fmt.Println()

	fmt.Println("PERFORMANCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Thrust:\t%.2f N\n", res.Thrust)
	fmt.Fprintf(w, "  Torque:\t%.2f N·m\n", res.Torque)
	fmt.Fprintf(w, "  Power:\t%.2f W\n", res.Power)
	fmt.Fprintf(w, "  Thrust per Blade:\t%.2f N\n", res.ThrustPerBlade)
	fmt.Fprintf(w, "  In-plane Rotor Drag:\t%.2f N\n", res.RotorDrag)
	fmt.Fprintf(w, "  Propulsive Efficiency:\t%.4f\n", res.Eta)
	w.Flush()
	fmt.Println()

	fmt.Println("COEFFICIENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ct (thrust):\t%.6f\n", res.Ct)
	fmt.Fprintf(w, "  Cq (torque):\t%.6f\n", res.Cq)
	fmt.Fprintf(w, "  Cp (power):\t%.6f\n", res.Cp)
	w.Flush()
	fmt.Println()

	fmt.Println("CONVERGENCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	status := "✓"
	if !res.Converged {
		status = "⚠"
	}
	fmt.Fprintf(w, "  Status:\t%s %s\n", status, res.Message)
	fmt.Fprintf(w, "  Iterations:\t%d\n", res.Iterations)
	fmt.Fprintf(w, "  Azimuth Stations:\t%d\n", res.AzimuthStations)
	w.Flush()
	fmt.Println()
}
