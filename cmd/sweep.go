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
	sweepGeometry geometryFlags

	sweepRPM      float64
	sweepVMin     float64
	sweepVMax     float64
	sweepPoints   int
	sweepAltitude float64
	sweepDeltaISA float64
	sweepPitch    float64
	sweepConfig   string
	sweepPlot     string
	sweepASCII    bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep a rotor over a velocity range",
	Long: `Evaluate the rotor at a series of axial velocities and tabulate
thrust, power, the thrust coefficient and the propulsive efficiency at
each point. The points are independent and evaluated concurrently.

Examples:
  # Performance from static to 40 m/s in 20 steps
  gobemt sweep --radius 1.0 --rpm 2000 --vmax 40

  # Export the performance curves to an image
  gobemt sweep -r 1.0 --rpm 2000 --vmax 40 --plot sweep.png`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepGeometry.register(sweepCmd)

	sweepCmd.Flags().Float64Var(&sweepRPM, "rpm", 0, "Rotation speed (RPM) [required]")
	sweepCmd.Flags().Float64Var(&sweepVMin, "vmin", 0, "Lowest axial velocity (m/s)")
	sweepCmd.Flags().Float64Var(&sweepVMax, "vmax", 0, "Highest axial velocity (m/s) [required]")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 20, "Number of sweep points")
	sweepCmd.Flags().Float64Var(&sweepAltitude, "altitude", 0, "Altitude (m)")
	sweepCmd.Flags().Float64Var(&sweepDeltaISA, "delta-isa", 0, "Temperature offset from ISA (K)")
	sweepCmd.Flags().Float64Var(&sweepPitch, "pitch", 0, "Collective pitch command (deg)")
	sweepCmd.Flags().StringVarP(&sweepConfig, "config", "c", "", "Solver settings INI file")
	sweepCmd.Flags().StringVar(&sweepPlot, "plot", "", "Export the performance curves to an image file")
	sweepCmd.Flags().BoolVar(&sweepASCII, "ascii", false, "Print the efficiency curve as a terminal chart")
	sweepCmd.MarkFlagRequired("rpm")
	sweepCmd.MarkFlagRequired("vmax")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepPoints < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", sweepPoints)
	}
	if sweepVMax <= sweepVMin {
		return fmt.Errorf("vmax %.2f must exceed vmin %.2f", sweepVMax, sweepVMin)
	}

	g, err := sweepGeometry.build()
	if err != nil {
		return err
	}
	settings, err := loadSettings(sweepConfig)
	if err != nil {
		return err
	}
	rt, err := rotor.New(g, settings)
	if err != nil {
		return err
	}

	base, err := rotor.PointAtAltitude(sweepAltitude, sweepDeltaISA)
	if err != nil {
		return err
	}
	base.Omega = sweepRPM * 2 * math.Pi / 60
	base.PitchCommand = sweepPitch * math.Pi / 180

	ops := make([]rotor.OperatingPoint, sweepPoints)
	for k := range ops {
		ops[k] = base
		ops[k].Velocity[0] = sweepVMin + float64(k)*(sweepVMax-sweepVMin)/float64(sweepPoints-1)
	}

	results, err := rt.SpinBatch(ops)
	if err != nil {
		return err
	}

	data := diagram.SweepData{
		Velocity:   make([]float64, sweepPoints),
		Thrust:     make([]float64, sweepPoints),
		Power:      make([]float64, sweepPoints),
		Efficiency: make([]float64, sweepPoints),
	}
	for k, res := range results {
		data.Velocity[k] = ops[k].Velocity[0]
		data.Thrust[k] = res.Thrust
		data.Power[k] = res.Power
		data.Efficiency[k] = res.Eta
	}

	printSweepReport(ops, results)

	if sweepASCII {
		fmt.Println(diagram.SweepASCII(data))
	}
	if sweepPlot != "" {
		if err := diagram.ExportSweepDiagram(data, sweepPlot); err != nil {
			return err
		}
		fmt.Printf("  Performance sweep diagram written to %s\n\n", sweepPlot)
	}
	return nil
}

func printSweepReport(ops []rotor.OperatingPoint, results []*rotor.Result) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ROTOR VELOCITY SWEEP - BEMT")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  V (m/s)\tThrust (N)\tPower (W)\tCt\tEta\t")
	fmt.Fprintln(w, "  ───────\t──────────\t─────────\t──\t───\t")
	for k, res := range results {
		mark := ""
		if !res.Converged {
			mark = " ⚠"
		}
		fmt.Fprintf(w, "  %.2f\t%.2f\t%.2f\t%.6f\t%.4f%s\t\n",
			ops[k].Velocity[0], res.Thrust, res.Power, res.Ct, res.Eta, mark)
	}
	w.Flush()
	fmt.Println()
}
