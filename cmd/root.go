package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gobemt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gobemt",
	Short: "Blade Element Momentum Theory Rotor Analysis Tool",
	Long: `gobemt - Go Blade Element Momentum Theory Solver

A CLI tool for the aerodynamic analysis of rotors and propellers
using blade element momentum theory (BEMT).

This tool helps propulsion engineers evaluate:
  - Thrust, torque and power at an operating point
  - Spanwise load distributions along the blade
  - Performance sweeps over a velocity range
  - Propulsive efficiency and non-dimensional coefficients`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobemt v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Blade Element Momentum Theory Solver                 ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the aerodynamic analysis of rotors and")
		fmt.Println("  propellers using blade element momentum theory.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Single operating point analysis (spin)")
		fmt.Println("    • Velocity sweeps with performance curves (sweep)")
		fmt.Println("    • Spanwise load distribution charts")
		fmt.Println("    • Standard-atmosphere operating conditions")
		fmt.Println()
		fmt.Println("  Use 'gobemt --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
