package airfoil

import (
	"fmt"
	"sort"
)

// Polar is a gridded lift/drag table for one airfoil section, indexed by
// Reynolds number and angle of attack. Cl[i][j] and Cd[i][j] hold the
// coefficients at Re[i], Alpha[j]. Queries outside the grid are clamped to
// the nearest edge rather than extrapolated.
type Polar struct {
	Name  string
	Re    []float64 // strictly increasing
	Alpha []float64 // strictly increasing (radians)
	Cl    [][]float64
	Cd    [][]float64
}

// Validate checks the table for shape and ordering problems.
func (p *Polar) Validate() error {
	if len(p.Re) < 2 {
		return fmt.Errorf("airfoil %q: need at least 2 Reynolds rows, got %d", p.Name, len(p.Re))
	}
	if len(p.Alpha) < 2 {
		return fmt.Errorf("airfoil %q: need at least 2 alpha columns, got %d", p.Name, len(p.Alpha))
	}
	if !sort.Float64sAreSorted(p.Re) {
		return fmt.Errorf("airfoil %q: Reynolds rows must be increasing", p.Name)
	}
	if !sort.Float64sAreSorted(p.Alpha) {
		return fmt.Errorf("airfoil %q: alpha columns must be increasing", p.Name)
	}
	if len(p.Cl) != len(p.Re) || len(p.Cd) != len(p.Re) {
		return fmt.Errorf("airfoil %q: coefficient rows (%d Cl, %d Cd) do not match %d Reynolds rows",
			p.Name, len(p.Cl), len(p.Cd), len(p.Re))
	}
	for i := range p.Cl {
		if len(p.Cl[i]) != len(p.Alpha) || len(p.Cd[i]) != len(p.Alpha) {
			return fmt.Errorf("airfoil %q: row %d has %d Cl / %d Cd columns, want %d",
				p.Name, i, len(p.Cl[i]), len(p.Cd[i]), len(p.Alpha))
		}
	}
	return nil
}

// Evaluate returns the lift and drag coefficients at the given Reynolds
// number and angle of attack by bilinear interpolation on the table.
func (p *Polar) Evaluate(re, alpha float64) (cl, cd float64) {
	i, u := bracket(p.Re, re)
	j, v := bracket(p.Alpha, alpha)

	cl = bilerp(p.Cl, i, j, u, v)
	cd = bilerp(p.Cd, i, j, u, v)
	return cl, cd
}

// bracket locates x in the sorted grid and returns the lower cell index
// plus the interpolation fraction in [0,1]. Out-of-range queries clamp to
// the first or last cell edge.
func bracket(grid []float64, x float64) (int, float64) {
	n := len(grid)
	if x <= grid[0] {
		return 0, 0
	}
	if x >= grid[n-1] {
		return n - 2, 1
	}
	i := sort.SearchFloat64s(grid, x) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i, (x - grid[i]) / (grid[i+1] - grid[i])
}

func bilerp(tab [][]float64, i, j int, u, v float64) float64 {
	lo := tab[i][j]*(1-v) + tab[i][j+1]*v
	hi := tab[i+1][j]*(1-v) + tab[i+1][j+1]*v
	return lo*(1-u) + hi*u
}
