package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gobemt/internal/rotor"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, `
[solver]
tolerance        = 1e-8
max_iterations   = 500
azimuth_stations = 36
stall_angle_deg  = 80
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tolerance != 1e-8 {
		t.Errorf("tolerance = %v", s.Tolerance)
	}
	if s.MaxIterations != 500 {
		t.Errorf("max iterations = %d", s.MaxIterations)
	}
	if s.AzimuthStations != 36 {
		t.Errorf("azimuth stations = %d", s.AzimuthStations)
	}
	if math.Abs(s.StallAngle-80*math.Pi/180) > 1e-12 {
		t.Errorf("stall angle = %v", s.StallAngle)
	}
}

func TestLoadSettingsPartial(t *testing.T) {
	path := writeFile(t, "[solver]\nmax_iterations = 100\n")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	def := rotor.DefaultSettings()
	if s.MaxIterations != 100 {
		t.Errorf("max iterations = %d", s.MaxIterations)
	}
	if s.Tolerance != def.Tolerance || s.AzimuthStations != def.AzimuthStations {
		t.Error("unnamed keys must keep their defaults")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoadSettingsBadValue(t *testing.T) {
	path := writeFile(t, "[solver]\ntolerance = tight\n")
	if _, err := LoadSettings(path); err == nil {
		t.Error("non-numeric tolerance accepted")
	}
}
