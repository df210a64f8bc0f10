// Package config loads solver settings from an INI file, so analysis
// runs can be tuned without recompiling.
package config

import (
	"fmt"
	"math"

	"gopkg.in/ini.v1"

	"gobemt/internal/rotor"
)

// LoadSettings reads the [solver] section of an INI file. Missing keys
// keep their default values, so a partial file only overrides what it
// names.
//
//	[solver]
//	tolerance        = 1e-6
//	max_iterations   = 10000
//	azimuth_stations = 24
//	stall_angle_deg  = 90
func LoadSettings(path string) (rotor.Settings, error) {
	s := rotor.DefaultSettings()

	cfg, err := ini.Load(path)
	if err != nil {
		return s, fmt.Errorf("load settings %s: %w", path, err)
	}

	sec := cfg.Section("solver")
	if key := sec.Key("tolerance"); key.String() != "" {
		s.Tolerance, err = key.Float64()
		if err != nil {
			return s, fmt.Errorf("solver.tolerance: %w", err)
		}
	}
	if key := sec.Key("max_iterations"); key.String() != "" {
		s.MaxIterations, err = key.Int()
		if err != nil {
			return s, fmt.Errorf("solver.max_iterations: %w", err)
		}
	}
	if key := sec.Key("azimuth_stations"); key.String() != "" {
		s.AzimuthStations, err = key.Int()
		if err != nil {
			return s, fmt.Errorf("solver.azimuth_stations: %w", err)
		}
	}
	if key := sec.Key("stall_angle_deg"); key.String() != "" {
		deg, err := key.Float64()
		if err != nil {
			return s, fmt.Errorf("solver.stall_angle_deg: %w", err)
		}
		s.StallAngle = deg * math.Pi / 180
	}
	return s, nil
}
