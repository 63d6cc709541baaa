package main

import (
	"encoding/json"
	"fmt"
	"os"

	denoise "github.com/cwbudde/algo-denoise"
)

// profileFile is the on-disk JSON form of a noise profile.
type profileFile struct {
	Rate           float64   `json:"rate"`
	WindowSize     int       `json:"windowSize"`
	Pairing        string    `json:"pairing"`
	TotalWindows   int       `json:"totalWindows"`
	Means          []float64 `json:"means"`
	NoiseThreshold []float64 `json:"noiseThreshold"`
}

func saveProfile(path string, st *denoise.Statistics) error {
	data, err := json.MarshalIndent(profileFile{
		Rate:           st.Rate,
		WindowSize:     st.WindowSize,
		Pairing:        st.Pairing.String(),
		TotalWindows:   st.TotalWindows,
		Means:          st.Means,
		NoiseThreshold: st.NoiseThreshold,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}

func loadProfile(path string) (*denoise.Statistics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var pf profileFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	pairing, err := denoise.ParsePairing(pf.Pairing)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	return &denoise.Statistics{
		Rate:           pf.Rate,
		WindowSize:     pf.WindowSize,
		Pairing:        pairing,
		TotalWindows:   pf.TotalWindows,
		Means:          pf.Means,
		NoiseThreshold: pf.NoiseThreshold,
	}, nil
}
