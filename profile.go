package denoise

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Statistics is a noise profile: per-band power statistics accumulated
// from one or more noise-only recordings. A profile is mutated while
// profiling and strictly read-only during reduction. The same value may
// accumulate several tracks in sequence; their contributions are
// recombined by window-count weighting.
type Statistics struct {
	// Rate is the sample rate of the profiled track(s) in Hz. Reduced
	// tracks must match it.
	Rate float64

	// WindowSize and Pairing record the analysis configuration that
	// produced the profile. A reduction run with a different window size
	// fails; a different pairing only warns.
	WindowSize int
	Pairing    Pairing

	// TotalWindows counts the analysis windows folded into Means.
	TotalWindows int

	// Means holds the per-band mean power.
	Means []float64

	// NoiseThreshold holds the per-band max-of-min threshold used only
	// by the LegacyMinMax method: the highest level sustained for a full
	// neighborhood at that band.
	NoiseThreshold []float64

	trackWindows int
	sums         []float64
}

func newStatistics(spectrumSize int, rate float64, pairing Pairing) *Statistics {
	return &Statistics{
		Rate:           rate,
		WindowSize:     (spectrumSize - 1) * 2,
		Pairing:        pairing,
		Means:          make([]float64, spectrumSize),
		NoiseThreshold: make([]float64, spectrumSize),
		sums:           make([]float64, spectrumSize),
	}
}

// Compatible reports whether the profile can drive a reduction run with
// the given settings. A window size mismatch is fatal and returned as
// err. A pairing mismatch is returned as a non-nil warn only; processing
// may proceed.
func (st *Statistics) Compatible(s Settings) (warn, err error) {
	if st.WindowSize != s.WindowSize {
		return nil, fmt.Errorf("%w: profile %d, settings %d",
			ErrWindowSizeMismatch, st.WindowSize, s.WindowSize)
	}

	if len(st.Means) != s.SpectrumSize() {
		return nil, fmt.Errorf("noise profile is malformed: %d bands, want %d",
			len(st.Means), s.SpectrumSize())
	}

	if s.Method == LegacyMinMax && len(st.NoiseThreshold) != s.SpectrumSize() {
		return nil, fmt.Errorf("noise profile lacks legacy thresholds: %d bands, want %d",
			len(st.NoiseThreshold), s.SpectrumSize())
	}

	if st.Pairing != s.Pairing {
		warn = fmt.Errorf("%w: profile %v, settings %v", ErrPairingMismatch, st.Pairing, s.Pairing)
	}

	return warn, nil
}

// gatherStatistics folds the newest frame's power spectrum into the
// running per-track statistics.
func (w *worker) gatherStatistics(st *Statistics) {
	st.trackWindows++

	vecmath.AddBlockInPlace(st.sums, w.queue.at(0).power)

	// Legacy threshold: the lowest level sustained across the whole
	// history at each band, maxed over time.
	for band := range st.NoiseThreshold {
		sustained := w.queue.at(0).power[band]
		for i := 1; i < w.historyLen; i++ {
			if p := w.queue.at(i).power[band]; p < sustained {
				sustained = p
			}
		}
		if sustained > st.NoiseThreshold[band] {
			st.NoiseThreshold[band] = sustained
		}
	}
}

// finishTrackStatistics recombines the finished track's power sums into
// the running means, weighting by window counts so several profiled
// tracks contribute proportionally, and resets the per-track state.
func (w *worker) finishTrackStatistics(st *Statistics) {
	windows := st.trackWindows
	prior := st.TotalWindows
	denom := windows + prior

	if windows > 0 {
		for band := range st.Means {
			st.Means[band] = (st.Means[band]*float64(prior) + st.sums[band]) / float64(denom)
			st.sums[band] = 0
		}
	}

	st.trackWindows = 0
	st.TotalWindows = denom
}
