package denoise

import (
	"fmt"
	"math"
	"strings"
)

const (
	minWindowSize     = 8
	maxWindowSize     = 16384
	minStepsPerWindow = 2
	maxStepsPerWindow = 64

	// Neighborhood duration examined by the legacy discrimination, in
	// seconds. Used only by the old statistics and the old method.
	minSignalTime = 0.05
)

// Mode selects what the reduction pass writes to the output.
type Mode int

const (
	// ReduceNoise keeps the signal and attenuates classified noise.
	ReduceNoise Mode = iota
	// IsolateNoise keeps only the classified noise and silences the rest.
	IsolateNoise
	// LeaveResidue outputs the removed content with flipped phase, so
	// mixing it back onto the reduced signal restores the original.
	LeaveResidue
)

// String returns the mode name used by parsing and display.
func (m Mode) String() string {
	switch m {
	case ReduceNoise:
		return "reduce"
	case IsolateNoise:
		return "isolate"
	case LeaveResidue:
		return "residue"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a [Mode].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "reduce":
		return ReduceNoise, nil
	case "isolate":
		return IsolateNoise, nil
	case "residue":
		return LeaveResidue, nil
	default:
		return 0, fmt.Errorf("unknown noise reduction mode: %q", s)
	}
}

// Method selects the per-band noise/signal discrimination rule.
type Method int

const (
	// Median keeps the median power of five overlapping windows. Only
	// defined for two or four steps per window.
	Median Method = iota
	// SecondGreatest discards the single highest power value per band
	// and compares the runner-up against the profiled mean.
	SecondGreatest
	// LegacyMinMax compares the neighborhood minimum against the
	// profiled max-of-min threshold (pre-rewrite behavior).
	LegacyMinMax
)

// String returns the method name used by parsing and display.
func (m Method) String() string {
	switch m {
	case Median:
		return "median"
	case SecondGreatest:
		return "second-greatest"
	case LegacyMinMax:
		return "legacy"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a method name to a [Method].
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "median":
		return Median, nil
	case "second-greatest":
		return SecondGreatest, nil
	case "legacy":
		return LegacyMinMax, nil
	default:
		return 0, fmt.Errorf("unknown discrimination method: %q", s)
	}
}

// Settings configures one profiling or reduction run. The zero value is
// not usable; start from [DefaultSettings].
type Settings struct {
	// WindowSize is the analysis window length in samples. It must be a
	// power of two in [8, 16384].
	WindowSize int

	// StepsPerWindow determines the hop size, WindowSize/StepsPerWindow.
	// It must be at least the window pairing's minimum and at most the
	// window size.
	StepsPerWindow int

	// Pairing selects the matched analysis/synthesis window functions.
	Pairing Pairing

	// Mode selects reduction, isolation, or residue output.
	Mode Mode

	// Method selects the noise/signal discrimination rule.
	Method Method

	// Sensitivity adjusts the LegacyMinMax threshold, in dB, signed.
	Sensitivity float64

	// NewSensitivity scales the mean-power threshold of the modern
	// methods. It is the base-10 log of the acceptable probability that
	// noise strays above the threshold.
	NewSensitivity float64

	// FreqSmoothingHz is the half-width of the spectral gain smoothing.
	FreqSmoothingHz float64

	// NoiseGain is the attenuation depth in dB, positive. Zero disables
	// attenuation entirely.
	NoiseGain float64

	// AttackTime and ReleaseTime shape the temporal gain ramps, in
	// seconds.
	AttackTime  float64
	ReleaseTime float64

	// FreqLow and FreqHigh bound the affected frequency band in Hz.
	// A negative value leaves the corresponding side unbounded.
	FreqLow  float64
	FreqHigh float64
}

// DefaultSettings returns the stock configuration: 2048-sample Hann/Hann
// windows at four steps per window, second-greatest discrimination, 24 dB
// reduction with 150 ms ramps and 150 Hz frequency smoothing.
func DefaultSettings() Settings {
	return Settings{
		WindowSize:      2048,
		StepsPerWindow:  4,
		Pairing:         HannHann,
		Mode:            ReduceNoise,
		Method:          SecondGreatest,
		Sensitivity:     0,
		NewSensitivity:  6,
		FreqSmoothingHz: 150,
		NoiseGain:       24,
		AttackTime:      0.15,
		ReleaseTime:     0.15,
		FreqLow:         -1,
		FreqHigh:        -1,
	}
}

// StepSize returns the hop size in samples.
func (s Settings) StepSize() int { return s.WindowSize / s.StepsPerWindow }

// SpectrumSize returns the number of frequency bands per analysis window.
func (s Settings) SpectrumSize() int { return 1 + s.WindowSize/2 }

// Validate checks the configuration. It must pass before any audio is
// processed; all violations are reported as configuration errors and no
// processing occurs.
func (s Settings) Validate() error {
	if s.WindowSize < minWindowSize || s.WindowSize > maxWindowSize || !isPowerOfTwo(s.WindowSize) {
		return fmt.Errorf("noise reduction window size must be a power of two in [%d, %d]: %d",
			minWindowSize, maxWindowSize, s.WindowSize)
	}

	if s.Pairing < RectangularHann || s.Pairing > BlackmanHann {
		return fmt.Errorf("noise reduction window pairing invalid: %d", int(s.Pairing))
	}

	if s.StepsPerWindow < minStepsPerWindow || s.StepsPerWindow > maxStepsPerWindow {
		return fmt.Errorf("noise reduction steps per window must be in [%d, %d]: %d",
			minStepsPerWindow, maxStepsPerWindow, s.StepsPerWindow)
	}

	if min := pairings[s.Pairing].minSteps; s.StepsPerWindow < min {
		return fmt.Errorf("noise reduction steps per window are too few for the %s pairing: %d < %d",
			s.Pairing, s.StepsPerWindow, min)
	}

	if s.StepsPerWindow > s.WindowSize {
		return fmt.Errorf("noise reduction steps per window cannot exceed the window size: %d > %d",
			s.StepsPerWindow, s.WindowSize)
	}

	switch s.Mode {
	case ReduceNoise, IsolateNoise, LeaveResidue:
	default:
		return fmt.Errorf("noise reduction mode invalid: %d", int(s.Mode))
	}

	switch s.Method {
	case Median, SecondGreatest, LegacyMinMax:
	default:
		return fmt.Errorf("noise reduction method invalid: %d", int(s.Method))
	}

	// The median selection rule is only defined for neighborhoods of
	// three or five windows.
	if s.Method == Median && s.StepsPerWindow != 2 && s.StepsPerWindow != 4 {
		return fmt.Errorf("median method is only implemented for two or four steps per window: %d",
			s.StepsPerWindow)
	}

	if s.NoiseGain < 0 || !isFinite(s.NoiseGain) {
		return fmt.Errorf("noise reduction depth must be >= 0 dB and finite: %f", s.NoiseGain)
	}

	if !isFinite(s.Sensitivity) {
		return fmt.Errorf("noise reduction sensitivity must be finite: %f", s.Sensitivity)
	}

	if s.NewSensitivity <= 0 || !isFinite(s.NewSensitivity) {
		return fmt.Errorf("noise reduction new sensitivity must be > 0 and finite: %f", s.NewSensitivity)
	}

	if s.FreqSmoothingHz < 0 || !isFinite(s.FreqSmoothingHz) {
		return fmt.Errorf("noise reduction frequency smoothing must be >= 0 Hz and finite: %f", s.FreqSmoothingHz)
	}

	if s.AttackTime < 0 || !isFinite(s.AttackTime) {
		return fmt.Errorf("noise reduction attack time must be >= 0 s and finite: %f", s.AttackTime)
	}

	if s.ReleaseTime < 0 || !isFinite(s.ReleaseTime) {
		return fmt.Errorf("noise reduction release time must be >= 0 s and finite: %f", s.ReleaseTime)
	}

	if math.IsNaN(s.FreqLow) || math.IsNaN(s.FreqHigh) {
		return fmt.Errorf("noise reduction frequency bounds must not be NaN")
	}

	if s.FreqLow >= 0 && s.FreqHigh >= 0 && s.FreqHigh < s.FreqLow {
		return fmt.Errorf("noise reduction frequency bounds inverted: [%f, %f]", s.FreqLow, s.FreqHigh)
	}

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
