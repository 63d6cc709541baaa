package denoise

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Pairing identifies matched analysis/synthesis window functions applied
// before the forward transform and after the inverse transform.
type Pairing int

const (
	// RectangularHann analyzes unwindowed and synthesizes with Hann.
	// Requires at least 2 steps per window.
	RectangularHann Pairing = iota
	// HannRectangular analyzes with Hann and synthesizes unwindowed.
	// Requires at least 2 steps per window.
	HannRectangular
	// HannHann analyzes and synthesizes with Hann. Requires at least 4
	// steps per window. This is the default pairing.
	HannHann
	// BlackmanHann analyzes with Blackman and synthesizes with Hann.
	// Requires at least 4 steps per window.
	BlackmanHann
)

// String returns the pairing name used by parsing and display.
func (p Pairing) String() string {
	if p < RectangularHann || p > BlackmanHann {
		return fmt.Sprintf("Pairing(%d)", int(p))
	}
	return pairings[p].name
}

// ParsePairing converts a pairing name to a [Pairing].
func ParsePairing(s string) (Pairing, error) {
	for p := RectangularHann; p <= BlackmanHann; p++ {
		if s == pairings[p].name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown window pairing: %q", s)
}

// MinSteps returns the smallest steps-per-window the pairing supports.
func (p Pairing) MinSteps() int {
	if p < RectangularHann || p > BlackmanHann {
		return 0
	}
	return pairings[p].minSteps
}

// pairingInfo describes one matched analysis/synthesis window pair as
// periodic cosine-sum coefficients. constantTerm is the constant term of
// the product of the two windows: the product of the windows' constant
// terms plus one half the product of their first cosine coefficients.
// Summed across overlapping steps it determines the overlap-add
// normalization.
type pairingInfo struct {
	name         string
	minSteps     int
	inCoeffs     [3]float64
	outCoeffs    [3]float64
	constantTerm float64
}

var pairings = [...]pairingInfo{
	RectangularHann: {"none-hann", 2, [3]float64{1, 0, 0}, [3]float64{0.5, -0.5, 0}, 0.5},
	HannRectangular: {"hann-none", 2, [3]float64{0.5, -0.5, 0}, [3]float64{1, 0, 0}, 0.5},
	HannHann:        {"hann-hann", 4, [3]float64{0.5, -0.5, 0}, [3]float64{0.5, -0.5, 0}, 0.375},
	BlackmanHann:    {"blackman-hann", 4, [3]float64{0.42, -0.5, 0.08}, [3]float64{0.5, -0.5, 0}, 0.335},
}

// overlapMultiplier returns the factor that one of the two windows must
// carry to normalize overlap-add. It shrinks as steps get smaller and
// overlaps larger.
func overlapMultiplier(p Pairing, steps int) float64 {
	return 1 / (pairings[p].constantTerm * float64(steps))
}

// analysisWindow returns the windowing coefficients applied before the
// forward transform, or nil when the analysis side is rectangular. For
// HannRectangular the overlap correction rides on the analysis window.
func analysisWindow(p Pairing, windowSize, steps int) []float64 {
	if p == RectangularHann {
		return nil
	}
	scale := 1.0
	if p == HannRectangular {
		scale = overlapMultiplier(p, steps)
	}
	return cosineWindow(windowSize, pairings[p].inCoeffs, scale)
}

// synthesisWindow returns the windowing coefficients applied after the
// inverse transform, scaled by the overlap correction, or nil when the
// synthesis side is rectangular.
func synthesisWindow(p Pairing, windowSize, steps int) []float64 {
	if p == HannRectangular {
		return nil
	}
	return cosineWindow(windowSize, pairings[p].outCoeffs, overlapMultiplier(p, steps))
}

// cosineWindow fills a periodic cosine-sum window
// c0 + c1*cos(2*pi*i/n) + c2*cos(4*pi*i/n), scaled by m.
func cosineWindow(n int, coeffs [3]float64, m float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / float64(n)
		out[i] = coeffs[0] + coeffs[1]*math.Cos(phase) + coeffs[2]*math.Cos(2*phase)
	}
	if m != 1 {
		vecmath.ScaleBlockInPlace(out, m)
	}
	return out
}
