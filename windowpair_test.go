package denoise

import (
	"math"
	"testing"
)

func TestParsePairingRoundTrip(t *testing.T) {
	for _, p := range []Pairing{RectangularHann, HannRectangular, HannHann, BlackmanHann} {
		got, err := ParsePairing(p.String())
		if err != nil {
			t.Fatalf("ParsePairing(%q): %v", p.String(), err)
		}
		if got != p {
			t.Errorf("ParsePairing(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if _, err := ParsePairing("bogus"); err == nil {
		t.Error("ParsePairing(bogus): expected error")
	}
}

func TestPairingMinSteps(t *testing.T) {
	tests := []struct {
		pairing Pairing
		want    int
	}{
		{RectangularHann, 2},
		{HannRectangular, 2},
		{HannHann, 4},
		{BlackmanHann, 4},
	}
	for _, tt := range tests {
		if got := tt.pairing.MinSteps(); got != tt.want {
			t.Errorf("%v.MinSteps() = %d, want %d", tt.pairing, got, tt.want)
		}
	}
}

// The product of analysis and synthesis windows, overlapped at the hop
// size with the normalization factor applied, must sum to unity at every
// sample offset. This is what makes an all-unity-gain pass reproduce its
// input exactly.
func TestPairingOverlapUnity(t *testing.T) {
	const windowSize = 256

	for _, p := range []Pairing{RectangularHann, HannRectangular, HannHann, BlackmanHann} {
		for steps := p.MinSteps(); steps <= 16; steps *= 2 {
			in := analysisWindow(p, windowSize, steps)
			out := synthesisWindow(p, windowSize, steps)

			product := make([]float64, windowSize)
			for i := range product {
				product[i] = 1
				if in != nil {
					product[i] *= in[i]
				}
				if out != nil {
					product[i] *= out[i]
				}
			}

			step := windowSize / steps
			for offset := 0; offset < step; offset++ {
				sum := 0.0
				for k := 0; k < steps; k++ {
					sum += product[offset+k*step]
				}
				if math.Abs(sum-1) > 1e-12 {
					t.Errorf("%v steps=%d offset=%d: overlap sum = %v, want 1",
						p, steps, offset, sum)
				}
			}
		}
	}
}

// Exactly one of the two windows carries the overlap normalization.
func TestPairingWindowSides(t *testing.T) {
	const windowSize = 64

	if w := analysisWindow(RectangularHann, windowSize, 2); w != nil {
		t.Error("RectangularHann should have no analysis window")
	}
	if w := synthesisWindow(RectangularHann, windowSize, 2); w == nil {
		t.Error("RectangularHann should have a synthesis window")
	}

	if w := analysisWindow(HannRectangular, windowSize, 2); w == nil {
		t.Error("HannRectangular should have an analysis window")
	}
	if w := synthesisWindow(HannRectangular, windowSize, 2); w != nil {
		t.Error("HannRectangular should have no synthesis window")
	}

	// The Hann/Hann analysis side is unscaled; all scaling rides on the
	// synthesis window.
	in := analysisWindow(HannHann, windowSize, 4)
	if got := in[windowSize/2]; math.Abs(got-1) > 1e-12 {
		t.Errorf("HannHann analysis peak = %v, want 1", got)
	}
}
