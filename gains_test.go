package denoise

import (
	"math"
	"testing"
)

func TestSpreadGainsRamps(t *testing.T) {
	w := newTestWorker(t, nil)
	w.noiseAttenFactor = 0.1
	w.oneBlockAttack = 0.5
	w.oneBlockRelease = 0.5
	w.queue.reset(w.noiseAttenFactor)

	const band = 1
	w.queue.at(w.center).gain[band] = 1

	w.spreadGains()

	// Attack: exponential decay toward older input (higher indices),
	// clipped at the attenuation floor.
	wantBack := []float64{0.5, 0.25, 0.125, 0.1, 0.1}
	for k, want := range wantBack {
		got := w.queue.at(w.center + 1 + k).gain[band]
		if math.Abs(got-want) > 1e-15 {
			t.Errorf("attack step %d: gain = %v, want %v", k+1, got, want)
		}
	}

	// Release: only one frame ahead is raised per step.
	if got := w.queue.at(w.center - 1).gain[band]; math.Abs(got-0.5) > 1e-15 {
		t.Errorf("release gain = %v, want 0.5", got)
	}

	// Untouched bands stay at the floor.
	if got := w.queue.at(w.center + 1).gain[band+1]; got != 0.1 {
		t.Errorf("untouched band gain = %v, want 0.1", got)
	}
}

// The attack ramp stops as soon as it meets a gain already at or above
// the decay curve, leaving older frames alone.
func TestSpreadGainsAttackIntersection(t *testing.T) {
	w := newTestWorker(t, nil)
	w.noiseAttenFactor = 0.1
	w.oneBlockAttack = 0.5
	w.oneBlockRelease = 0.5
	w.queue.reset(w.noiseAttenFactor)

	const band = 2
	w.queue.at(w.center).gain[band] = 1
	w.queue.at(w.center + 2).gain[band] = 0.9 // decay curve of an earlier window

	w.spreadGains()

	if got := w.queue.at(w.center + 1).gain[band]; math.Abs(got-0.5) > 1e-15 {
		t.Errorf("first attack step: gain = %v, want 0.5", got)
	}
	if got := w.queue.at(w.center + 2).gain[band]; got != 0.9 {
		t.Errorf("intersecting gain lowered: %v, want 0.9", got)
	}
	if got := w.queue.at(w.center + 3).gain[band]; got != 0.1 {
		t.Errorf("gain past intersection raised: %v, want 0.1", got)
	}
}

func TestApplyFreqSmoothingGeometric(t *testing.T) {
	w := newTestWorker(t, nil)
	w.freqSmoothingBins = 1

	gains := []float64{0.1, 0.4, 0.9, 0.2, 0.6}
	want := make([]float64, len(gains))
	for i := range gains {
		j0 := i - 1
		if j0 < 0 {
			j0 = 0
		}
		j1 := i + 1
		if j1 > len(gains)-1 {
			j1 = len(gains) - 1
		}
		sum := 0.0
		for j := j0; j <= j1; j++ {
			sum += math.Log(gains[j])
		}
		want[i] = math.Exp(sum / float64(j1-j0+1))
	}

	got := append([]float64(nil), gains...)
	w.applyFreqSmoothing(got)

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("bin %d: smoothed gain = %v, want geometric mean %v", i, got[i], want[i])
		}
	}
}

func TestApplyFreqSmoothingDisabled(t *testing.T) {
	w := newTestWorker(t, nil)
	w.freqSmoothingBins = 0

	gains := []float64{0.1, 0.4, 0.9, 0.2, 0.6}
	got := append([]float64(nil), gains...)
	w.applyFreqSmoothing(got)

	for i := range got {
		if got[i] != gains[i] {
			t.Errorf("bin %d: gain changed to %v with smoothing disabled", i, got[i])
		}
	}
}
