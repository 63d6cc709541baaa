package denoise

import "math"

// spreadGains extends raised center gains along the time axis: an
// exponential decay in each direction away from the center, clipped below
// by the attenuation floor and never lowering a previously raised gain.
func (w *worker) spreadGains() {
	// The attack goes backward in time, which is toward higher queue
	// indices.
	for band := 0; band < w.spectrumSize; band++ {
		for i := w.center + 1; i < w.historyLen; i++ {
			minimum := w.queue.at(i-1).gain[band] * w.oneBlockAttack
			if minimum < w.noiseAttenFactor {
				minimum = w.noiseAttenFactor
			}
			g := &w.queue.at(i).gain[band]
			if *g < minimum {
				*g = minimum
			} else {
				// The attack curve intersects the decay curve of some
				// window processed earlier, which carried it the rest
				// of the way.
				break
			}
		}
	}

	// The release need only look one window ahead; that window is
	// visited again on the next step, carrying the decay further.
	next := w.queue.at(w.center - 1).gain
	this := w.queue.at(w.center).gain
	for band := range next {
		decayed := this[band] * w.oneBlockRelease
		if decayed < w.noiseAttenFactor {
			decayed = w.noiseAttenFactor
		}
		if next[band] < decayed {
			next[band] = decayed
		}
	}
}

// applyFreqSmoothing averages the gains geometrically over neighboring
// bands. Multiplying and taking an nth root would underflow quickly, so
// average the logs instead.
func (w *worker) applyFreqSmoothing(gains []float64) {
	if w.freqSmoothingBins == 0 {
		return
	}

	fill(w.freqSmoothingScratch, 0)

	for i := range gains {
		gains[i] = math.Log(gains[i])
	}

	for i := range gains {
		j0 := i - w.freqSmoothingBins
		if j0 < 0 {
			j0 = 0
		}
		j1 := i + w.freqSmoothingBins
		if j1 > w.spectrumSize-1 {
			j1 = w.spectrumSize - 1
		}
		for j := j0; j <= j1; j++ {
			w.freqSmoothingScratch[i] += gains[j]
		}
		w.freqSmoothingScratch[i] /= float64(j1 - j0 + 1)
	}

	for i := range gains {
		gains[i] = math.Exp(w.freqSmoothingScratch[i])
	}
}
