package denoise

// classify reports whether the given band of the center window looks like
// noise, judged over the band's values in a few neighboring windows.
//
// The modern methods suppose an exponential distribution of power values
// in the noise. NewSensitivity is meant to be the log of the probability
// that noise strays above the threshold; the quantile function of an
// exponential distribution is log(1-F) times the mean, so the threshold
// is just the mean scaled by the sensitivity.
func (w *worker) classify(st *Statistics, band int) bool {
	switch w.method {
	case LegacyMinMax:
		min := w.queue.at(0).power[band]
		for i := 1; i < w.nWindowsToExamine; i++ {
			if p := w.queue.at(i).power[band]; p < min {
				min = p
			}
		}
		return min <= w.sensitivityFactor*st.NoiseThreshold[band]

	case Median:
		// Taking a median over the window and all windows that partly
		// overlap it avoids being fooled by up and down excursions into
		// either classifying noise as signal (leaving a musical chime)
		// or the opposite (dropping out part of the signal).
		if w.nWindowsToExamine == 3 {
			// No different from second greatest.
			break
		}
		var greatest, second, third float64
		for i := 0; i < w.nWindowsToExamine; i++ {
			p := w.queue.at(i).power[band]
			switch {
			case p >= greatest:
				third, second, greatest = second, greatest, p
			case p >= second:
				third, second = second, p
			case p >= third:
				third = p
			}
		}
		return third <= w.newSensitivity*st.Means[band]
	}

	// Second greatest just throws out the one high outlier. Less prone
	// to dropouts, more prone to chimes.
	var greatest, second float64
	for i := 0; i < w.nWindowsToExamine; i++ {
		p := w.queue.at(i).power[band]
		switch {
		case p >= greatest:
			second, greatest = greatest, p
		case p >= second:
			second = p
		}
	}
	return second <= w.newSensitivity*st.Means[band]
}

// classifyCenter decides per band whether the center frame holds noise and
// sets that frame's gains accordingly. Bands outside the affected range
// keep their pass-through value.
func (w *worker) classifyCenter(st *Statistics) {
	center := w.queue.at(w.center)

	if w.mode == IsolateNoise {
		// Everything above or below the affected range is non-noise,
		// which isolation discards.
		fill(center.gain[:w.binLow], 0)
		fill(center.gain[w.binHigh:], 0)
		for band := w.binLow; band < w.binHigh; band++ {
			if w.classify(st, band) {
				center.gain[band] = 1
			} else {
				center.gain[band] = 0
			}
		}
		return
	}

	fill(center.gain[:w.binLow], 1)
	fill(center.gain[w.binHigh:], 1)
	for band := w.binLow; band < w.binHigh; band++ {
		if !w.classify(st, band) {
			center.gain[band] = 1
		}
	}
}
