package denoise

import "fmt"

// resynthesize turns the oldest queue frame back into samples: gains are
// applied to the stored coefficients, the spectrum is mirrored into a
// full Hermitian buffer, inverse transformed, and overlap-added. One hop
// of finished samples is appended to the sink once the zero-padded
// priming windows have drained.
func (w *worker) resynthesize(sink Sink) error {
	rec := w.queue.at(w.historyLen - 1)
	last := w.spectrumSize - 1

	if w.mode != IsolateNoise {
		// Gains are not less than the attenuation floor here, so the
		// log-domain smoothing is safe.
		w.applyFreqSmoothing(rec.gain)
	}

	// Residue mode flips each gain about unity, keeping what reduction
	// would have removed.
	residue := w.mode == LeaveResidue

	for k := 1; k < last; k++ {
		g := rec.gain[k]
		if residue {
			g -= 1
		}
		re := rec.re[k] * g
		im := rec.im[k] * g
		w.fftBuf[k] = complex(re, im)
		w.fftBuf[w.windowSize-k] = complex(re, -im)
	}

	// DC and Nyquist are real-only; Nyquist rides in im[0].
	gainDC := rec.gain[0]
	gainNyquist := rec.gain[last]
	if residue {
		gainDC -= 1
		gainNyquist -= 1
	}
	w.fftBuf[0] = complex(rec.re[0]*gainDC, 0)
	w.fftBuf[w.windowSize/2] = complex(rec.im[0]*gainNyquist, 0)

	if err := w.plan.Inverse(w.timeBuf, w.fftBuf); err != nil {
		return fmt.Errorf("noise reduction: inverse FFT failed: %w", err)
	}

	if w.outWindow != nil {
		for i := range w.outOverlapBuffer {
			w.outOverlapBuffer[i] += real(w.timeBuf[i]) * w.outWindow[i]
		}
	} else {
		for i := range w.outOverlapBuffer {
			w.outOverlapBuffer[i] += real(w.timeBuf[i])
		}
	}

	if w.outStepCount >= 0 {
		// The first hop of the overlap buffer is complete.
		if err := sink.Append(w.outOverlapBuffer[:w.stepSize]); err != nil {
			return err
		}
	}

	// Shift the remainder over.
	copy(w.outOverlapBuffer, w.outOverlapBuffer[w.stepSize:])
	fill(w.outOverlapBuffer[w.windowSize-w.stepSize:], 0)

	return nil
}
