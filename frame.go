package denoise

// frame is one element of the spectral history queue: the power spectrum,
// the transform coefficients kept for resynthesis, and the per-band gain
// being shaped while the frame travels through the queue.
//
// DC and Nyquist are real-only and share the boundary slot of the
// coefficient pair: re[0] holds the DC bin and im[0] holds the Nyquist
// bin, so re and im have one entry fewer than power and gain.
type frame struct {
	power []float64 // spectrumSize entries of |X[k]|^2
	gain  []float64 // spectrumSize entries
	re    []float64 // spectrumSize-1 entries; re[0] = DC
	im    []float64 // spectrumSize-1 entries; im[0] = Nyquist
}

// history is a fixed-capacity ring of frames. Index 0 is the newest
// frame, depth-1 the oldest. Rotating recycles the oldest frame's storage
// as the next newest, so steady-state processing allocates nothing.
type history struct {
	frames []frame
	head   int
}

func newHistory(depth, spectrumSize int) *history {
	h := &history{frames: make([]frame, depth)}
	for i := range h.frames {
		h.frames[i] = frame{
			power: make([]float64, spectrumSize),
			gain:  make([]float64, spectrumSize),
			re:    make([]float64, spectrumSize-1),
			im:    make([]float64, spectrumSize-1),
		}
	}
	return h
}

func (h *history) depth() int { return len(h.frames) }

// at returns the i-th frame counted from the newest.
func (h *history) at(i int) *frame {
	return &h.frames[(h.head+i)%len(h.frames)]
}

// rotate advances the ring: the finalized oldest frame becomes the slot
// to be filled for the next analysis window.
func (h *history) rotate() {
	h.head--
	if h.head < 0 {
		h.head += len(h.frames)
	}
}

// reset zeroes every frame and floors all gains for a new track.
func (h *history) reset(gainFloor float64) {
	for i := range h.frames {
		f := &h.frames[i]
		fill(f.power, 0)
		fill(f.re, 0)
		fill(f.im, 0)
		fill(f.gain, gainFloor)
	}
	h.head = 0
}

func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}
