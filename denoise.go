package denoise

import "fmt"

const defaultBlockSize = 8192

// Source supplies mono samples for profiling or reduction. Reads are
// sequential in practice but addressed by position, so slice-backed and
// file-backed implementations look the same.
type Source interface {
	// SampleRate returns the sample rate in Hz.
	SampleRate() float64

	// Len returns the total number of samples.
	Len() int64

	// BlockSize suggests a read length at the given position. Zero or
	// negative means no preference.
	BlockSize(pos int64) int

	// Read fills dst with samples starting at pos and returns how many
	// were written. It is never called with pos past Len.
	Read(pos int64, dst []float64) (int, error)
}

// Sink receives reduced samples. Append is called with slices that are
// only valid until it returns; implementations must copy. Truncate is
// called once at the end of a successful track to discard the padding
// that windowed processing emits past the input length.
type Sink interface {
	Append(samples []float64) error
	Truncate(n int64) error
}

// Track pairs an input with the output it reduces into.
type Track struct {
	Source Source
	Sink   Sink
}

// ProgressFunc is called as each track advances, with the track index and
// a completed fraction in [0, 1]. A non-nil return aborts the run and is
// propagated unchanged; ErrCancelled is the usual choice.
type ProgressFunc func(track int, fraction float64) error

// ProfileTracks measures the noise statistics of the given sources. All
// non-empty sources must share one sample rate. The returned statistics
// accumulate across tracks, weighted by window count, and feed
// ReduceTracks. ErrEmptyProfile is returned when the sources are too
// short to yield even one analysis window.
func ProfileTracks(s Settings, sources []Source, progress ProgressFunc) (*Statistics, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rate := 0.0
	for _, src := range sources {
		if src.Len() == 0 {
			continue
		}
		if rate == 0 {
			rate = src.SampleRate()
		} else if src.SampleRate() != rate {
			return nil, fmt.Errorf("%w: %g Hz vs %g Hz", ErrSampleRateMismatch,
				src.SampleRate(), rate)
		}
	}
	if rate == 0 {
		return nil, ErrEmptyProfile
	}

	w, err := newWorker(s, rate, true)
	if err != nil {
		return nil, err
	}

	st := newStatistics(w.spectrumSize, rate, s.Pairing)
	for i, src := range sources {
		if src.Len() == 0 {
			continue
		}
		if err := w.processTrack(st, src, nil, i, progress); err != nil {
			return nil, err
		}
	}

	if st.TotalWindows == 0 {
		return nil, ErrEmptyProfile
	}
	return st, nil
}

// ReduceTracks applies noise reduction to each track using a previously
// gathered profile. Empty tracks are skipped and their sinks left
// untouched. The profile must have been gathered at the tracks' sample
// rate and window size; a differing window pairing is tolerated, and
// Compatible reports it for callers that want to warn.
func ReduceTracks(s Settings, st *Statistics, tracks []Track, progress ProgressFunc) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if st == nil || st.TotalWindows == 0 {
		return ErrEmptyProfile
	}
	if _, err := st.Compatible(s); err != nil {
		return err
	}

	w, err := newWorker(s, st.Rate, false)
	if err != nil {
		return err
	}

	for i, t := range tracks {
		if t.Source.Len() == 0 {
			continue
		}
		if t.Source.SampleRate() != st.Rate {
			return fmt.Errorf("%w: track %d at %g Hz, profile at %g Hz",
				ErrSampleRateMismatch, i, t.Source.SampleRate(), st.Rate)
		}
		if err := w.processTrack(st, t.Source, t.Sink, i, progress); err != nil {
			return err
		}
	}
	return nil
}

// processTrack streams one source through the worker in source-preferred
// blocks. For reduction it finishes by flushing the queue and truncating
// the sink back to the input length.
func (w *worker) processTrack(st *Statistics, src Source, sink Sink, track int, progress ProgressFunc) error {
	w.startNewTrack()

	length := src.Len()
	buf := make([]float64, 0, defaultBlockSize)

	var pos int64
	for pos < length {
		block := src.BlockSize(pos)
		if block <= 0 {
			block = defaultBlockSize
		}
		if remaining := length - pos; int64(block) > remaining {
			block = int(remaining)
		}
		if cap(buf) < block {
			buf = make([]float64, block)
		}
		buf = buf[:block]

		n, err := src.Read(pos, buf)
		if err != nil {
			return fmt.Errorf("noise reduction: reading track %d at %d: %w", track, pos, err)
		}
		if n == 0 {
			return fmt.Errorf("noise reduction: track %d returned no samples at %d", track, pos)
		}
		pos += int64(n)

		w.inSampleCount += int64(n)
		if err := w.processSamples(st, sink, buf[:n]); err != nil {
			return err
		}

		if progress != nil {
			if err := progress(track, float64(pos)/float64(length)); err != nil {
				return err
			}
		}
	}

	if w.doProfile {
		w.finishTrackStatistics(st)
		return nil
	}

	if err := w.finishTrack(st, sink); err != nil {
		return err
	}
	return sink.Truncate(length)
}

// SliceSource adapts an in-memory sample slice to the Source interface.
type SliceSource struct {
	Rate    float64
	Samples []float64
}

func (s *SliceSource) SampleRate() float64 { return s.Rate }
func (s *SliceSource) Len() int64          { return int64(len(s.Samples)) }
func (s *SliceSource) BlockSize(int64) int { return defaultBlockSize }

func (s *SliceSource) Read(pos int64, dst []float64) (int, error) {
	return copy(dst, s.Samples[pos:]), nil
}

// SliceSink collects reduced samples into memory.
type SliceSink struct {
	Samples []float64
}

func (s *SliceSink) Append(samples []float64) error {
	s.Samples = append(s.Samples, samples...)
	return nil
}

func (s *SliceSink) Truncate(n int64) error {
	if int64(len(s.Samples)) > n {
		s.Samples = s.Samples[:n]
	}
	return nil
}

// ProfileBuffer profiles a single in-memory buffer.
func ProfileBuffer(s Settings, rate float64, samples []float64) (*Statistics, error) {
	src := &SliceSource{Rate: rate, Samples: samples}
	return ProfileTracks(s, []Source{src}, nil)
}

// ReduceBuffer reduces a single in-memory buffer, returning a new slice
// of the same length.
func ReduceBuffer(s Settings, st *Statistics, rate float64, samples []float64) ([]float64, error) {
	track := Track{
		Source: &SliceSource{Rate: rate, Samples: samples},
		Sink:   &SliceSink{Samples: make([]float64, 0, len(samples))},
	}
	if err := ReduceTracks(s, st, []Track{track}, nil); err != nil {
		return nil, err
	}
	return track.Sink.(*SliceSink).Samples, nil
}
