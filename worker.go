package denoise

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// worker holds all transient state of one profiling or reduction run. It
// is built once per run, owns the spectral history queue, and is reset
// between tracks. It is strictly single-threaded: the sliding-window
// algorithm is stateful and ordered, so no internal parallelism exists.
type worker struct {
	doProfile  bool
	sampleRate float64

	windowSize     int
	spectrumSize   int
	stepsPerWindow int
	stepSize       int

	plan    *algofft.Plan[complex128]
	fftBuf  []complex128
	timeBuf []complex128

	inWaveBuffer     []float64
	windowedBuffer   []float64
	outOverlapBuffer []float64

	// nil means rectangular on that side.
	inWindow  []float64
	outWindow []float64

	freqSmoothingScratch []float64
	freqSmoothingBins    int

	// Affected band, [binLow, binHigh). Bins outside keep mode defaults.
	binLow  int
	binHigh int

	mode   Mode
	method Method

	newSensitivity    float64 // natural-log scale
	sensitivityFactor float64
	noiseAttenFactor  float64
	oneBlockAttack    float64
	oneBlockRelease   float64

	nWindowsToExamine int
	center            int
	historyLen        int
	queue             *history

	inSampleCount int64
	outStepCount  int64
	inWavePos     int
}

func newWorker(s Settings, sampleRate float64, doProfile bool) (*worker, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if sampleRate <= 0 || !isFinite(sampleRate) {
		return nil, fmt.Errorf("noise reduction sample rate must be > 0: %f", sampleRate)
	}

	w := &worker{
		doProfile:      doProfile,
		sampleRate:     sampleRate,
		windowSize:     s.WindowSize,
		spectrumSize:   s.SpectrumSize(),
		stepsPerWindow: s.StepsPerWindow,
		stepSize:       s.StepSize(),
		mode:           s.Mode,
		method:         s.Method,

		// The sensitivity setting is a base-10 log; the exponential
		// noise model wants a natural log.
		newSensitivity: s.NewSensitivity * math.Ln10,
	}

	plan, err := algofft.NewPlan64(w.windowSize)
	if err != nil {
		return nil, fmt.Errorf("noise reduction: failed to create FFT plan: %w", err)
	}
	w.plan = plan

	w.fftBuf = make([]complex128, w.windowSize)
	w.timeBuf = make([]complex128, w.windowSize)
	w.inWaveBuffer = make([]float64, w.windowSize)
	w.windowedBuffer = make([]float64, w.windowSize)
	w.outOverlapBuffer = make([]float64, w.windowSize)
	w.freqSmoothingScratch = make([]float64, w.spectrumSize)

	w.freqSmoothingBins = int(s.FreqSmoothingHz * float64(w.windowSize) / sampleRate)

	w.binLow = 0
	w.binHigh = w.spectrumSize
	binWidth := sampleRate / float64(w.windowSize)
	if s.FreqLow >= 0 {
		w.binLow = clampInt(int(math.Floor(s.FreqLow/binWidth)), 0, w.spectrumSize)
	}
	if s.FreqHigh >= 0 {
		w.binHigh = clampInt(int(math.Ceil(s.FreqHigh/binWidth)), w.binLow, w.spectrumSize)
	}

	noiseGain := -s.NoiseGain
	nAttackBlocks := 1 + int(s.AttackTime*sampleRate/float64(w.stepSize))
	nReleaseBlocks := 1 + int(s.ReleaseTime*sampleRate/float64(w.stepSize))

	// Applies to amplitudes, so divide by 20.
	w.noiseAttenFactor = math.Pow(10, noiseGain/20)
	// Per-step decay of gain factors, which also apply to amplitudes.
	w.oneBlockAttack = math.Pow(10, noiseGain/(20*float64(nAttackBlocks)))
	w.oneBlockRelease = math.Pow(10, noiseGain/(20*float64(nReleaseBlocks)))
	// Applies to power, so divide by 10.
	w.sensitivityFactor = math.Pow(10, s.Sensitivity/10)

	if w.method == LegacyMinMax {
		w.nWindowsToExamine = int(minSignalTime * sampleRate / float64(w.stepSize))
		if w.nWindowsToExamine < 2 {
			w.nWindowsToExamine = 2
		}
	} else {
		w.nWindowsToExamine = 1 + w.stepsPerWindow
	}

	w.center = w.nWindowsToExamine / 2
	// The release step reaches one frame before the center.
	if !doProfile && w.center < 1 {
		return nil, fmt.Errorf("noise reduction history center must be >= 1: neighborhood of %d windows",
			w.nWindowsToExamine)
	}

	if doProfile {
		// Only the legacy statistics need a full neighborhood to slide
		// their minimum across.
		if w.method == LegacyMinMax {
			w.historyLen = w.nWindowsToExamine
		} else {
			w.historyLen = 1
		}
	} else {
		// Long enough for inspection of the middle and for the attack
		// ramp to look backward.
		w.historyLen = w.nWindowsToExamine
		if n := w.center + nAttackBlocks; n > w.historyLen {
			w.historyLen = n
		}
	}

	w.queue = newHistory(w.historyLen, w.spectrumSize)

	w.inWindow = analysisWindow(s.Pairing, w.windowSize, w.stepsPerWindow)
	if !doProfile {
		w.outWindow = synthesisWindow(s.Pairing, w.windowSize, w.stepsPerWindow)
	}

	return w, nil
}

// latencySteps returns how many analysis steps pass before the first real
// output step: the queue fill plus the windowing overlap.
func (w *worker) latencySteps() int {
	return (w.historyLen - 1) + (w.stepsPerWindow - 1)
}

// startNewTrack resets all transient state. The input buffer is primed so
// that the first analysis window holds one hop of real data preceded by
// zero padding.
func (w *worker) startNewTrack() {
	w.queue.reset(w.noiseAttenFactor)
	fill(w.outOverlapBuffer, 0)
	fill(w.inWaveBuffer, 0)

	w.inWavePos = w.windowSize - w.stepSize
	w.inSampleCount = 0

	// Counts up from negative while the queue fills and the padded
	// windows pass through.
	w.outStepCount = -int64(w.latencySteps())
}

// processSamples consumes input samples of any block size, emitting one
// analysis step per completed hop. The outStepCount/inSampleCount
// relation bounds how far output may run ahead of consumed input; it is
// what makes the track-finishing flush terminate.
func (w *worker) processSamples(st *Statistics, sink Sink, buf []float64) error {
	for len(buf) > 0 && w.outStepCount*int64(w.stepSize) < w.inSampleCount {
		avail := len(buf)
		if room := w.windowSize - w.inWavePos; avail > room {
			avail = room
		}
		copy(w.inWaveBuffer[w.inWavePos:], buf[:avail])
		buf = buf[avail:]
		w.inWavePos += avail

		if w.inWavePos < w.windowSize {
			continue
		}

		if err := w.fillFirstHistoryWindow(); err != nil {
			return err
		}

		if w.doProfile {
			w.gatherStatistics(st)
		} else if err := w.reduceStep(st, sink); err != nil {
			return err
		}

		w.outStepCount++
		w.queue.rotate()

		// Slide the analysis window by one hop.
		copy(w.inWaveBuffer, w.inWaveBuffer[w.stepSize:])
		w.inWavePos -= w.stepSize
	}

	return nil
}

// fillFirstHistoryWindow transforms the current analysis window into the
// newest queue frame: windowed forward FFT, coefficients and power per
// band, gains floored for later raising.
func (w *worker) fillFirstHistoryWindow() error {
	if w.inWindow != nil {
		vecmath.MulBlock(w.windowedBuffer, w.inWaveBuffer, w.inWindow)
	} else {
		copy(w.windowedBuffer, w.inWaveBuffer)
	}
	for i, v := range w.windowedBuffer {
		w.fftBuf[i] = complex(v, 0)
	}

	if err := w.plan.Forward(w.fftBuf, w.fftBuf); err != nil {
		return fmt.Errorf("noise reduction: forward FFT failed: %w", err)
	}

	rec := w.queue.at(0)
	last := w.spectrumSize - 1

	for k := 1; k < last; k++ {
		rec.re[k] = real(w.fftBuf[k])
		rec.im[k] = imag(w.fftBuf[k])
	}
	vecmath.Power(rec.power[1:last], rec.re[1:], rec.im[1:])

	// DC and Nyquist are real-only and share the boundary slot.
	dc := real(w.fftBuf[0])
	rec.re[0] = dc
	rec.power[0] = dc * dc

	nyquist := real(w.fftBuf[last])
	rec.im[0] = nyquist
	rec.power[last] = nyquist * nyquist

	if w.mode != IsolateNoise {
		// Default all gains to the attenuation floor until classification
		// decides to raise some of them.
		fill(rec.gain, w.noiseAttenFactor)
	}

	return nil
}

// reduceStep runs classification and gain shaping for the center frame,
// then resynthesizes the oldest frame once it carries meaningful data.
func (w *worker) reduceStep(st *Statistics, sink Sink) error {
	w.classifyCenter(st)

	if w.mode != IsolateNoise {
		w.spreadGains()
	}

	// Until the zero-padded priming windows have passed, the oldest
	// frame holds nothing worth synthesizing.
	if w.outStepCount >= -int64(w.stepsPerWindow-1) {
		return w.resynthesize(sink)
	}

	return nil
}

// finishTrack feeds synthetic silence through the queue until every real
// input sample has been emitted. At most one hop of padding comes out at
// the end; the caller trims it at the boundary.
func (w *worker) finishTrack(st *Statistics, sink Sink) error {
	empty := make([]float64, w.stepSize)
	for w.outStepCount*int64(w.stepSize) < w.inSampleCount {
		if err := w.processSamples(st, sink, empty); err != nil {
			return err
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
