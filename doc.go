// Package denoise implements two-pass spectral noise reduction.
//
// The first pass profiles a recording of background noise only: each
// windowed portion of the input is transformed to the frequency domain
// and per-band power statistics are accumulated into a [Statistics]
// value. The second pass processes arbitrary material against that
// profile: bands whose recent power stays within the profiled noise
// distribution are attenuated, bands that exceed it pass through
// unchanged. Time smoothing (attack/release ramps) keeps per-band gains
// from pumping, and geometric frequency smoothing keeps single bands
// from being suppressed or kept in isolation. The gain-shaped spectra
// are inverted and pieced back together by overlap-add.
//
// The engine employs lookahead and is not designed for real-time use;
// the latency is a fixed function of window size, hop size, and history
// depth. Processing is mono — multi-channel audio is handled by running
// the engine once per channel.
//
// Sample I/O goes through the [Source] and [Sink] contracts so that the
// engine stays independent of file formats and storage; [ProfileBuffer]
// and [ReduceBuffer] wrap them for in-memory slices.
package denoise
