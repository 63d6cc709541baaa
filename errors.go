package denoise

import "errors"

var (
	// ErrEmptyProfile means a profiling run gathered zero analysis
	// windows: the profiled selection was shorter than one hop.
	ErrEmptyProfile = errors.New("noise profile is empty: profiled selection too short")

	// ErrSampleRateMismatch means a track's sample rate differs from the
	// rate of the noise profile, or from the other tracks of the same
	// profiling pass.
	ErrSampleRateMismatch = errors.New("sample rate mismatch")

	// ErrWindowSizeMismatch means a reduction run was configured with a
	// different window size than the one that produced the profile.
	ErrWindowSizeMismatch = errors.New("window size does not match noise profile")

	// ErrPairingMismatch is the non-fatal warning returned by
	// [Statistics.Compatible] when the reduction run uses a different
	// window pairing than profiling did. Processing may proceed.
	ErrPairingMismatch = errors.New("window pairing differs from noise profile")

	// ErrCancelled is a conventional error for progress callbacks to
	// return when the user aborts. The engine propagates the callback's
	// error unchanged; the cancelled track's partial output must be
	// discarded by the caller.
	ErrCancelled = errors.New("cancelled")
)
