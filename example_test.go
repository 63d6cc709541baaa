package denoise_test

import (
	"fmt"

	denoise "github.com/cwbudde/algo-denoise"
	"github.com/cwbudde/algo-denoise/internal/testutil"
)

// Profile a noise-only recording, then reduce that noise in a recording
// that mixes the same noise with a tone.
func Example() {
	const rate = 44100

	settings := denoise.DefaultSettings()

	noise := testutil.DeterministicNoise(1, 0.2, 8*settings.WindowSize)
	voice := testutil.DeterministicSine(440, rate, 0.5, 10*settings.WindowSize)
	noisy := make([]float64, len(voice))
	for i := range noisy {
		noisy[i] = voice[i] + noise[i%len(noise)]
	}

	profile, err := denoise.ProfileBuffer(settings, rate, noise)
	if err != nil {
		panic(err)
	}

	cleaned, err := denoise.ReduceBuffer(settings, profile, rate, noisy)
	if err != nil {
		panic(err)
	}

	fmt.Println("length preserved:", len(cleaned) == len(noisy))
	fmt.Println("noise reduced:", testutil.RMS(cleaned) < testutil.RMS(noisy))
	// Output:
	// length preserved: true
	// noise reduced: true
}
