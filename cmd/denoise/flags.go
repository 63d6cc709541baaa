package main

import (
	"github.com/urfave/cli/v3"

	denoise "github.com/cwbudde/algo-denoise"
)

// settingsFlags declares the analysis flags shared by both commands. The
// profile and the reduction must agree on window size; the rest may
// differ between the two passes.
func settingsFlags() []cli.Flag {
	defaults := denoise.DefaultSettings()

	return []cli.Flag{
		&cli.IntFlag{
			Name:  "window-size",
			Usage: "Analysis window length in samples (power of two)",
			Value: defaults.WindowSize,
		},
		&cli.IntFlag{
			Name:  "steps",
			Usage: "Overlapping steps per window",
			Value: defaults.StepsPerWindow,
		},
		&cli.StringFlag{
			Name:  "window-pair",
			Usage: "Analysis/synthesis window pairing: none-hann, hann-none, hann-hann, blackman-hann",
			Value: defaults.Pairing.String(),
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Output mode: reduce, isolate, residue",
			Value:   defaults.Mode.String(),
		},
		&cli.StringFlag{
			Name:  "method",
			Usage: "Noise discrimination: median, second-greatest, legacy",
			Value: defaults.Method.String(),
		},
		&cli.FloatFlag{
			Name:    "gain",
			Aliases: []string{"g"},
			Usage:   "Noise attenuation depth in dB",
			Value:   defaults.NoiseGain,
		},
		&cli.FloatFlag{
			Name:  "sensitivity",
			Usage: "Threshold scaling for the modern methods (log10 scale)",
			Value: defaults.NewSensitivity,
		},
		&cli.FloatFlag{
			Name:  "legacy-sensitivity",
			Usage: "Threshold adjustment for the legacy method, in dB",
			Value: defaults.Sensitivity,
		},
		&cli.FloatFlag{
			Name:  "freq-smoothing",
			Usage: "Gain smoothing bandwidth in Hz",
			Value: defaults.FreqSmoothingHz,
		},
		&cli.FloatFlag{
			Name:  "attack",
			Usage: "Attack time in seconds",
			Value: defaults.AttackTime,
		},
		&cli.FloatFlag{
			Name:  "release",
			Usage: "Release time in seconds",
			Value: defaults.ReleaseTime,
		},
		&cli.FloatFlag{
			Name:  "freq-low",
			Usage: "Lower bound of the affected band in Hz (negative for none)",
			Value: defaults.FreqLow,
		},
		&cli.FloatFlag{
			Name:  "freq-high",
			Usage: "Upper bound of the affected band in Hz (negative for none)",
			Value: defaults.FreqHigh,
		},
	}
}

func settingsFromFlags(cmd *cli.Command) (denoise.Settings, error) {
	s := denoise.DefaultSettings()
	s.WindowSize = cmd.Int("window-size")
	s.StepsPerWindow = cmd.Int("steps")
	s.NoiseGain = cmd.Float("gain")
	s.NewSensitivity = cmd.Float("sensitivity")
	s.Sensitivity = cmd.Float("legacy-sensitivity")
	s.FreqSmoothingHz = cmd.Float("freq-smoothing")
	s.AttackTime = cmd.Float("attack")
	s.ReleaseTime = cmd.Float("release")
	s.FreqLow = cmd.Float("freq-low")
	s.FreqHigh = cmd.Float("freq-high")

	var err error
	if s.Pairing, err = denoise.ParsePairing(cmd.String("window-pair")); err != nil {
		return s, err
	}
	if s.Mode, err = denoise.ParseMode(cmd.String("mode")); err != nil {
		return s, err
	}
	if s.Method, err = denoise.ParseMethod(cmd.String("method")); err != nil {
		return s, err
	}

	return s, s.Validate()
}
