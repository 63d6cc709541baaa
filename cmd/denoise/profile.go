package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	denoise "github.com/cwbudde/algo-denoise"
)

var errProfileArgs = errors.New("expected at least one noise-only WAV file")

func profileCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Profile output path (JSON)",
			Value:   "noise-profile.json",
		},
	}

	return &cli.Command{
		Name:      "profile",
		Usage:     "Measure a noise profile from noise-only WAV recordings",
		ArgsUsage: "<noise.wav>...",
		Flags:     append(flags, settingsFlags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return errProfileArgs
			}

			settings, err := settingsFromFlags(cmd)
			if err != nil {
				return err
			}

			var sources []denoise.Source
			for _, path := range cmd.Args().Slice() {
				channels, format, err := readWAV(path)
				if err != nil {
					return err
				}
				for _, ch := range channels {
					sources = append(sources, &denoise.SliceSource{
						Rate:    float64(format.SampleRate),
						Samples: ch,
					})
				}
			}

			st, err := denoise.ProfileTracks(settings, sources, nil)
			if err != nil {
				return fmt.Errorf("profiling: %w", err)
			}

			if err := saveProfile(cmd.String("output"), st); err != nil {
				return err
			}

			printProfileSummary(st)
			return nil
		},
	}
}

// printProfileSummary reports the measured noise floor per band in dB:
// its mean, spread, and the loudest band.
func printProfileSummary(st *denoise.Statistics) {
	levels := make([]float64, 0, len(st.Means))
	for _, m := range st.Means {
		if m > 0 {
			levels = append(levels, 10*math.Log10(m))
		}
	}

	fmt.Printf("profiled %d windows across %d bands\n", st.TotalWindows, len(st.Means))
	if len(levels) == 0 {
		fmt.Println("noise floor: silence")
		return
	}

	sort.Float64s(levels)
	peak := floats.MaxIdx(st.Means)
	binWidth := st.Rate / float64(st.WindowSize)

	fmt.Printf("noise floor: mean %.1f dB, median %.1f dB, range [%.1f, %.1f] dB\n",
		stat.Mean(levels, nil),
		stat.Quantile(0.5, stat.Empirical, levels, nil),
		levels[0], levels[len(levels)-1])
	fmt.Printf("loudest band: %.0f Hz at %.1f dB\n",
		float64(peak)*binWidth, 10*math.Log10(st.Means[peak]))
}
