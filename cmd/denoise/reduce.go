package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	denoise "github.com/cwbudde/algo-denoise"
)

var errReduceArgs = errors.New("expected exactly one input WAV file")

func reduceCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "Noise profile path (JSON, from the profile command)",
			Value:   "noise-profile.json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output WAV path",
			Value:   "denoised.wav",
		},
	}

	return &cli.Command{
		Name:      "reduce",
		Usage:     "Reduce profiled noise in a WAV file",
		ArgsUsage: "<input.wav>",
		Flags:     append(flags, settingsFlags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errReduceArgs, cmd.NArg())
			}

			settings, err := settingsFromFlags(cmd)
			if err != nil {
				return err
			}

			st, err := loadProfile(cmd.String("profile"))
			if err != nil {
				return err
			}

			if warn, err := st.Compatible(settings); err != nil {
				return err
			} else if warn != nil {
				slog.Warn("profile mismatch", "warning", warn)
			}

			inputPath := cmd.Args().First()
			channels, format, err := readWAV(inputPath)
			if err != nil {
				return err
			}

			tracks := make([]denoise.Track, len(channels))
			sinks := make([]*denoise.SliceSink, len(channels))
			for i, ch := range channels {
				sinks[i] = &denoise.SliceSink{Samples: make([]float64, 0, len(ch))}
				tracks[i] = denoise.Track{
					Source: &denoise.SliceSource{Rate: float64(format.SampleRate), Samples: ch},
					Sink:   sinks[i],
				}
			}

			if err := denoise.ReduceTracks(settings, st, tracks, nil); err != nil {
				return fmt.Errorf("reducing %s: %w", inputPath, err)
			}

			out := make([][]float64, len(sinks))
			for i, sink := range sinks {
				out[i] = sink.Samples
			}

			return writeWAV(cmd.String("output"), out, format)
		},
	}
}
