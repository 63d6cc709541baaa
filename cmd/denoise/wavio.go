package main

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// readWAV decodes a WAV file into one float64 slice per channel.
func readWAV(path string) ([][]float64, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer stream.Close()

	channels := make([][]float64, format.NumChannels)
	buf := make([][2]float64, 1024)
	for {
		n, ok := stream.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			channels[0] = append(channels[0], buf[i][0])
			if format.NumChannels > 1 {
				channels[1] = append(channels[1], buf[i][1])
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return channels, format, nil
}

// sliceStreamer adapts per-channel sample slices back to a beep stream.
type sliceStreamer struct {
	channels [][]float64
	pos      int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	total := len(s.channels[0])
	if s.pos >= total {
		return 0, false
	}

	n := 0
	for ; n < len(samples) && s.pos < total; n++ {
		left := s.channels[0][s.pos]
		right := left
		if len(s.channels) > 1 {
			right = s.channels[1][s.pos]
		}
		samples[n][0] = left
		samples[n][1] = right
		s.pos++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

// writeWAV encodes per-channel samples to a WAV file with the given
// format. Channels must be equal length.
func writeWAV(path string, channels [][]float64, format beep.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := wav.Encode(file, &sliceStreamer{channels: channels}, format); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return file.Close()
}
