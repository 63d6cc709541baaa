package main

import "testing"

func TestSliceStreamerStereo(t *testing.T) {
	left := []float64{0.1, 0.2, 0.3}
	right := []float64{-0.1, -0.2, -0.3}
	s := &sliceStreamer{channels: [][]float64{left, right}}

	buf := make([][2]float64, 2)

	n, ok := s.Stream(buf)
	if n != 2 || !ok {
		t.Fatalf("first Stream = (%d, %v), want (2, true)", n, ok)
	}
	if buf[0] != [2]float64{0.1, -0.1} || buf[1] != [2]float64{0.2, -0.2} {
		t.Errorf("first chunk = %v", buf[:n])
	}

	n, ok = s.Stream(buf)
	if n != 1 || !ok {
		t.Fatalf("second Stream = (%d, %v), want (1, true)", n, ok)
	}
	if buf[0] != [2]float64{0.3, -0.3} {
		t.Errorf("second chunk = %v", buf[:n])
	}

	if n, ok = s.Stream(buf); n != 0 || ok {
		t.Errorf("drained Stream = (%d, %v), want (0, false)", n, ok)
	}
}

func TestSliceStreamerMonoDuplicates(t *testing.T) {
	s := &sliceStreamer{channels: [][]float64{{0.5}}}
	buf := make([][2]float64, 4)

	n, ok := s.Stream(buf)
	if n != 1 || !ok {
		t.Fatalf("Stream = (%d, %v), want (1, true)", n, ok)
	}
	if buf[0][0] != 0.5 || buf[0][1] != 0.5 {
		t.Errorf("mono sample = %v, want both channels 0.5", buf[0])
	}
}
