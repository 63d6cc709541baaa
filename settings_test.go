package denoise

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:    "window size not power of two",
			mutate:  func(s *Settings) { s.WindowSize = 1000 },
			wantErr: "power of two",
		},
		{
			name:    "window size too small",
			mutate:  func(s *Settings) { s.WindowSize = 4 },
			wantErr: "window size",
		},
		{
			name:    "window size too large",
			mutate:  func(s *Settings) { s.WindowSize = 32768 },
			wantErr: "window size",
		},
		{
			name:    "too few steps",
			mutate:  func(s *Settings) { s.StepsPerWindow = 1 },
			wantErr: "steps per window",
		},
		{
			name: "steps below pairing minimum",
			mutate: func(s *Settings) {
				s.Pairing = HannHann
				s.StepsPerWindow = 2
			},
			wantErr: "too few",
		},
		{
			name: "steps exceed window size",
			mutate: func(s *Settings) {
				s.WindowSize = 8
				s.StepsPerWindow = 16
			},
			wantErr: "exceed",
		},
		{
			name: "median with unsupported steps",
			mutate: func(s *Settings) {
				s.Method = Median
				s.StepsPerWindow = 8
			},
			wantErr: "median",
		},
		{
			name:    "negative noise gain",
			mutate:  func(s *Settings) { s.NoiseGain = -6 },
			wantErr: "depth",
		},
		{
			name:    "non-finite sensitivity",
			mutate:  func(s *Settings) { s.Sensitivity = math.NaN() },
			wantErr: "sensitivity",
		},
		{
			name:    "negative attack time",
			mutate:  func(s *Settings) { s.AttackTime = -0.1 },
			wantErr: "attack",
		},
		{
			name:    "negative release time",
			mutate:  func(s *Settings) { s.ReleaseTime = -0.1 },
			wantErr: "release",
		},
		{
			name:    "negative frequency smoothing",
			mutate:  func(s *Settings) { s.FreqSmoothingHz = -1 },
			wantErr: "smoothing",
		},
		{
			name:    "unknown mode",
			mutate:  func(s *Settings) { s.Mode = Mode(42) },
			wantErr: "mode",
		},
		{
			name:    "unknown method",
			mutate:  func(s *Settings) { s.Method = Method(42) },
			wantErr: "method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMedianStepsValidation(t *testing.T) {
	s := DefaultSettings()
	s.Method = Median

	for _, steps := range []int{2, 4} {
		s.StepsPerWindow = steps
		s.Pairing = RectangularHann
		if err := s.Validate(); err != nil {
			t.Errorf("steps=%d: unexpected error: %v", steps, err)
		}
	}

	s.StepsPerWindow = 3
	if err := s.Validate(); err == nil {
		t.Error("steps=3: expected error for median method, got nil")
	}
}

func TestStepSizeAndSpectrumSize(t *testing.T) {
	s := DefaultSettings()
	if got := s.StepSize(); got != 512 {
		t.Errorf("StepSize() = %d, want 512", got)
	}
	if got := s.SpectrumSize(); got != 1025 {
		t.Errorf("SpectrumSize() = %d, want 1025", got)
	}
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ReduceNoise, IsolateNoise, LeaveResidue} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(bogus): expected error")
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	for _, m := range []Method{Median, SecondGreatest, LegacyMinMax} {
		got, err := ParseMethod(m.String())
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMethod(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if _, err := ParseMethod("bogus"); err == nil {
		t.Error("ParseMethod(bogus): expected error")
	}
}
