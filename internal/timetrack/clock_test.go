package timetrack

import (
	"testing"
	"time"
)

func TestElapsedSeconds(t *testing.T) {
	base := time.Date(2024, 8, 21, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int64
	}{
		{"zero", base, base, 0},
		{"whole seconds", base, base.Add(900 * time.Second), 900},
		{"rounds down", base, base.Add(900*time.Second + 400*time.Millisecond), 900},
		{"rounds up", base, base.Add(900*time.Second + 600*time.Millisecond), 901},
		{"start in future clamps to zero", base.Add(time.Minute), base, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedSeconds(tt.start, tt.now); got != tt.want {
				t.Errorf("ElapsedSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTokensFor(t *testing.T) {
	tests := []struct {
		elapsed int64
		want    int64
	}{
		{0, 0},
		{299, 0},
		{300, 1},
		{599, 1},
		{600, 2},
		{899, 2},
		{900, 3},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := TokensFor(tt.elapsed); got != tt.want {
			t.Errorf("TokensFor(%d) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}
