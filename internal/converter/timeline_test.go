package converter

import (
	"math"
	"strings"
	"testing"
)

func TestBuildCrossfadeFilter(t *testing.T) {
	got := buildCrossfadeFilter([]float64{8, 5, 4}, 0.3)

	want := "[0:v][1:v]xfade=transition=fade:duration=0.300:offset=7.700[vx1];" +
		"[0:a][1:a]acrossfade=d=0.300[ax1];" +
		"[vx1][2:v]xfade=transition=fade:duration=0.300:offset=12.400[vout];" +
		"[ax1][2:a]acrossfade=d=0.300[aout]"

	if got != want {
		t.Errorf("buildCrossfadeFilter() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildCrossfadeFilterTwoSegments(t *testing.T) {
	got := buildCrossfadeFilter([]float64{2, 3}, 0.3)

	if !strings.Contains(got, "offset=1.700[vout]") {
		t.Errorf("two-segment filter should fade straight into [vout]: %s", got)
	}
	if !strings.Contains(got, "acrossfade=d=0.300[aout]") {
		t.Errorf("two-segment filter should produce [aout]: %s", got)
	}
	if strings.Contains(got, "[vx") {
		t.Errorf("two-segment filter should have no intermediate labels: %s", got)
	}
}

func TestProgramDuration(t *testing.T) {
	tests := []struct {
		name      string
		durations []float64
		want      float64
	}{
		{"single segment", []float64{5}, 5},
		{"two segments lose one fade", []float64{2, 3}, 4.7},
		{"three segments lose two fades", []float64{8, 5, 4}, 16.4},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := programDuration(tt.durations, 0.3)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("programDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.3, "0.300"},
		{8, "8.000"},
		{12.3456, "12.346"},
	}

	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
