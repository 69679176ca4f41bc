package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		distance   float64
		untilStart time.Duration
		wantOpen   bool
		wantAuto   bool
	}{
		{"far before start", 50, 30 * time.Minute, false, false},
		{"window opens 15 minutes early", 50, 15 * time.Minute, true, true},
		{"just inside early window", 150, 14 * time.Minute, true, false},
		{"at start", 50, 0, true, true},
		{"late but within grace", 50, -59 * time.Minute, true, true},
		{"window closes 60 minutes late", 50, -60 * time.Minute, true, true},
		{"past late window", 50, -61 * time.Minute, false, false},
		{"too far away", 250, 5 * time.Minute, false, false},
		{"at outer radius", 200, 5 * time.Minute, true, false},
		{"between radii opens without auto", 150, 5 * time.Minute, true, false},
		{"at auto radius", 100, 5 * time.Minute, true, true},
		{"inside auto radius", 40, 5 * time.Minute, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.distance, tt.untilStart)
			assert.Equal(t, tt.wantOpen, d.Open, "Open")
			assert.Equal(t, tt.wantAuto, d.Auto, "Auto")
			assert.Equal(t, tt.distance, d.Distance)
		})
	}
}

func TestEvaluateMonotonicInDistance(t *testing.T) {
	// If the gate opens at distance d, it opens at every shorter distance too.
	offsets := []time.Duration{20 * time.Minute, 15 * time.Minute, 0, -30 * time.Minute, -61 * time.Minute}
	for _, until := range offsets {
		prevOpen := false
		prevAuto := false
		for d := 300.0; d >= 0; d -= 10 {
			got := Evaluate(d, until)
			if prevOpen {
				assert.True(t, got.Open, "gate closed at %vm after opening farther out (until=%v)", d, until)
			}
			if prevAuto {
				assert.True(t, got.Auto, "auto lost at %vm after triggering farther out (until=%v)", d, until)
			}
			prevOpen = got.Open
			prevAuto = got.Auto
		}
	}
}

func TestEvaluateAutoImpliesOpen(t *testing.T) {
	for d := 0.0; d <= 300; d += 25 {
		for until := -90 * time.Minute; until <= 30*time.Minute; until += 5 * time.Minute {
			got := Evaluate(d, until)
			if got.Auto {
				assert.True(t, got.Open, "auto without open at d=%v until=%v", d, until)
			}
		}
	}
}
