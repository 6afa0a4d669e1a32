package stft

import (
	"math"
	"testing"
)

func TestNewPlannerDefaultsSize(t *testing.T) {
	p := NewPlanner(0)
	if p.Size() != DefaultSize {
		t.Errorf("size = %d, want %d", p.Size(), DefaultSize)
	}
}

func TestWindowsOnPureTone(t *testing.T) {
	p := NewPlanner(256)

	const sampleRate = 8000

	const toneHz = 1000

	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * toneHz * float64(i) / sampleRate)
	}

	windows := p.Windows(samples, 0)
	if len(windows) == 0 {
		t.Fatal("expected at least one window")
	}

	binHz := p.BinHz(sampleRate)
	toneBin := int(math.Round(toneHz / binHz))

	avg := Average(windows)

	peakBin := 0
	for i, m := range avg {
		if m > avg[peakBin] {
			peakBin = i
		}
	}

	if diff := peakBin - toneBin; diff < -1 || diff > 1 {
		t.Errorf("spectral peak at bin %d, want near bin %d (binHz=%f)", peakBin, toneBin, binHz)
	}
}

func TestWindowsEmptyWhenShorterThanFFTSize(t *testing.T) {
	p := NewPlanner(256)

	windows := p.Windows(make([]float64, 100), 0)
	if windows != nil {
		t.Errorf("expected nil windows for samples shorter than the FFT size, got %d", len(windows))
	}
}

func TestToDbFloorsNonPositive(t *testing.T) {
	db := ToDb([]float64{0, -1, 1}, -96)
	if db[0] != -96 || db[1] != -96 {
		t.Errorf("db = %v, want floor at -96 for non-positive magnitudes", db)
	}

	if db[2] != 0 { // 20*log10(1) == 0
		t.Errorf("db[2] = %f, want 0", db[2])
	}
}

func TestAverageEmptyReturnsNil(t *testing.T) {
	if got := Average(nil); got != nil {
		t.Errorf("Average(nil) = %v, want nil", got)
	}
}
