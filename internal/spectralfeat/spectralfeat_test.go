package spectralfeat

import "testing"

func TestExtractEmptyWindowsFloorsAllBands(t *testing.T) {
	d := Extract(nil, 5.0)

	if d.RMSFullDb != DbFloor || d.RMSHighDb != DbFloor || d.RMSUltrasonicDb != DbFloor {
		t.Errorf("expected all bands floored at %f for empty windows, got %+v", DbFloor, d)
	}
}

func TestExtractLowpassCliffProducesLargerDropThanFullBandwidth(t *testing.T) {
	bins := 4096

	flat := make([]float64, bins)
	for i := range flat {
		flat[i] = 1.0
	}

	cliff := make([]float64, bins)
	for i := 0; i < bins/2; i++ { // energy only below ~10kHz at binHz=5
		cliff[i] = 1.0
	}

	flatDetails := Extract([][]float64{flat}, 5.0)
	cliffDetails := Extract([][]float64{cliff}, 5.0)

	if cliffDetails.UpperDrop <= flatDetails.UpperDrop {
		t.Errorf("cliff upper drop (%f) should exceed full-bandwidth upper drop (%f)",
			cliffDetails.UpperDrop, flatDetails.UpperDrop)
	}

	if cliffDetails.UpperDrop < 40 {
		t.Errorf("upper drop = %f, want a large drop when 17-20kHz is silent", cliffDetails.UpperDrop)
	}
}

func TestSpectrogramNilOnEmptyWindows(t *testing.T) {
	if got := Spectrogram(nil, 5.0, 0.1); got != nil {
		t.Errorf("Spectrogram(nil, ...) = %v, want nil", got)
	}
}

func TestSpectrogramDownsamplesDimensions(t *testing.T) {
	windows := make([][]float64, 300)
	for i := range windows {
		windows[i] = make([]float64, 4096)
	}

	sg := Spectrogram(windows, 5.0, 0.1)
	if sg == nil {
		t.Fatal("expected non-nil spectrogram")
	}

	if sg.NumFreqBins <= 0 || sg.NumFreqBins > 4096 {
		t.Errorf("num freq bins = %d, out of expected range", sg.NumFreqBins)
	}

	if sg.NumTimeSlices <= 0 || sg.NumTimeSlices > len(windows) {
		t.Errorf("num time slices = %d, out of expected range", sg.NumTimeSlices)
	}
}
