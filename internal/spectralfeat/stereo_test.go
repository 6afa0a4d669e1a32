package spectralfeat

import "testing"

func TestStereoIdenticalChannelsCorrelateToOne(t *testing.T) {
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = float64(i%7) - 3
	}

	out := Stereo(samples, samples, 44100)

	if !out.IsStereo || out.ChannelCount != 2 {
		t.Fatalf("expected stereo result, got %+v", out)
	}

	if out.Avg < 0.999 {
		t.Errorf("avg correlation = %f, want ~1.0 for identical channels", out.Avg)
	}
}

func TestStereoInvertedChannelsCorrelateToNegativeOne(t *testing.T) {
	left := make([]float64, 10000)
	right := make([]float64, 10000)

	for i := range left {
		left[i] = float64(i%7) - 3
		right[i] = -left[i]
	}

	out := Stereo(left, right, 44100)

	if out.Avg > -0.999 {
		t.Errorf("avg correlation = %f, want ~-1.0 for inverted channels", out.Avg)
	}
}

func TestStereoEmptyChannelsNotStereo(t *testing.T) {
	out := Stereo(nil, nil, 44100)

	if out.IsStereo {
		t.Error("expected IsStereo = false for empty channels")
	}

	if out.ChannelCount != 1 {
		t.Errorf("channel count = %d, want 1", out.ChannelCount)
	}
}

func TestPearsonConstantSignalYieldsOne(t *testing.T) {
	flat := make([]float64, 10)

	if got := pearson(flat, flat); got != 1 {
		t.Errorf("pearson(flat, flat) = %f, want 1", got)
	}
}
