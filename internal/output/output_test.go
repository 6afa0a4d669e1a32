package output

import (
	"testing"

	"github.com/farcloser/mp3forensics/internal/types"
)

func TestResultToMapOmitsLowpassWhenAbsent(t *testing.T) {
	meta := ResultToMap(&types.AnalysisResult{Verdict: types.VerdictOK})

	if _, ok := meta["lowpass_hz"]; ok {
		t.Error("expected lowpass_hz to be omitted when HasLowpass is false")
	}

	if _, ok := meta["error"]; ok {
		t.Error("expected error to be omitted when empty")
	}
}

func TestResultToMapIncludesLowpassAndDetails(t *testing.T) {
	result := &types.AnalysisResult{
		Verdict:       types.VerdictSuspect,
		HasLowpass:    true,
		Lowpass:       16000,
		Error:         "decode failure",
		BinaryDetails: &types.BinaryDetails{Lowpass: 16000, ExpectedLowpass: 18500},
		SpectralDetails: &types.SpectralDetails{
			RMSFullDb: -20,
			Stereo:    &types.StereoCorrelation{Avg: 0.9, IsStereo: true},
		},
	}

	meta := ResultToMap(result)

	if meta["lowpass_hz"] != 16000 {
		t.Errorf("lowpass_hz = %v, want 16000", meta["lowpass_hz"])
	}

	if meta["error"] != "decode failure" {
		t.Errorf("error = %v, want %q", meta["error"], "decode failure")
	}

	binary, ok := meta["binary"].(map[string]any)
	if !ok {
		t.Fatal("expected binary details map")
	}

	if binary["expected_lowpass"] != 18500 {
		t.Errorf("expected_lowpass = %v, want 18500", binary["expected_lowpass"])
	}

	spectral, ok := meta["spectral"].(map[string]any)
	if !ok {
		t.Fatal("expected spectral details map")
	}

	stereo, ok := spectral["stereo"].(map[string]any)
	if !ok {
		t.Fatal("expected stereo sub-map to be populated")
	}

	if stereo["avg_correlation"] != 0.9 {
		t.Errorf("avg_correlation = %v, want 0.9", stereo["avg_correlation"])
	}
}

func TestSpectralDetailsToMapOmitsUnpopulatedSubObjects(t *testing.T) {
	out := SpectralDetailsToMap(&types.SpectralDetails{RMSFullDb: -10})

	if _, ok := out["stereo"]; ok {
		t.Error("expected stereo to be omitted when nil")
	}

	if _, ok := out["spectrogram"]; ok {
		t.Error("expected spectrogram to be omitted when nil")
	}
}

func TestBinaryDetailsToMapOmitsEmptyEncodingChain(t *testing.T) {
	out := BinaryDetailsToMap(&types.BinaryDetails{})

	if _, ok := out["encoding_chain"]; ok {
		t.Error("expected encoding_chain to be omitted when empty")
	}
}
