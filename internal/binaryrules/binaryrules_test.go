package binaryrules

import (
	"testing"

	"github.com/farcloser/mp3forensics/internal/types"
)

func TestEvaluateLowpassMismatch(t *testing.T) {
	lame := types.LAMEHeader{HasLowpass: true, LowpassHz: 15000}

	score, flags, details := Evaluate(lame, types.EncoderSignatures{}, types.FrameStats{}, 320)

	if score != 35 {
		t.Errorf("score = %f, want 35", score)
	}

	if len(flags) != 1 || flags[0] != "lowpass_mismatch(15000)" {
		t.Errorf("flags = %v, want [lowpass_mismatch(15000)]", flags)
	}

	if details.Lowpass != 15000 || details.ExpectedLowpass != 20500 {
		t.Errorf("lowpass details = (%d, %d), want (15000, 20500)", details.Lowpass, details.ExpectedLowpass)
	}
}

func TestEvaluateLAMEReencodedTwice(t *testing.T) {
	sig := types.EncoderSignatures{LAMECount: 2}

	score, flags, details := Evaluate(types.LAMEHeader{}, sig, types.FrameStats{}, 320)

	if score != 15 {
		t.Errorf("score = %f, want 15", score)
	}

	wantFlags := []string{"lame_reencoded_x2", "encoding_chain(LAME x2)"}
	if len(flags) != len(wantFlags) {
		t.Fatalf("flags = %v, want %v", flags, wantFlags)
	}

	for i, f := range wantFlags {
		if flags[i] != f {
			t.Errorf("flags[%d] = %q, want %q", i, flags[i], f)
		}
	}

	if details.EncodingChain != "LAME x2" {
		t.Errorf("encoding chain = %q, want %q", details.EncodingChain, "LAME x2")
	}
}

func TestEvaluateMultiEncoderFamilies(t *testing.T) {
	sig := types.EncoderSignatures{LAMECount: 1, LavfCount: 1}

	score, flags, details := Evaluate(types.LAMEHeader{}, sig, types.FrameStats{}, 320)

	if score != 20 {
		t.Errorf("score = %f, want 20", score)
	}

	wantFlags := []string{"multi_encoder_sigs", "encoding_chain(LAME → FFmpeg)"}
	if len(flags) != len(wantFlags) {
		t.Fatalf("flags = %v, want %v", flags, wantFlags)
	}

	if details.EncodingChain != "LAME → FFmpeg" {
		t.Errorf("encoding chain = %q, want %q", details.EncodingChain, "LAME → FFmpeg")
	}
}

func TestEvaluateIrregularFrameSizes(t *testing.T) {
	stats := types.FrameStats{
		Bitrates:   []int{320, 320, 320, 320},
		FrameSizes: []int{100, 200, 100, 200},
	}

	score, flags, _ := Evaluate(types.LAMEHeader{}, types.EncoderSignatures{}, stats, 320)

	if score != 10 {
		t.Errorf("score = %f, want 10", score)
	}

	if len(flags) != 1 || flags[0] != "irregular_frames" {
		t.Errorf("flags = %v, want [irregular_frames]", flags)
	}
}

func TestEvaluateCleanFileScoresZero(t *testing.T) {
	score, flags, _ := Evaluate(types.LAMEHeader{}, types.EncoderSignatures{}, types.FrameStats{}, 320)

	if score != 0 {
		t.Errorf("score = %f, want 0", score)
	}

	if len(flags) != 0 {
		t.Errorf("flags = %v, want none", flags)
	}
}
