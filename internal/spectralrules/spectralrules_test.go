package spectralrules

import (
	"testing"

	"github.com/farcloser/mp3forensics/internal/types"
)

func TestEvaluateCleanFileScoresZero(t *testing.T) {
	score, flags := Evaluate(types.SpectralDetails{
		UpperDrop:          5,
		UltrasonicDrop:     5,
		UltrasonicFlatness: 0.8,
		HighDrop:           10,
		RMSUpperDb:         -20,
		RMSUltrasonicDb:    -40,
	})

	if score != 0 {
		t.Errorf("score = %f, want 0", score)
	}

	if len(flags) != 0 {
		t.Errorf("flags = %v, want none", flags)
	}
}

func TestEvaluateOnlyHighestTierInEachGroupFires(t *testing.T) {
	score, flags := Evaluate(types.SpectralDetails{
		UpperDrop:          45, // above all three upper_drop tiers; only severe_hf_damage should fire
		UltrasonicFlatness: 0.8,
	})

	if score != 50 {
		t.Errorf("score = %f, want 50", score)
	}

	if len(flags) != 1 || flags[0] != "severe_hf_damage" {
		t.Errorf("flags = %v, want [severe_hf_damage]", flags)
	}
}

func TestEvaluateGroupsStackAdditively(t *testing.T) {
	d := types.SpectralDetails{
		UpperDrop:          45, // 50, severe_hf_damage
		UltrasonicDrop:     45, // 35, cliff_at_20khz
		UltrasonicFlatness: 0.2, // 20, dead_ultrasonic_band
		HighDrop:           50,  // 15, steep_hf_rolloff
		RMSUpperDb:         -55, // 15, silent_17k+
		RMSUltrasonicDb:    -75, // 10, silent_20k+
	}

	score, flags := Evaluate(d)

	want := 50.0 + 35 + 20 + 15 + 15 + 10
	if score != want {
		t.Errorf("score = %f, want %f", score, want)
	}

	if len(flags) != 6 {
		t.Errorf("flags = %v, want 6 flags", flags)
	}
}
