// Package spectralrules turns the band energies and drops computed by
// spectralfeat into an additive spectral score and a set of human-readable
// flags. The score is not clamped here and can exceed 100; fusion caps the
// combined score.
package spectralrules

import "github.com/farcloser/mp3forensics/internal/types"

// Evaluate scores a file's spectral evidence. Within each of the three
// groups (upper_drop, ultrasonic_drop, ultrasonic_flatness) only the first
// matching tier fires; the groups themselves stack additively, along with
// the three independent rolloff/silence checks.
func Evaluate(d types.SpectralDetails) (score float64, flags []string) {
	switch {
	case d.UpperDrop > 40:
		score += 50
		flags = append(flags, "severe_hf_damage")
	case d.UpperDrop > 15:
		score += 35
		flags = append(flags, "hf_cutoff_detected")
	case d.UpperDrop > 10:
		score += 20
		flags = append(flags, "possible_lossy_origin")
	}

	switch {
	case d.UltrasonicDrop > 40:
		score += 35
		flags = append(flags, "cliff_at_20khz")
	case d.UltrasonicDrop > 25:
		score += 25
		flags = append(flags, "steep_20khz_cutoff")
	case d.UltrasonicDrop > 15:
		score += 15
		flags = append(flags, "possible_320k_origin")
	}

	switch {
	case d.UltrasonicFlatness < 0.3:
		score += 20
		flags = append(flags, "dead_ultrasonic_band")
	case d.UltrasonicFlatness < 0.5:
		score += 10
		flags = append(flags, "weak_ultrasonic_content")
	}

	if d.HighDrop > 48 {
		score += 15
		flags = append(flags, "steep_hf_rolloff")
	}

	if d.RMSUpperDb < -50 {
		score += 15
		flags = append(flags, "silent_17k+")
	}

	if d.RMSUltrasonicDb < -70 {
		score += 10
		flags = append(flags, "silent_20k+")
	}

	return score, flags
}
