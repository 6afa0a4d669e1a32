// Package fusion combines the binary and spectral suspicion scores into a
// single verdict, following the same Options/DefaultOptions construction
// idiom used across this module's rule engines.
package fusion

import "github.com/farcloser/mp3forensics/internal/types"

// Thresholds configures the verdict boundaries on the combined 0-100 score.
type Thresholds struct {
	Suspect   float64
	Transcode float64
}

// DefaultThresholds returns the default verdict boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Suspect:   35,
		Transcode: 65,
	}
}

// maxCombinedScore caps the combined score at 100 regardless of how high
// the two component scores run.
const maxCombinedScore = 100

// Fuse combines the spectral and binary scores into a single verdict.
// combined = min(100, spectral_score + binary_score). Flags from both
// passes are merged, deduplicated by first occurrence.
func Fuse(spectralScore, binaryScore float64, spectralFlags, binaryFlags []string, t Thresholds) (types.Verdict, float64, []string) {
	combined := spectralScore + binaryScore
	if combined > maxCombinedScore {
		combined = maxCombinedScore
	}

	verdict := types.VerdictOK

	switch {
	case combined >= t.Transcode:
		verdict = types.VerdictTranscode
	case combined >= t.Suspect:
		verdict = types.VerdictSuspect
	}

	return verdict, combined, mergeFlags(spectralFlags, binaryFlags)
}

func mergeFlags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))

	out := make([]string, 0, len(a)+len(b))

	for _, f := range a {
		if !seen[f] {
			seen[f] = true

			out = append(out, f)
		}
	}

	for _, f := range b {
		if !seen[f] {
			seen[f] = true

			out = append(out, f)
		}
	}

	return out
}
