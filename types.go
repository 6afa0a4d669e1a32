package mp3forensics

import (
	"fmt"

	"github.com/farcloser/mp3forensics/internal/fusion"
)

/*
Usage:

result, err := mp3forensics.Analyze(ctx, path, mp3forensics.DefaultOptions())
if result.Verdict.String() == "TRANSCODE" {
    fmt.Println("Transcode detected!")
}

// Binary evidence only, no ffmpeg/ffprobe dependency
opts := mp3forensics.DefaultOptions()
opts.SkipSpectral = true
result, err := mp3forensics.Analyze(ctx, path, opts)

// Custom thresholds
opts := mp3forensics.DefaultOptions()
opts.Thresholds.Suspect, opts.Thresholds.Transcode = 25, 50
result, err := mp3forensics.Analyze(ctx, path, opts)

// Strictness preset
opts := mp3forensics.OptionsForProfile(mp3forensics.ProfileStrict)
result, err := mp3forensics.Analyze(ctx, path, opts)
*/

// Options configures a single-file analysis pass.
type Options struct {
	Thresholds fusion.Thresholds

	SkipSpectral bool // skip PCM decode, STFT, and spectral scoring entirely

	FFTSize     int // STFT window size in samples, 0 uses stft.DefaultSize
	MaxWindows  int // bound on processed STFT windows, 0 uses stft.MaxWindows
	StreamIndex int // which audio stream to decode, for multi-stream containers
}

// DefaultOptions returns the default analysis configuration: both engines
// run, default verdict thresholds (suspect 35, transcode 65).
func DefaultOptions() Options {
	return Options{
		Thresholds: fusion.DefaultThresholds(),
	}
}

// Profile selects a verdict-threshold preset, trading false positives
// against false negatives.
type Profile int

const (
	ProfileDefault Profile = iota
	ProfileStrict
	ProfileLenient
)

func (p Profile) String() string {
	switch p {
	case ProfileStrict:
		return "strict"
	case ProfileLenient:
		return "lenient"
	default:
		return "default"
	}
}

// ParseProfile converts a string to a Profile value.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "default", "":
		return ProfileDefault, nil
	case "strict":
		return ProfileStrict, nil
	case "lenient":
		return ProfileLenient, nil
	default:
		return 0, fmt.Errorf("unknown profile %q (valid: default, strict, lenient)", s)
	}
}

// OptionsForProfile returns the default Options for the given profile.
// Strict lowers both thresholds to surface more candidates at the cost of
// false positives; lenient raises them to only flag clear-cut cases.
func OptionsForProfile(profile Profile) Options {
	opts := DefaultOptions()

	switch profile {
	case ProfileStrict:
		opts.Thresholds = fusion.Thresholds{Suspect: 25, Transcode: 50}
	case ProfileLenient:
		opts.Thresholds = fusion.Thresholds{Suspect: 45, Transcode: 75}
	}

	return opts
}
