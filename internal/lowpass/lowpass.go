// Package lowpass flags a mismatch between a file's declared bitrate and
// the lowpass cutoff its LAME tag reports, the classic fingerprint of a
// lossy source re-encoded at a higher nominal bitrate.
package lowpass

// expectedTable maps a declared bitrate floor (kbps) to the lowpass cutoff
// (Hz) LAME would normally choose at that bitrate, for display/comparison
// purposes. Entries are checked highest-bitrate-first.
var expectedTable = []struct {
	bitrateKbps int
	lowpassHz   int
}{
	{320, 20500},
	{256, 20000},
	{224, 19500},
	{192, 18500},
	{160, 17500},
	{128, 16000},
	{112, 15500},
	{96, 15000},
}

const expectedLowpassDefault = 14000

// minAcceptableTable maps a declared bitrate floor (kbps) to the minimum
// lowpass cutoff (Hz) below which the file is flagged suspicious. Bitrates
// below the lowest entry are never flagged on lowpass alone.
var minAcceptableTable = []struct {
	bitrateKbps int
	lowpassHz   int
}{
	{256, 18000},
	{192, 17000},
	{160, 16000},
	{128, 15000},
}

// Evaluate compares a declared bitrate against a reported lowpass cutoff
// and reports whether the pairing is suspicious and, when it is, the bitrate
// that would normally produce such a cutoff (empty otherwise).
func Evaluate(bitrateKbps, lowpassHz int) (suspicious bool, likelySource string) {
	if lowpassHz <= 0 || bitrateKbps <= 0 {
		return false, ""
	}

	minAcceptable := minAcceptableLowpass(bitrateKbps)
	if minAcceptable <= 0 {
		return false, ""
	}

	if lowpassHz >= minAcceptable {
		return false, ""
	}

	return true, likelySourceBitrate(lowpassHz)
}

// ExpectedLowpass returns the lowpass cutoff LAME would normally choose at
// the given declared bitrate, for reporting alongside the observed value.
func ExpectedLowpass(bitrateKbps int) int {
	for _, entry := range expectedTable {
		if bitrateKbps >= entry.bitrateKbps {
			return entry.lowpassHz
		}
	}

	return expectedLowpassDefault
}

func minAcceptableLowpass(bitrateKbps int) int {
	for _, entry := range minAcceptableTable {
		if bitrateKbps >= entry.bitrateKbps {
			return entry.lowpassHz
		}
	}

	return 0
}

// likelySourceBitrate performs the reverse lookup: given an observed
// lowpass cutoff, estimate the bitrate the file was plausibly first
// encoded at.
func likelySourceBitrate(lowpassHz int) string {
	switch {
	case lowpassHz <= 11000:
		return "64kbps or lower"
	case lowpassHz <= 14000:
		return "96kbps"
	case lowpassHz <= 16000:
		return "128kbps"
	case lowpassHz <= 17500:
		return "160kbps"
	case lowpassHz <= 18500:
		return "192kbps"
	default:
		return "lower bitrate"
	}
}
