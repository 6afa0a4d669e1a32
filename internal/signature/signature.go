// Package signature scans the header region of an MP3 file for byte
// fingerprints left behind by known encoders, to build evidence of a
// re-encoding chain.
package signature

import (
	"bytes"

	"github.com/farcloser/mp3forensics/internal/types"
)

// MaxScanBytes bounds how much of the file is scanned for encoder
// signatures: fingerprints only ever appear near the start of the stream
// (ID3 tags, the first frame's Xing/LAME tag, or a trailing encoder
// comment written just after it), so scanning the whole file would only
// cost time without finding more evidence.
const MaxScanBytes = 4096

// Scan inspects the first MaxScanBytes of header (callers should pass at
// most that many bytes; a longer slice is truncated) for known encoder
// fingerprints and returns the aggregated counts/flags.
func Scan(header []byte) types.EncoderSignatures {
	if len(header) > MaxScanBytes {
		header = header[:MaxScanBytes]
	}

	var sig types.EncoderSignatures

	sig.LAMECount = countTieredLAME(header)
	sig.LavfCount = countNonOverlapping(header, []byte("Lavf"))
	sig.LavcCount = countNonOverlapping(header, []byte("Lavc"))
	sig.FraunhoferCount = countNonOverlapping(header, []byte("FhG")) + countNonOverlapping(header, []byte("Fraunhofer"))

	sig.HasITunes = bytes.Contains(header, []byte("iTunes")) || bytes.Contains(header, []byte("Qtim"))
	sig.HasXing = bytes.Contains(header, []byte("Xing")) || bytes.Contains(header, []byte("Info"))
	sig.HasFFmpeg = sig.LavfCount > 0 || sig.LavcCount > 0 || bytes.Contains(header, []byte("ffmpeg"))
	sig.HasGOGO = bytes.Contains(header, []byte("GOGO")) || bytes.Contains(header, []byte("Gogo"))
	sig.HasBladeEnc = bytes.Contains(header, []byte("BladeEnc"))
	sig.HasShine = bytes.Contains(header, []byte("Shine"))
	sig.HasHelix = bytes.Contains(header, []byte("Helix")) || bytes.Contains(header, []byte("HELIX"))

	if sig.HasGOGO {
		sig.Other = append(sig.Other, "gogo")
	}

	if sig.HasBladeEnc {
		sig.Other = append(sig.Other, "bladeenc")
	}

	if sig.HasShine {
		sig.Other = append(sig.Other, "shine")
	}

	if sig.HasHelix {
		sig.Other = append(sig.Other, "helix")
	}

	return sig
}

// countTieredLAME counts LAME tag occurrences, preferring the most specific
// pattern available: a versioned tag ("LAME3.", "LAME2.") is the strongest
// signal, a space-terminated tag ("LAME ") is next best, and a bare "LAME"
// is the last resort for truncated or unusual tags.
func countTieredLAME(haystack []byte) int {
	if n := countNonOverlapping(haystack, []byte("LAME3.")) + countNonOverlapping(haystack, []byte("LAME2.")); n > 0 {
		return n
	}

	if n := countNonOverlapping(haystack, []byte("LAME ")); n > 0 {
		return n
	}

	return countNonOverlapping(haystack, []byte("LAME"))
}

// countNonOverlapping counts occurrences of needle in haystack, advancing
// past each match by its full length so that a repeated tag (e.g. at both
// the ID3 comment and the Xing/LAME subtag) is counted once per occurrence
// rather than once per overlapping byte offset.
func countNonOverlapping(haystack, needle []byte) int {
	count := 0
	offset := 0

	for {
		idx := bytes.Index(haystack[offset:], needle)
		if idx < 0 {
			return count
		}

		count++
		offset += idx + len(needle)

		if offset >= len(haystack) {
			return count
		}
	}
}
