// Package lametag parses the Xing/Info VBR header and the adjacent
// LAME/Lavc extension tag embedded in the first audio frame of an MP3
// stream.
package lametag

import (
	"bytes"
	"encoding/binary"

	"github.com/farcloser/mp3forensics/internal/frame"
	"github.com/farcloser/mp3forensics/internal/types"
)

const (
	flagFrameCount = 0x0001
	flagByteCount  = 0x0002
	flagTOC        = 0x0004
	flagVBRScale   = 0x0008

	// xingSearchWindow bounds how far into the frame we look for a Xing/Info
	// tag: encoders place it right after the side info, but padding and
	// non-standard side info sizes mean it isn't always at the byte we'd
	// compute, so we search rather than assume.
	xingSearchWindow = 2048

	// lameSearchSlack bounds how far past the end of the parsed VBR payload
	// we look for the LAME/Lavc subtag, to absorb encoders that pad or
	// reserve a few extra bytes before it.
	lameSearchSlack = 50

	// fallbackScanBytes bounds the bare "LAME" scan used when no Xing/Info
	// tag is present at all (plain CBR LAME streams carry only the LAME
	// tag, with no VBR header).
	fallbackScanBytes = 500
)

// Parse looks for a Xing/Info tag inside the first frame's payload (the
// full frame, header included) and, if present, the LAME/Lavc subtag that
// typically follows it. When no Xing/Info tag is found, it falls back to
// scanning for a bare LAME signature, which is all that plain CBR streams
// carry. ok is false when neither is found.
func Parse(frameBytes []byte) (types.LAMEHeader, bool) {
	if len(frameBytes) < 4 {
		return types.LAMEHeader{}, false
	}

	var hdrArr [4]byte

	copy(hdrArr[:], frameBytes[:4])

	if _, ok := frame.ParseHeader(hdrArr); !ok {
		return types.LAMEHeader{}, false
	}

	window := frameBytes
	if len(window) > xingSearchWindow {
		window = window[:xingSearchWindow]
	}

	tagPos, tag, found := findXingInfo(window)
	if !found {
		return parseLAMEFallback(frameBytes)
	}

	out := types.LAMEHeader{
		IsVBRHeader: tag == "Xing",
	}

	pos := tagPos + 4

	if len(frameBytes) < pos+4 {
		return out, true
	}

	flags := binary.BigEndian.Uint32(frameBytes[pos : pos+4])
	pos += 4

	var totalFrames, totalBytes uint32

	if flags&flagFrameCount != 0 {
		if len(frameBytes) < pos+4 {
			return out, true
		}

		totalFrames = binary.BigEndian.Uint32(frameBytes[pos : pos+4])
		pos += 4
	}

	if flags&flagByteCount != 0 {
		if len(frameBytes) < pos+4 {
			return out, true
		}

		totalBytes = binary.BigEndian.Uint32(frameBytes[pos : pos+4])
		pos += 4
	}

	if flags&flagTOC != 0 {
		if len(frameBytes) < pos+100 {
			return out, true
		}

		pos += 100
	}

	if flags&flagVBRScale != 0 {
		if len(frameBytes) < pos+4 {
			return out, true
		}

		pos += 4
	}

	if totalFrames > 0 || totalBytes > 0 {
		out.HasTotals = true
		out.TotalFrames = totalFrames
		out.TotalBytes = totalBytes
	}

	if lamePos := findLAMESubtagStart(frameBytes, pos, lameSearchSlack); lamePos >= 0 {
		parseLAMESubtag(frameBytes, lamePos, &out)
	}

	return out, true
}

// findXingInfo searches window for a Xing or Info tag, returning its start
// offset and which of the two was found.
func findXingInfo(window []byte) (pos int, tag string, found bool) {
	xingIdx := bytes.Index(window, []byte("Xing"))
	infoIdx := bytes.Index(window, []byte("Info"))

	switch {
	case xingIdx < 0 && infoIdx < 0:
		return 0, "", false
	case xingIdx < 0:
		return infoIdx, "Info", true
	case infoIdx < 0:
		return xingIdx, "Xing", true
	case xingIdx <= infoIdx:
		return xingIdx, "Xing", true
	default:
		return infoIdx, "Info", true
	}
}

// findLAMESubtagStart searches frameBytes[from : from+maxSlack] for the
// start of a recognized LAME/Lavc version string, returning -1 if none is
// found in range.
func findLAMESubtagStart(frameBytes []byte, from, maxSlack int) int {
	if from < 0 {
		return -1
	}

	limit := from + maxSlack
	if limit > len(frameBytes)-9 {
		limit = len(frameBytes) - 9
	}

	for i := from; i <= limit; i++ {
		if isLAMEVersion(string(frameBytes[i : i+9])) {
			return i
		}
	}

	return -1
}

// parseLAMEFallback scans the first fallbackScanBytes of frameBytes for a
// bare LAME signature when no Xing/Info VBR header is present, and recovers
// the lowpass byte at the fixed offset the LAME tag layout puts it at. This
// is the only evidence a plain CBR LAME stream carries.
func parseLAMEFallback(frameBytes []byte) (types.LAMEHeader, bool) {
	limit := len(frameBytes)
	if limit > fallbackScanBytes {
		limit = fallbackScanBytes
	}

	lamePos := bytes.Index(frameBytes[:limit], []byte("LAME"))
	if lamePos < 0 {
		return types.LAMEHeader{}, false
	}

	var out types.LAMEHeader

	parseLAMESubtag(frameBytes, lamePos, &out)

	if out.EncoderVersion == "" {
		return types.LAMEHeader{}, false
	}

	return out, true
}

// parseLAMESubtag reads the LAME/Lavc extension that follows the Xing/Info
// tag: a 9-byte version string, then revision/VBR-method nibble, lowpass
// byte, replay-gain/peak fields, and encoding flags. Layout matches
// llehouerou/go-mp3's lameinfo.Parse, generalized to also recover the
// lowpass byte and VBR method/quality nibble that encoder_delay/padding
// parsing does not need.
func parseLAMESubtag(frameBytes []byte, pos int, out *types.LAMEHeader) {
	if len(frameBytes) < pos+9 {
		return
	}

	version := string(frameBytes[pos : pos+9])
	if !isLAMEVersion(version) {
		return
	}

	out.EncoderVersion = trimVersion(version)
	pos += 9

	if len(frameBytes) < pos+2 {
		return
	}

	// Byte 0: revision (upper nibble) | VBR method (lower nibble). The
	// upper nibble also doubles as encoder quality on LAME's own tag.
	out.VBRMethod = int(frameBytes[pos] & 0x0F)
	out.Quality = int((frameBytes[pos] >> 4) & 0x0F)

	// Byte 1: lowpass filter value, in units of 100 Hz, valid only in the
	// [50, 220] window (5000-22000 Hz); anything outside that range is not
	// a real lowpass byte.
	lowpassByte := frameBytes[pos+1]
	if lowpassByte >= 50 && lowpassByte <= 220 {
		out.HasLowpass = true
		out.LowpassHz = int(lowpassByte) * 100
	}
}

func isLAMEVersion(s string) bool {
	if len(s) < 4 {
		return false
	}

	switch s[:4] {
	case "LAME", "L3.9", "Gogo", "GOGO", "Lavf", "Lavc":
		return true
	default:
		return false
	}
}

func trimVersion(s string) string {
	end := len(s)

	for end > 0 && (s[end-1] == 0 || s[end-1] == ' ') {
		end--
	}

	return s[:end]
}
