package lametag

import (
	"encoding/binary"
	"testing"
)

// buildFrame assembles a synthetic MPEG1 Layer III stereo frame (32-byte
// side info) carrying a Xing tag with only the frame-count field set,
// followed by a LAME subtag advertising a 16000Hz lowpass.
func buildFrame(lowpassByte byte) []byte {
	header := []byte{0xFF, 0xFB, 0x90, 0x00} // MPEG1, LayerIII, 128kbps, 44100Hz, stereo
	sideInfo := make([]byte, 32)

	xingTag := []byte("Xing")

	flags := make([]byte, 4)
	binary.BigEndian.PutUint32(flags, 0x0001) // frame count only

	totalFrames := make([]byte, 4)
	binary.BigEndian.PutUint32(totalFrames, 1234)

	lameVersion := []byte("LAME3.99 ")[:9]

	lameRest := make([]byte, 0, 11)
	lameRest = append(lameRest, 0x20)        // revision/VBR nibble: VBR method 0
	lameRest = append(lameRest, lowpassByte) // lowpass byte
	lameRest = append(lameRest, make([]byte, 8)...)

	buf := make([]byte, 0, 128)
	buf = append(buf, header...)
	buf = append(buf, sideInfo...)
	buf = append(buf, xingTag...)
	buf = append(buf, flags...)
	buf = append(buf, totalFrames...)
	buf = append(buf, lameVersion...)
	buf = append(buf, lameRest...)

	return buf
}

func TestParseRecoversLowpassAndVersion(t *testing.T) {
	frameBytes := buildFrame(160) // 160 * 100Hz = 16000Hz

	out, ok := Parse(frameBytes)
	if !ok {
		t.Fatal("expected Xing/LAME tag to be found")
	}

	if !out.HasLowpass {
		t.Fatal("expected HasLowpass = true")
	}

	if out.LowpassHz != 16000 {
		t.Errorf("lowpass = %d, want 16000", out.LowpassHz)
	}

	if out.EncoderVersion != "LAME3.99" {
		t.Errorf("encoder version = %q, want %q", out.EncoderVersion, "LAME3.99")
	}

	if !out.HasTotals || out.TotalFrames != 1234 {
		t.Errorf("totals = (%v, %d), want (true, 1234)", out.HasTotals, out.TotalFrames)
	}
}

func TestParseLowpassDisabledSentinel(t *testing.T) {
	out, ok := Parse(buildFrame(0xFF))
	if !ok {
		t.Fatal("expected Xing/LAME tag to be found")
	}

	if out.HasLowpass {
		t.Error("expected HasLowpass = false for the 0xFF disabled sentinel")
	}
}

func TestParseNoTagFound(t *testing.T) {
	header := []byte{0xFF, 0xFB, 0x90, 0x00}
	junk := make([]byte, 40)

	_, ok := Parse(append(header, junk...))
	if ok {
		t.Fatal("expected no Xing/Info tag to be found in junk payload")
	}
}

func TestParseShortInputRejected(t *testing.T) {
	if _, ok := Parse([]byte{0xFF, 0xFB}); ok {
		t.Fatal("expected short input to be rejected")
	}
}
