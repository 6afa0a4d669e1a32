package signature

import "testing"

func TestScanCountsNonOverlappingLAMETags(t *testing.T) {
	header := []byte("LAME3.99LAME3.99some Lavf58.45 trailer")

	sig := Scan(header)

	if sig.LAMECount != 2 {
		t.Errorf("LAMECount = %d, want 2", sig.LAMECount)
	}

	if sig.LavfCount != 1 {
		t.Errorf("LavfCount = %d, want 1", sig.LavfCount)
	}

	if !sig.HasFFmpeg {
		t.Error("expected HasFFmpeg = true when Lavf signature present")
	}
}

func TestScanDetectsXingInfoITunes(t *testing.T) {
	sig := Scan([]byte("Xing header followed by iTunes comment"))

	if !sig.HasXing {
		t.Error("expected HasXing = true")
	}

	if !sig.HasITunes {
		t.Error("expected HasITunes = true")
	}
}

func TestScanTruncatesToMaxScanBytes(t *testing.T) {
	header := make([]byte, MaxScanBytes+100)
	copy(header[MaxScanBytes+1:], []byte("LAME"))

	sig := Scan(header)
	if sig.LAMECount != 0 {
		t.Errorf("LAMECount = %d, want 0 for a signature beyond MaxScanBytes", sig.LAMECount)
	}
}

func TestScanEmptyHeaderYieldsZeroSignatures(t *testing.T) {
	sig := Scan(nil)

	if sig.LAMECount != 0 || sig.LavfCount != 0 || sig.HasXing || sig.HasITunes {
		t.Errorf("expected zero-value signatures for an empty header, got %+v", sig)
	}
}
