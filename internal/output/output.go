// Package output provides shared result serialization for mp3forensics'
// JSON output, mirroring the map-shaped, nil-omitting style haustorium
// uses for its own analyzer results.
package output

import "github.com/farcloser/mp3forensics/internal/types"

// ResultToMap converts an analysis result into the canonical map structure
// used for JSON output.
func ResultToMap(result *types.AnalysisResult) map[string]any {
	meta := map[string]any{
		"file":           result.FileName,
		"path":           result.FilePath,
		"verdict":        result.Verdict.String(),
		"score":          result.CombinedScore,
		"spectral_score": result.SpectralScore,
		"binary_score":   result.BinaryScore,
		"bitrate_kbps":   result.Bitrate,
		"sample_rate":    result.SampleRate,
		"duration_sec":   result.DurationSecs,
		"encoder":        result.Encoder,
		"has_lowpass":    result.HasLowpass,
		"flags":          result.Flags,
	}

	if result.HasLowpass {
		meta["lowpass_hz"] = result.Lowpass
	}

	if result.Error != "" {
		meta["error"] = result.Error
	}

	if d := result.BinaryDetails; d != nil {
		meta["binary"] = BinaryDetailsToMap(d)
	}

	if d := result.SpectralDetails; d != nil {
		meta["spectral"] = SpectralDetailsToMap(d)
	}

	return meta
}

// BinaryDetailsToMap converts the structural/binary analyzer's evidence
// into a map.
func BinaryDetailsToMap(d *types.BinaryDetails) map[string]any {
	out := map[string]any{
		"lowpass_hz":       d.Lowpass,
		"expected_lowpass": d.ExpectedLowpass,
		"encoder_version":  d.EncoderVersion,
		"encoder_count":    d.EncoderCount,
		"frame_size_cv":    d.FrameSizeCV,
		"is_vbr":           d.IsVBR,
		"total_frames":     d.TotalFrames,
		"lame_signatures":  d.LAMECount,
		"lavf_signatures":  d.LavfCount,
		"fraunhofer_count": d.FraunhoferCount,
		"reencoded":        d.Reencoded,
	}

	if d.EncodingChain != "" {
		out["encoding_chain"] = d.EncodingChain
	}

	return out
}

// SpectralDetailsToMap converts the spectral analyzer's evidence into a
// map, omitting the spectrogram/stereo sub-objects when they weren't
// populated.
func SpectralDetailsToMap(d *types.SpectralDetails) map[string]any {
	out := map[string]any{
		"rms_full_db":         d.RMSFullDb,
		"rms_mid_high_db":     d.RMSMidHighDb,
		"rms_high_db":         d.RMSHighDb,
		"rms_upper_db":        d.RMSUpperDb,
		"rms_19_20k_db":       d.RMS1920kDb,
		"rms_ultrasonic_db":   d.RMSUltrasonicDb,
		"high_drop":           d.HighDrop,
		"upper_drop":          d.UpperDrop,
		"ultrasonic_drop":     d.UltrasonicDrop,
		"ultrasonic_flatness": d.UltrasonicFlatness,
	}

	if s := d.Stereo; s != nil {
		out["stereo"] = map[string]any{
			"avg_correlation": s.Avg,
			"min_correlation": s.Min,
			"max_correlation": s.Max,
			"is_stereo":       s.IsStereo,
			"channel_count":   s.ChannelCount,
		}
	}

	if sg := d.Spectrogram; sg != nil {
		out["spectrogram"] = map[string]any{
			"num_time_slices": sg.NumTimeSlices,
			"num_freq_bins":   sg.NumFreqBins,
		}
	}

	return out
}
