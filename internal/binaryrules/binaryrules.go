// Package binaryrules fuses frame statistics, LAME tag contents, and
// encoder signatures into an additive binary/structural suspicion score and
// flag set. The score is not clamped here and can exceed 100; fusion caps
// the combined score.
package binaryrules

import (
	"fmt"

	"github.com/farcloser/mp3forensics/internal/frame"
	"github.com/farcloser/mp3forensics/internal/lowpass"
	"github.com/farcloser/mp3forensics/internal/types"
)

// frameSizeCVThreshold is the percentage coefficient of variation above
// which a high-bitrate stream's frame-size irregularity is suspicious.
const frameSizeCVThreshold = 15.0

// highBitrateKbps is the declared-bitrate floor at which frame-size
// irregularity is scored at all.
const highBitrateKbps = 256

// Evaluate combines the evidence gathered by the frame reader, LAME tag
// parser, and encoder signature scanner into a score and flag set.
func Evaluate(
	lame types.LAMEHeader,
	sig types.EncoderSignatures,
	stats types.FrameStats,
	declaredBitrateKbps int,
) (score float64, flags []string, details types.BinaryDetails) {
	isVBR, frameSizeCV := frame.IsVBR(stats)

	details = types.BinaryDetails{
		EncoderVersion:  lame.EncoderVersion,
		EncoderCount:    sig.UniqueEncoderCount(),
		FrameSizeCV:     frameSizeCV,
		IsVBR:           isVBR,
		TotalFrames:     stats.FrameCount,
		LAMECount:       sig.LAMECount,
		LavfCount:       sig.FFmpegCount(),
		FraunhoferCount: sig.FraunhoferCount,
		Reencoded:       sig.Reencoded(),
	}

	if lame.HasLowpass {
		details.Lowpass = lame.LowpassHz
		details.ExpectedLowpass = lowpass.ExpectedLowpass(declaredBitrateKbps)

		suspicious, _ := lowpass.Evaluate(declaredBitrateKbps, lame.LowpassHz)
		if suspicious {
			score += 35
			flags = append(flags, fmt.Sprintf("lowpass_mismatch(%d)", lame.LowpassHz))
		}
	}

	if sig.Reencoded() {
		unique := sig.UniqueEncoderCount()
		if unique > 1 {
			score += 20
			flags = append(flags, "multi_encoder_sigs")
		}

		if sig.LAMECount > 1 {
			score += 15
			flags = append(flags, fmt.Sprintf("lame_reencoded_x%d", sig.LAMECount))
		}

		if sig.FFmpegCount() > 1 {
			score += 15
			flags = append(flags, fmt.Sprintf("ffmpeg_processed_x%d", sig.FFmpegCount()))
		}

		if sig.FraunhoferCount > 1 {
			score += 15
			flags = append(flags, fmt.Sprintf("fraunhofer_reencoded_x%d", sig.FraunhoferCount))
		}

		for _, other := range sig.Other {
			flags = append(flags, "encoder_"+other)
		}

		if chain := encodingChain(sig); chain != "" {
			details.EncodingChain = chain
			flags = append(flags, fmt.Sprintf("encoding_chain(%s)", chain))
		}
	}

	if declaredBitrateKbps >= highBitrateKbps && frameSizeCV > frameSizeCVThreshold {
		score += 10
		flags = append(flags, "irregular_frames")
	}

	return score, flags, details
}

// encodingChain builds a human-readable description of the detected
// encoding chain, e.g. "LAME → FFmpeg" or "LAME x3".
func encodingChain(sig types.EncoderSignatures) string {
	var stages []string

	if sig.LAMECount > 0 {
		if sig.LAMECount > 1 {
			stages = append(stages, fmt.Sprintf("LAME x%d", sig.LAMECount))
		} else {
			stages = append(stages, "LAME")
		}
	}

	if sig.FFmpegCount() > 0 {
		stages = append(stages, "FFmpeg")
	}

	if sig.FraunhoferCount > 0 {
		stages = append(stages, "Fraunhofer")
	}

	if sig.HasITunes {
		stages = append(stages, "iTunes")
	}

	stages = append(stages, sig.Other...)

	if len(stages) < 2 && !(len(stages) == 1 && sig.LAMECount > 1) {
		return ""
	}

	chain := stages[0]
	for _, s := range stages[1:] {
		chain += " → " + s
	}

	return chain
}
