// Package pcm adapts the ffprobe/ffmpeg integration into the decoded,
// de-interleaved sample channels the spectral analyzer and stereo
// correlation pass consume.
package pcm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/farcloser/mp3forensics/internal/integration/ffmpeg"
	"github.com/farcloser/mp3forensics/internal/integration/ffprobe"
)

const bytesPerSample = 4 // f32le

// Audio holds decoded PCM, de-interleaved by channel, plus the container
// properties recovered by ffprobe.
type Audio struct {
	Channels     [][]float64
	SampleRate   int
	NumChannels  int
	DurationSecs float64
	BitrateKbps  int
	StreamIndex  int
}

// Decode probes filePath, extracts the chosen audio stream via ffmpeg, and
// returns de-interleaved float64 sample channels ready for spectral
// analysis.
func Decode(ctx context.Context, filePath string, streamIndex int) (Audio, error) {
	probeResult, err := ffprobe.Probe(ctx, filePath)
	if err != nil {
		return Audio{}, fmt.Errorf("probing file: %w", err)
	}

	stream, err := findAudioStream(probeResult, streamIndex)
	if err != nil {
		return Audio{}, err
	}

	sampleRate, channels, err := streamFormat(stream)
	if err != nil {
		return Audio{}, err
	}

	//nolint:gosec // filePath is the CLI/walker-provided file under analysis
	file, err := os.Open(filePath)
	if err != nil {
		return Audio{}, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var pcmBuf bytes.Buffer

	if err = ffmpeg.ExtractStream(ctx, file, &pcmBuf, streamIndex); err != nil {
		return Audio{}, fmt.Errorf("extracting PCM: %w", err)
	}

	chans := deinterleave(pcmBuf.Bytes(), channels)

	return Audio{
		Channels:     chans,
		SampleRate:   sampleRate,
		NumChannels:  channels,
		DurationSecs: parseDuration(probeResult.Format.Duration),
		BitrateKbps:  parseBitrateKbps(stream.BitRate, probeResult.Format.BitRate),
		StreamIndex:  streamIndex,
	}, nil
}

func findAudioStream(result *ffprobe.Result, streamIndex int) (*ffprobe.Stream, error) {
	audioCount := 0

	for i := range result.Streams {
		if result.Streams[i].CodecType != "audio" {
			continue
		}

		if audioCount == streamIndex {
			return &result.Streams[i], nil
		}

		audioCount++
	}

	return nil, fmt.Errorf("audio stream index %d not found (file has %d audio streams)", streamIndex, audioCount)
}

func streamFormat(stream *ffprobe.Stream) (sampleRate, channels int, err error) {
	sampleRate, err = strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return 0, 0, fmt.Errorf("invalid sample rate from probe: %q", stream.SampleRate)
	}

	if stream.Channels <= 0 {
		return 0, 0, fmt.Errorf("invalid channel count from probe: %d", stream.Channels)
	}

	return sampleRate, stream.Channels, nil
}

// deinterleave splits raw little-endian float32 PCM into one []float64 per
// channel, dropping any trailing partial frame.
func deinterleave(data []byte, numChannels int) [][]float64 {
	frameSize := bytesPerSample * numChannels
	frames := len(data) / frameSize

	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for f := 0; f < frames; f++ {
		base := f * frameSize

		for c := 0; c < numChannels; c++ {
			off := base + c*bytesPerSample
			bits := binary.LittleEndian.Uint32(data[off : off+bytesPerSample])
			out[c][f] = float64(math.Float32frombits(bits))
		}
	}

	return out
}

func parseDuration(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

func parseBitrateKbps(streamBitRate, formatBitRate string) int {
	s := streamBitRate
	if s == "" {
		s = formatBitRate
	}

	bps, err := strconv.Atoi(s)
	if err != nil || bps <= 0 {
		return 0
	}

	return bps / 1000
}
