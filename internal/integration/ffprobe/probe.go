//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/mp3forensics/internal/integration/binary"
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream represents one stream's properties as reported by ffprobe.
// Only the fields this module's pipeline actually consumes are kept: the
// bit-depth and video-specific fields a general-purpose media prober would
// carry don't apply to a lossy MP3 codec.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`               // mp3
	CodecLongName string `json:"codec_long_name"`           // MP3 (MPEG audio layer 3)
	CodecType     string `json:"codec_type"`                // audio
	SampleRate    string `json:"sample_rate,omitempty"`     // 44100
	Channels      int    `json:"channels,omitempty"`        // 2
	ChannelLayout string `json:"channel_layout,omitempty"`  // stereo
	Duration      string `json:"duration,omitempty"`        // 310.666667
	BitRate       string `json:"bit_rate,omitempty"`        // 320000
	MaxBitRate    string `json:"max_bit_rate,omitempty"`    // only meaningful for VBR streams
	TimeBase      string `json:"time_base"`                 // e.g. 1/44100
	DurationTS    int64  `json:"duration_ts,omitempty"`     // duration in TimeBase units
	NbFrames      string `json:"nb_frames,omitempty"`       // frame count, when the demuxer reports one
	InitialPadding int   `json:"initial_padding,omitempty"` // encoder delay samples
}

// BaseFormat contains common format fields for display.
type BaseFormat struct {
	Filename   string `json:"filename"`             // Full path to the file
	NbStreams  int    `json:"nb_streams"`           // Total number of streams (audio + data)
	FormatName string `json:"format_name"`          // Short container name, e.g. "mp3"
	Duration   string `json:"duration,omitempty"`   // Total duration in seconds as float string
	ProbeScore int     `json:"probe_score"`         // Confidence in format detection (0-100)
}

// Format represents container-level information.
type Format struct {
	BaseFormat

	BitRate        string `json:"bit_rate,omitempty"` // Overall bitrate in bits/sec
	FormatLongName string `json:"format_long_name"`   // e.g. "MP2/3 (MPEG audio layer 2/3)"
	Size           string `json:"size,omitempty"`     // File size in bytes as string
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, found := binary.Available(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	var result Result
	if err = json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}
