// Package ffprobe wraps the ffprobe binary to recover container-level
// metadata (sample rate, channel count, duration, bitrate) ahead of PCM
// extraction.
package ffprobe

import "time"

const (
	name = "ffprobe"
	// Slow hard-drives spinning up or network retrieved resources may cause timeouts if too aggressive.
	timeout = 60 * time.Second
)
