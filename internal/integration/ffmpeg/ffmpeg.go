// Package ffmpeg wraps the ffmpeg binary to decode an MP3 stream down to
// raw interleaved 32-bit float PCM, the format the spectral analyzer and
// stereo correlation pass operate on.
package ffmpeg

import "time"

const (
	name = "ffmpeg"
	// pcmFormat is the raw sample format requested on ffmpeg's stdout pipe.
	// Decoding straight to float avoids a second quantization step on top
	// of whatever the source MP3 frames already carry.
	pcmFormat = "f32le"
	// codec names the PCM codec matching pcmFormat.
	codec = "pcm_f32le"
	// timeout bounds a single decode; large files or a stuck pipe should
	// fail rather than hang a worker indefinitely.
	timeout = 120 * time.Second
)
