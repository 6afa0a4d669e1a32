// Package frame parses MPEG audio frame headers and scans an MP3 stream for
// per-frame bitrate and size statistics.
package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/farcloser/mp3forensics/internal/types"
)

// ErrNoSync is returned when no valid frame sync word can be found.
var ErrNoSync = errors.New("frame: no sync word found")

// ErrShortHeader is returned when fewer than 4 bytes are available to parse
// a header.
var ErrShortHeader = errors.New("frame: short header")

// ErrNoFrames is returned by Scan when zero valid frames were found in the
// stream.
var ErrNoFrames = errors.New("frame: no frames found")

var bitrateTable = [4][4][16]int{
	{ // MPEG 2.5
		{},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	},
	{}, // reserved
	{ // MPEG 2
		{},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	},
	{ // MPEG 1
		{},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	},
}

var sampleRateTable = [4][4]int{
	{11025, 12000, 8000, 0}, // MPEG 2.5
	{0, 0, 0, 0},            // reserved
	{22050, 24000, 16000, 0}, // MPEG 2
	{44100, 48000, 32000, 0}, // MPEG 1
}

// ParseHeader decodes a 4-byte MPEG audio frame header. ok is false when the
// sync word or any reserved field value makes the header unusable.
func ParseHeader(b [4]byte) (types.FrameHeader, bool) {
	h := binary.BigEndian.Uint32(b[:])

	if h&0xFFE00000 != 0xFFE00000 {
		return types.FrameHeader{}, false
	}

	versionBits := (h >> 19) & 0x03
	layerBits := (h >> 17) & 0x03
	bitrateIndex := (h >> 12) & 0x0F
	sampleRateIndex := (h >> 10) & 0x03
	padding := (h>>9)&0x01 == 1
	channelBits := (h >> 6) & 0x03

	if versionBits == 1 || layerBits == 0 || bitrateIndex == 0 || bitrateIndex == 15 || sampleRateIndex == 3 {
		return types.FrameHeader{}, false
	}

	var version types.MPEGVersion

	switch versionBits {
	case 0:
		version = types.MPEGVersion25
	case 2:
		version = types.MPEGVersion2
	case 3:
		version = types.MPEGVersion1
	}

	var layer types.Layer

	switch layerBits {
	case 1:
		layer = types.LayerIII
	case 2:
		layer = types.LayerII
	case 3:
		layer = types.LayerI
	}

	bitrate := bitrateTable[versionBits][layerBits][bitrateIndex]
	sampleRate := sampleRateTable[versionBits][sampleRateIndex]

	if bitrate == 0 || sampleRate == 0 {
		return types.FrameHeader{}, false
	}

	channelMode := types.ChannelMode(channelBits)

	frameSize := frameSizeBytes(layerBits, bitrate, sampleRate, padding)
	if frameSize < 4 {
		return types.FrameHeader{}, false
	}

	samplesPerFrame := 1152

	switch {
	case layer == types.LayerI:
		samplesPerFrame = 384
	case layer == types.LayerII:
		samplesPerFrame = 1152
	case version != types.MPEGVersion1:
		samplesPerFrame = 576
	}

	return types.FrameHeader{
		Version:         version,
		Layer:           layer,
		BitrateKbps:     bitrate,
		SampleRate:      sampleRate,
		Padding:         padding,
		ChannelMode:     channelMode,
		FrameSize:       frameSize,
		SamplesPerFrame: samplesPerFrame,
	}, true
}

func frameSizeBytes(layerBits uint32, bitrateKbps, sampleRate int, padding bool) int {
	bitrate := bitrateKbps * 1000
	pad := 0

	if padding {
		pad = 1
	}

	if layerBits == 3 { // Layer I
		if padding {
			pad = 4
		}

		return 12*bitrate/sampleRate*4 + pad
	}

	return 144*bitrate/sampleRate + pad
}

// SideInfoSize returns the size, in bytes, of the side information block
// that follows the header and (for MPEG1) CRC, used to locate the Xing/Info
// tag offset.
func SideInfoSize(version types.MPEGVersion, mode types.ChannelMode) int {
	mono := mode == types.ChannelMono

	if version == types.MPEGVersion1 {
		if mono {
			return 17
		}

		return 32
	}

	if mono {
		return 9
	}

	return 17
}

// SkipID3v2 consumes an ID3v2 tag, if present, from the start of r and
// returns the number of bytes skipped. It returns 0, nil when no ID3v2
// header is found.
func SkipID3v2(r io.Reader) (int, error) {
	var hdr [10]byte

	n, err := io.ReadFull(r, hdr[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return 0, nil
		}

		return n, err
	}

	if hdr[0] != 'I' || hdr[1] != 'D' || hdr[2] != '3' {
		return 0, nil
	}

	// Syncsafe integer: 4 bytes, 7 significant bits each, MSB first.
	size := int(hdr[6]&0x7F)<<21 | int(hdr[7]&0x7F)<<14 | int(hdr[8]&0x7F)<<7 | int(hdr[9]&0x7F)

	if size > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil && !errors.Is(err, io.EOF) {
			return 10, err
		}
	}

	return 10 + size, nil
}

// maxFindSyncBytes bounds FindSync's search per spec: 10 KiB past the
// ID3-skipped offset before giving up.
const maxFindSyncBytes = 10 * 1024

// FindSync scans r for the first valid frame sync word, returning its byte
// offset from the current position. It gives up after maxFindSyncBytes.
func FindSync(r io.ByteReader) (int64, bool) {
	var window [4]byte

	filled := 0
	offset := int64(0)

	for offset < maxFindSyncBytes {
		b, err := r.ReadByte()
		if err != nil {
			return 0, false
		}

		if filled < 4 {
			window[filled] = b
			filled++
		} else {
			window[0], window[1], window[2], window[3] = window[1], window[2], window[3], b
		}

		if filled == 4 {
			if _, ok := ParseHeader(window); ok {
				return offset - 3, true
			}
		}

		offset++
	}

	return 0, false
}

// maxScanFrames bounds Scan's work on pathological streams that never
// terminate with EOF.
const maxScanFrames = 1_000_000

// Scan walks frames starting at the current position of r: on a successful
// parse it skips ahead by frame_size and reads the next header fresh; on a
// parse failure it slides the 4-byte window forward by one byte and retries,
// matching the spec's resync discipline. It stops at EOF, maxFrames (0
// means unlimited, capped at maxScanFrames), or after finding no frames.
func Scan(r io.Reader, maxFrames int) (types.FrameStats, error) {
	if maxFrames <= 0 || maxFrames > maxScanFrames {
		maxFrames = maxScanFrames
	}

	br := bufio.NewReader(r)

	stats := types.FrameStats{
		Bitrates:   make([]int, 0, 4096),
		FrameSizes: make([]int, 0, 4096),
	}

	var window [4]byte

	filled := 0

	for stats.FrameCount < maxFrames {
		for filled < 4 {
			b, err := br.ReadByte()
			if err != nil {
				if stats.FrameCount == 0 {
					return stats, ErrNoFrames
				}

				return stats, nil
			}

			window[filled] = b
			filled++
		}

		hdr, parsed := ParseHeader(window)
		if !parsed {
			window[0], window[1], window[2] = window[1], window[2], window[3]
			filled = 3

			continue
		}

		stats.Bitrates = append(stats.Bitrates, hdr.BitrateKbps)
		stats.FrameSizes = append(stats.FrameSizes, hdr.FrameSize)
		stats.FrameCount++

		remaining := hdr.FrameSize - 4
		if remaining > 0 {
			if _, err := io.CopyN(io.Discard, br, int64(remaining)); err != nil {
				break
			}
		}

		filled = 0
	}

	if stats.FrameCount == 0 {
		return stats, ErrNoFrames
	}

	return stats, nil
}

// IsVBR reports whether the observed bitrates vary, and returns the
// frame-size coefficient of variation as a percentage (100*stddev/mean).
func IsVBR(stats types.FrameStats) (isVBR bool, frameSizeCV float64) {
	if len(stats.Bitrates) == 0 {
		return false, 0
	}

	first := stats.Bitrates[0]

	for _, b := range stats.Bitrates[1:] {
		if b != first {
			isVBR = true

			break
		}
	}

	frameSizeCV = coefficientOfVariation(stats.FrameSizes)

	return isVBR, frameSizeCV
}

// coefficientOfVariation returns 100*stddev/mean, zero for an empty
// sequence or a zero mean.
func coefficientOfVariation(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64

	for _, v := range values {
		sum += float64(v)
	}

	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var variance float64

	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}

	variance /= float64(len(values))

	return 100 * math.Sqrt(variance) / mean
}

// AverageBitrate returns the mean of the observed per-frame bitrates.
func AverageBitrate(stats types.FrameStats) float64 {
	if len(stats.Bitrates) == 0 {
		return 0
	}

	var sum int

	for _, b := range stats.Bitrates {
		sum += b
	}

	return float64(sum) / float64(len(stats.Bitrates))
}
