package mp3forensics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farcloser/mp3forensics/internal/binaryrules"
	"github.com/farcloser/mp3forensics/internal/frame"
	"github.com/farcloser/mp3forensics/internal/fusion"
	"github.com/farcloser/mp3forensics/internal/lametag"
	"github.com/farcloser/mp3forensics/internal/pcm"
	"github.com/farcloser/mp3forensics/internal/signature"
	"github.com/farcloser/mp3forensics/internal/spectralfeat"
	"github.com/farcloser/mp3forensics/internal/spectralrules"
	"github.com/farcloser/mp3forensics/internal/stft"
	"github.com/farcloser/mp3forensics/internal/types"
)

// Analyze runs the complete forensic pipeline against a single file: an
// MP3 frame scan, LAME tag and encoder signature recovery (always), and,
// unless opts.SkipSpectral is set, a PCM decode followed by an STFT-based
// spectral scan. The binary and spectral scores are merged by
// internal/fusion into a single verdict.
//
// A Go error is only returned for failures outside the forensic model
// itself (the file cannot be opened or read). Parsing and decode failures
// are local: frame sync loss, a missing LAME tag, or a failed PCM decode
// degrade the corresponding score to zero and surface as an ERROR verdict
// only when every signal is unavailable at once.
func Analyze(ctx context.Context, filePath string, opts Options) (*types.AnalysisResult, error) {
	if opts.Thresholds == (fusion.Thresholds{}) {
		opts.Thresholds = fusion.DefaultThresholds()
	}

	//nolint:gosec // filePath is caller-provided; this package performs no path construction of its own
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	idEnd, err := frame.SkipID3v2(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("skipping id3 tag: %w", err)
	}

	if idEnd > len(data) {
		idEnd = len(data)
	}

	audioData := data[idEnd:]

	stats, scanErr := frame.Scan(bytes.NewReader(audioData), 0)

	noFrames := errors.Is(scanErr, frame.ErrNoFrames)
	if scanErr != nil && !noFrames {
		return nil, fmt.Errorf("scanning frames: %w", scanErr)
	}

	lame := firstFrameLAME(audioData)
	sig := signature.Scan(data)

	result := &types.AnalysisResult{
		FilePath:   filePath,
		FileName:   filepath.Base(filePath),
		Encoder:    lame.EncoderVersion,
		HasLowpass: lame.HasLowpass,
		Lowpass:    lame.LowpassHz,
	}

	declaredBitrateKbps := int(frame.AverageBitrate(stats))

	var (
		spectral      types.SpectralDetails
		spectralScore float64
		spectralFlags []string
		decodeFailed  bool
	)

	if !opts.SkipSpectral {
		decodeFailed = !runSpectralPass(ctx, filePath, opts, result, &spectral, &spectralScore, &spectralFlags, &declaredBitrateKbps)
	}

	if decodeFailed && noFrames {
		result.Verdict = types.VerdictError
		result.Error = "decode failure: no PCM samples and no MP3 frame sync"

		return result, nil
	}

	binaryScore, binaryFlags, binaryDetails := binaryrules.Evaluate(lame, sig, stats, declaredBitrateKbps)

	verdict, combined, flags := fusion.Fuse(spectralScore, binaryScore, spectralFlags, binaryFlags, opts.Thresholds)

	result.Bitrate = declaredBitrateKbps
	result.Verdict = verdict
	result.CombinedScore = combined
	result.SpectralScore = spectralScore
	result.BinaryScore = binaryScore
	result.Flags = flags
	result.BinaryDetails = &binaryDetails

	if !opts.SkipSpectral && !decodeFailed {
		result.SpectralDetails = &spectral
	}

	return result, nil
}

// runSpectralPass decodes the file's PCM, runs the STFT and spectral
// feature extraction, and fills in the caller's spectral outputs. It
// reports false when decoding produced no usable samples, the only
// condition under which the spectral engine contributes nothing.
func runSpectralPass(
	ctx context.Context,
	filePath string,
	opts Options,
	result *types.AnalysisResult,
	spectral *types.SpectralDetails,
	spectralScore *float64,
	spectralFlags *[]string,
	declaredBitrateKbps *int,
) bool {
	audio, err := pcm.Decode(ctx, filePath, opts.StreamIndex)
	if err != nil || len(audio.Channels) == 0 || len(audio.Channels[0]) == 0 {
		return false
	}

	if audio.BitrateKbps > 0 {
		*declaredBitrateKbps = audio.BitrateKbps
	}

	result.SampleRate = audio.SampleRate
	result.DurationSecs = audio.DurationSecs

	planner := stft.NewPlanner(opts.FFTSize)
	windows := planner.Windows(downmix(audio.Channels), opts.MaxWindows)
	binHz := planner.BinHz(audio.SampleRate)

	*spectral = spectralfeat.Extract(windows, binHz)
	hopSeconds := float64(planner.Size()/2) / float64(audio.SampleRate)
	spectral.Spectrogram = spectralfeat.Spectrogram(windows, binHz, hopSeconds)

	if audio.NumChannels == 2 {
		spectral.Stereo = spectralfeat.Stereo(audio.Channels[0], audio.Channels[1], audio.SampleRate)
	}

	*spectralScore, *spectralFlags = spectralrules.Evaluate(*spectral)

	return true
}

// downmix folds all channels into a single arithmetic-mean mono signal for
// the spectral pipeline, which operates on the full program content rather
// than an arbitrary single channel.
func downmix(channels [][]float64) []float64 {
	if len(channels) == 1 {
		return channels[0]
	}

	n := len(channels[0])

	mono := make([]float64, n)

	for _, ch := range channels {
		for i := 0; i < n && i < len(ch); i++ {
			mono[i] += ch[i]
		}
	}

	count := float64(len(channels))
	for i := range mono {
		mono[i] /= count
	}

	return mono
}

// firstFrameLAME locates the first valid frame in audioData (post-ID3) and
// parses its Xing/Info and LAME/Lavc tag, if any. It returns a zero
// LAMEHeader rather than an error when no tag is found, per the pipeline's
// "local failure, not exceptional control flow" design.
func firstFrameLAME(audioData []byte) types.LAMEHeader {
	syncOffset, ok := frame.FindSync(bytes.NewReader(audioData))
	if !ok {
		return types.LAMEHeader{}
	}

	start := int(syncOffset)
	if start+4 > len(audioData) {
		return types.LAMEHeader{}
	}

	var hdrArr [4]byte

	copy(hdrArr[:], audioData[start:start+4])

	hdr, ok := frame.ParseHeader(hdrArr)
	if !ok {
		return types.LAMEHeader{}
	}

	end := start + hdr.FrameSize
	if end > len(audioData) {
		end = len(audioData)
	}

	lame, _ := lametag.Parse(audioData[start:end])

	return lame
}
