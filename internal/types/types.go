// Package types holds the shared data model for the forensic core: frame
// statistics, LAME tag contents, encoder signatures, spectral features, and
// the final analysis result. Engines communicate exclusively through these
// value types so the binary and spectral passes stay independent of each
// other until fusion.
package types

// Verdict is the final classification for a file.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictSuspect
	VerdictTranscode
	VerdictError
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "OK"
	case VerdictSuspect:
		return "SUSPECT"
	case VerdictTranscode:
		return "TRANSCODE"
	case VerdictError:
		return "ERROR"
	}

	return "unknown"
}

// MPEGVersion identifies the MPEG audio version of a frame.
type MPEGVersion int

const (
	MPEGVersionInvalid MPEGVersion = iota
	MPEGVersion1
	MPEGVersion2
	MPEGVersion25
)

func (v MPEGVersion) String() string {
	switch v {
	case MPEGVersion1:
		return "MPEG1"
	case MPEGVersion2:
		return "MPEG2"
	case MPEGVersion25:
		return "MPEG2.5"
	}

	return "invalid"
}

// Layer identifies the MPEG audio layer of a frame.
type Layer int

const (
	LayerInvalid Layer = iota
	LayerI
	LayerII
	LayerIII
)

func (l Layer) String() string {
	switch l {
	case LayerI:
		return "I"
	case LayerII:
		return "II"
	case LayerIII:
		return "III"
	}

	return "invalid"
}

// ChannelMode identifies the channel layout of a frame.
type ChannelMode int

const (
	ChannelStereo ChannelMode = iota
	ChannelJointStereo
	ChannelDual
	ChannelMono
)

func (c ChannelMode) String() string {
	switch c {
	case ChannelStereo:
		return "Stereo"
	case ChannelJointStereo:
		return "JointStereo"
	case ChannelDual:
		return "DualChannel"
	case ChannelMono:
		return "Mono"
	}

	return "unknown"
}

// FrameHeader is a decoded 4-byte MPEG audio frame header.
type FrameHeader struct {
	Version         MPEGVersion
	Layer           Layer
	BitrateKbps     int
	SampleRate      int
	Padding         bool
	ChannelMode     ChannelMode
	FrameSize       int
	SamplesPerFrame int
}

// FrameStats aggregates per-frame bitrate and size observations from one
// scan pass over an MP3 stream.
type FrameStats struct {
	Bitrates   []int
	FrameSizes []int
	FrameCount int
}

// LAMEHeader holds the fields recovered from the Xing/Info tag and the
// adjacent LAME/Lavc subtag.
type LAMEHeader struct {
	EncoderVersion string
	HasLowpass     bool
	LowpassHz      int
	VBRMethod      int
	Quality        int
	IsVBRHeader    bool // true for "Xing", false for "Info"
	HasTotals      bool
	TotalFrames    uint32
	TotalBytes     uint32
}

// EncoderSignatures holds the per-encoder occurrence counts found while
// scanning the header region of a file for known encoder fingerprints.
type EncoderSignatures struct {
	LAMECount       int
	LavfCount       int
	LavcCount       int
	FraunhoferCount int
	HasITunes       bool
	HasXing         bool
	HasFFmpeg       bool
	HasGOGO         bool
	HasBladeEnc     bool
	HasShine        bool
	HasHelix        bool
	Other           []string
}

// FFmpegCount returns max(lavf, lavc), or lavf+lavc when both independently
// recur more than once (indicating separate encode passes).
func (s EncoderSignatures) FFmpegCount() int {
	if s.LavfCount > 1 && s.LavcCount > 1 {
		return s.LavfCount + s.LavcCount
	}

	if s.LavfCount > s.LavcCount {
		return s.LavfCount
	}

	return s.LavcCount
}

// UniqueEncoderCount returns the number of distinct encoder families with
// at least one occurrence.
func (s EncoderSignatures) UniqueEncoderCount() int {
	count := 0

	if s.LAMECount > 0 {
		count++
	}

	if s.LavfCount > 0 || s.LavcCount > 0 {
		count++
	}

	if s.FraunhoferCount > 0 {
		count++
	}

	if s.HasITunes {
		count++
	}

	if s.HasGOGO {
		count++
	}

	if s.HasBladeEnc {
		count++
	}

	if s.HasShine {
		count++
	}

	if s.HasHelix {
		count++
	}

	return count
}

// TotalEncoderPasses estimates how many distinct encode passes the header
// region shows evidence of. The arithmetic can under- or over-count with
// mixed encoders; Reencoded is the authoritative boolean, not this value.
func (s EncoderSignatures) TotalEncoderPasses() int {
	total := 0

	if s.LAMECount > 0 {
		total += s.LAMECount - 1
	}

	total += s.LavfCount + s.FraunhoferCount

	if s.HasITunes {
		total++
	}

	total += len(s.Other)

	unique := s.UniqueEncoderCount()
	if unique > 1 && total < unique {
		total = unique
	}

	if total < 1 && unique >= 1 {
		total = 1
	}

	return total
}

// Reencoded reports whether the header region shows evidence of more than
// one independent encoding pass.
func (s EncoderSignatures) Reencoded() bool {
	return s.LAMECount > 1 ||
		s.LavfCount > 1 ||
		s.FraunhoferCount > 1 ||
		s.TotalEncoderPasses() > 1 ||
		s.UniqueEncoderCount() > 1
}

// BinaryDetails is the aggregated evidence produced by the binary/structural
// analyzer, consumed by fusion.
type BinaryDetails struct {
	Lowpass         int
	ExpectedLowpass int
	EncoderVersion  string
	EncoderCount    int
	FrameSizeCV     float64
	IsVBR           bool
	TotalFrames     int
	LAMECount       int
	LavfCount       int
	FraunhoferCount int
	EncodingChain   string
	Reencoded       bool
}

// SpectrogramData is the optional time/frequency downsampled magnitude grid
// produced during STFT analysis, in dB with a -96 floor.
type SpectrogramData struct {
	Times         []float64
	Frequencies   []float64
	Magnitudes    []float64 // flattened, row-major: NumTimeSlices rows of NumFreqBins columns
	NumTimeSlices int
	NumFreqBins   int
}

// StereoCorrelation is the per-window L/R Pearson correlation trace.
type StereoCorrelation struct {
	Times        []float64
	Correlations []float64
	Avg          float64
	Min          float64
	Max          float64
	IsStereo     bool
	ChannelCount int
}

// SpectralDetails is the per-file output of the spectral feature
// extractor: RMS energy in named frequency bands, the inter-band drops
// that characterize a lossy codec's lowpass cliff, and ultrasonic
// flatness. All dB fields are floored at -96.
type SpectralDetails struct {
	RMSFullDb       float64 // 20 Hz-20 kHz
	RMSMidHighDb    float64 // 10-15 kHz
	RMSHighDb       float64 // 15-20 kHz
	RMSUpperDb      float64 // 17-20 kHz
	RMS1920kDb      float64 // 19-20 kHz
	RMSUltrasonicDb float64 // 20-22 kHz

	HighDrop       float64 // RMSFullDb - RMSHighDb
	UpperDrop      float64 // RMSMidHighDb - RMSUpperDb
	UltrasonicDrop float64 // RMS1920kDb - RMSUltrasonicDb

	UltrasonicFlatness float64 // Wiener entropy in 19-21 kHz, 0..1

	Spectrogram *SpectrogramData
	Stereo      *StereoCorrelation
}

// AnalysisResult is the immutable, per-file output of the complete pipeline.
type AnalysisResult struct {
	FilePath        string
	FileName        string
	Bitrate         int
	SampleRate      int
	DurationSecs    float64
	Verdict         Verdict
	CombinedScore   float64
	SpectralScore   float64
	BinaryScore     float64
	Flags           []string
	Encoder         string
	HasLowpass      bool
	Lowpass         int
	SpectralDetails *SpectralDetails
	BinaryDetails   *BinaryDetails
	Error           string
}
