// Package spectralfeat extracts the named-band RMS energies, inter-band
// drops, and ultrasonic flatness that characterize a lossy codec's
// lowpass cliff from a set of STFT magnitude windows. It never makes a
// verdict call itself; internal/spectralrules does that from these
// features.
package spectralfeat

import (
	"math"

	"github.com/farcloser/mp3forensics/internal/stft"
	"github.com/farcloser/mp3forensics/internal/types"
)

// DbFloor is the value assigned whenever a band's energy is zero or
// negative, per spec: to_db(v <= 0) = -96.
const DbFloor = -96.0

// band boundaries in Hz, named exactly as spec.md's Spectral Details entity.
var (
	bandFull       = [2]float64{20, 20000}
	bandMidHigh    = [2]float64{10000, 15000}
	bandHigh       = [2]float64{15000, 20000}
	bandUpper      = [2]float64{17000, 20000}
	band1920k      = [2]float64{19000, 20000}
	bandUltrasonic = [2]float64{20000, 22000}
	flatnessBand   = [2]float64{19000, 21000}
)

// Extract computes the band RMS energies, drops, and ultrasonic flatness
// from a set of per-window magnitude spectra at the given bin resolution.
func Extract(windows [][]float64, binHz float64) types.SpectralDetails {
	var d types.SpectralDetails

	if len(windows) == 0 {
		d.RMSFullDb, d.RMSMidHighDb, d.RMSHighDb = DbFloor, DbFloor, DbFloor
		d.RMSUpperDb, d.RMS1920kDb, d.RMSUltrasonicDb = DbFloor, DbFloor, DbFloor

		return d
	}

	d.RMSFullDb = bandRMSDb(windows, binHz, bandFull)
	d.RMSMidHighDb = bandRMSDb(windows, binHz, bandMidHigh)
	d.RMSHighDb = bandRMSDb(windows, binHz, bandHigh)
	d.RMSUpperDb = bandRMSDb(windows, binHz, bandUpper)
	d.RMS1920kDb = bandRMSDb(windows, binHz, band1920k)
	d.RMSUltrasonicDb = bandRMSDb(windows, binHz, bandUltrasonic)

	d.HighDrop = d.RMSFullDb - d.RMSHighDb
	d.UpperDrop = d.RMSMidHighDb - d.RMSUpperDb
	d.UltrasonicDrop = d.RMS1920kDb - d.RMSUltrasonicDb

	d.UltrasonicFlatness = ultrasonicFlatness(windows, binHz)

	return d
}

// bandBins returns the inclusive bin range [lo, hi] covering [f_lo, f_hi],
// clamped to the available spectrum.
func bandBins(binHz float64, band [2]float64, n int) (lo, hi int) {
	lo = int(band[0] / binHz)
	hi = int(band[1] / binHz)

	if lo < 0 {
		lo = 0
	}

	if hi >= n {
		hi = n - 1
	}

	return lo, hi
}

// toDb converts an amplitude value to dB, floored at -96 per spec's to_db.
func toDb(v float64) float64 {
	if v <= 0 {
		return DbFloor
	}

	return 20 * math.Log10(v)
}

// bandRMSDb computes, for each window, sqrt(sum of |X[k]|^2) over the
// band's bins, averages that per-window energy across all windows, and
// converts the result to dB.
func bandRMSDb(windows [][]float64, binHz float64, band [2]float64) float64 {
	lo, hi := bandBins(binHz, band, len(windows[0]))
	if lo > hi {
		return DbFloor
	}

	var total float64

	for _, w := range windows {
		end := hi
		if end >= len(w) {
			end = len(w) - 1
		}

		var sumSq float64

		for i := lo; i <= end; i++ {
			sumSq += w[i] * w[i]
		}

		total += math.Sqrt(sumSq)
	}

	return toDb(total / float64(len(windows)))
}

// ultrasonicFlatness concatenates raw magnitudes in the 19-21 kHz band
// across every window and computes the Wiener entropy (geometric mean
// over arithmetic mean), 0 when the arithmetic mean is non-positive.
func ultrasonicFlatness(windows [][]float64, binHz float64) float64 {
	lo, hi := bandBins(binHz, flatnessBand, len(windows[0]))
	if lo > hi {
		return 0
	}

	var arithmeticSum, logSum float64

	count := 0

	for _, w := range windows {
		end := hi
		if end >= len(w) {
			end = len(w) - 1
		}

		for i := lo; i <= end; i++ {
			m := w[i]
			arithmeticSum += m
			logSum += math.Log(m + 1e-10)
			count++
		}
	}

	if count == 0 {
		return 0
	}

	arithmeticMean := arithmeticSum / float64(count)
	if arithmeticMean <= 0 {
		return 0
	}

	geometricMean := math.Exp(logSum / float64(count))

	return geometricMean / arithmeticMean
}

// spectrogramTargetBins is F_target from spec.md's spectrogram downsample.
const spectrogramTargetBins = 128

// spectrogramTargetSlices is the target number of time slices after
// downsampling, per spec.md's dt = max(1, floor(W/100)).
const spectrogramTargetSlices = 100

// Spectrogram builds a time/frequency downsampled magnitude grid in dB,
// floored at -96, from the full set of STFT windows.
func Spectrogram(windows [][]float64, binHz, hopSeconds float64) *types.SpectrogramData {
	if len(windows) == 0 {
		return nil
	}

	fftBins := len(windows[0])

	freqDownsample := fftBins / spectrogramTargetBins
	if freqDownsample < 1 {
		freqDownsample = 1
	}

	timeDownsample := len(windows) / spectrogramTargetSlices
	if timeDownsample < 1 {
		timeDownsample = 1
	}

	var times, freqs []float64

	for f := 0; f < fftBins; f += freqDownsample {
		freqs = append(freqs, float64(f)*binHz)
	}

	magnitudes := make([]float64, 0, (len(windows)/timeDownsample+1)*len(freqs))

	slices := 0

	for t := 0; t < len(windows); t += timeDownsample {
		magDb := stft.ToDb(windows[t], DbFloor)

		for f := 0; f < fftBins; f += freqDownsample {
			magnitudes = append(magnitudes, magDb[f])
		}

		times = append(times, float64(t)*hopSeconds)
		slices++
	}

	return &types.SpectrogramData{
		Times:         times,
		Frequencies:   freqs,
		Magnitudes:    magnitudes,
		NumTimeSlices: slices,
		NumFreqBins:   len(freqs),
	}
}
