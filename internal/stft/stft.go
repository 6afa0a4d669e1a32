// Package stft computes short-time Fourier transform magnitude spectra
// over a mono sample stream, using a Hann-windowed FFT via gonum's fourier
// package. It is the shared front end for every spectral rule.
package stft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DefaultSize is the FFT window length in samples.
const DefaultSize = 8192

// DefaultHop is the stride between successive windows.
const DefaultHop = DefaultSize / 2

// MaxWindows bounds how many windows a single Analyze call processes, to
// keep very long files bounded. A request of 0 is capped to this value too;
// a track with more possible windows gets MaxWindows windows spread evenly
// across it.
const MaxWindows = 200

// Planner owns the FFT plan and scratch buffers for one worker, so a
// worker pool can give each goroutine its own Planner instead of sharing
// gonum's internal state.
type Planner struct {
	size   int
	hop    int
	fft    *fourier.FFT
	window []float64
	scratch []float64
}

// NewPlanner builds a Planner for the given FFT size. size must be a
// positive even number; DefaultSize is used when size is 0.
func NewPlanner(size int) *Planner {
	if size <= 0 {
		size = DefaultSize
	}

	return &Planner{
		size:    size,
		hop:     size / 2,
		fft:     fourier.NewFFT(size),
		window:  hannWindow(size),
		scratch: make([]float64, size),
	}
}

// Windows computes magnitude spectra for evenly distributed FFT windows
// over samples, bounded by maxWindows (0 or a value above MaxWindows means
// MaxWindows). Each returned slice has size/2+1 bins.
func (p *Planner) Windows(samples []float64, maxWindows int) [][]float64 {
	if maxWindows <= 0 || maxWindows > MaxWindows {
		maxWindows = MaxWindows
	}

	positions := windowPositions(len(samples), p.size, maxWindows)
	if len(positions) == 0 {
		return nil
	}

	out := make([][]float64, len(positions))

	for wi, pos := range positions {
		for i := 0; i < p.size; i++ {
			p.scratch[i] = samples[pos+i] * p.window[i]
		}

		coeffs := p.fft.Coefficients(nil, p.scratch)

		mag := make([]float64, len(coeffs))
		for i, c := range coeffs {
			mag[i] = math.Hypot(real(c), imag(c))
		}

		out[wi] = mag
	}

	return out
}

// BinHz returns the frequency spacing, in Hz, between adjacent bins for a
// planner processing samples at sampleRate.
func (p *Planner) BinHz(sampleRate int) float64 {
	return float64(sampleRate) / float64(p.size)
}

// Size returns the planner's FFT window length.
func (p *Planner) Size() int {
	return p.size
}

// windowPositions returns evenly spaced FFT window start offsets. When the
// track has fewer possible windows than maxWindows, every window is
// returned; otherwise maxWindows positions are distributed evenly.
func windowPositions(totalSamples, fftSize, maxWindows int) []int {
	available := totalSamples - fftSize
	if available < 0 {
		return nil
	}

	hopSize := fftSize / 2
	totalPossible := available/hopSize + 1

	if totalPossible <= maxWindows {
		positions := make([]int, 0, totalPossible)
		for pos := 0; pos+fftSize <= totalSamples; pos += hopSize {
			positions = append(positions, pos)
		}

		return positions
	}

	positions := make([]int, maxWindows)
	if maxWindows == 1 {
		positions[0] = available / 2

		return positions
	}

	for i := range maxWindows {
		positions[i] = available * i / (maxWindows - 1)
	}

	return positions
}

func hannWindow(size int) []float64 {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return window
}

// ToDb converts a magnitude spectrum to decibels, flooring non-positive
// magnitudes at floorDb.
func ToDb(magnitude []float64, floorDb float64) []float64 {
	decibels := make([]float64, len(magnitude))

	for i, m := range magnitude {
		if m > 0 {
			decibels[i] = 20 * math.Log10(m)
		} else {
			decibels[i] = floorDb
		}
	}

	return decibels
}

// Average combines a set of per-window magnitude spectra into a single
// mean spectrum.
func Average(windows [][]float64) []float64 {
	if len(windows) == 0 {
		return nil
	}

	avg := make([]float64, len(windows[0]))

	for _, w := range windows {
		for i, m := range w {
			avg[i] += m
		}
	}

	n := float64(len(windows))
	for i := range avg {
		avg[i] /= n
	}

	return avg
}
