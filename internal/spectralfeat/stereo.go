package spectralfeat

import (
	"math"

	"github.com/farcloser/mp3forensics/internal/types"
)

// Stereo window/hop sizes per spec.md's L/R correlation pass.
const (
	stereoWindowSize = 4096
	stereoHopSize    = 2048
	stereoMaxPoints  = 100
)

// Stereo computes a Pearson correlation trace between left and right
// channels using overlapping windows, downsampled to at most
// stereoMaxPoints points.
func Stereo(left, right []float64, sampleRate int) *types.StereoCorrelation {
	if len(left) == 0 || len(right) == 0 {
		return &types.StereoCorrelation{IsStereo: false, ChannelCount: 1}
	}

	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	out := &types.StereoCorrelation{IsStereo: true, ChannelCount: 2}

	var times, correlations []float64

	for start := 0; start < n; start += stereoHopSize {
		end := start + stereoWindowSize
		if end > n {
			end = n
		}

		if end-start < 2 {
			break
		}

		corr := pearson(left[start:end], right[start:end])

		times = append(times, float64(start)/float64(sampleRate))
		correlations = append(correlations, corr)

		if end == n {
			break
		}
	}

	out.Times, out.Correlations = downsample(times, correlations, stereoMaxPoints)

	if len(out.Correlations) == 0 {
		return out
	}

	out.Min = math.Inf(1)
	out.Max = math.Inf(-1)

	var sum float64

	for _, c := range out.Correlations {
		sum += c

		if c < out.Min {
			out.Min = c
		}

		if c > out.Max {
			out.Max = c
		}
	}

	out.Avg = sum / float64(len(out.Correlations))

	return out
}

// downsample picks at most maxPoints evenly spaced samples from times/values.
func downsample(times, values []float64, maxPoints int) ([]float64, []float64) {
	if len(values) <= maxPoints {
		return times, values
	}

	step := (len(values) + maxPoints - 1) / maxPoints

	var outTimes, outValues []float64

	for i := 0; i < len(values); i += step {
		outTimes = append(outTimes, times[i])
		outValues = append(outValues, values[i])
	}

	return outTimes, outValues
}

// pearson computes the standard Pearson correlation coefficient, clamped
// to [-1, 1]. Per spec, a zero denominator (constant signal) yields 1
// rather than an undefined value.
func pearson(left, right []float64) float64 {
	var sumL, sumR, sumLL, sumRR, sumLR float64

	n := float64(len(left))

	for i := range left {
		l, r := left[i], right[i]
		sumL += l
		sumR += r
		sumLL += l * l
		sumRR += r * r
		sumLR += l * r
	}

	numerator := n*sumLR - sumL*sumR
	denomSq := (n*sumLL - sumL*sumL) * (n*sumRR - sumR*sumR)

	if denomSq <= 0 {
		return 1
	}

	corr := numerator / math.Sqrt(denomSq)

	switch {
	case corr > 1:
		return 1
	case corr < -1:
		return -1
	default:
		return corr
	}
}
