package synth

import "math"

const (
	// peakTarget is the sample magnitude the loudest sample is scaled to.
	peakTarget = 32000.0
	// maxGain caps the gain so that very quiet buffers are not boosted to
	// extreme volume.
	maxGain = 32000.0
)

// Quantize scans the accumulation buffer for its peak magnitude, computes a
// gain that places the peak at 32000, and converts every sample to a signed
// 16-bit value, saturating at the int16 range. A silent buffer stays silent
// regardless of gain. Samples are rounded to the nearest integer so the
// normalized peak lands on 32000 rather than one below it.
func Quantize(buffer []float64) []int16 {
	var peak float64
	for _, s := range buffer {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	gain := float64(maxGain)
	if peak > 0 {
		gain = peakTarget / peak
	}
	if gain > maxGain {
		gain = maxGain
	}

	pcm := make([]int16, len(buffer))
	for i, s := range buffer {
		v := int32(math.Round(s * gain))
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		pcm[i] = int16(v)
	}

	return pcm
}
