package edf2cfs

import (
	"math"

	"github.com/MatusOllah/resona/dsp/window"
)

// firOrder is the fixed FIR filter order N from spec §4.2; the
// resulting filter has N+1 taps and group delay N/2 samples.
const firOrder = 50

// hammingWindow returns the length-n Hamming window, obtained by
// applying resona's window.Hamming to an all-ones signal — the same
// library the FIR designer in the example pack uses to window its
// windowed-sinc coefficients.
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	window.MustApply(w, window.Hamming)
	return w
}

// sinc is the normalised sinc function, sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// DesignBandpass builds the length-(N+1) linear-phase FIR band-pass
// filter described in spec §4.2: a windowed-ideal-lowpass-difference
// design, Hamming-windowed, not renormalised after windowing (the
// reference gain is intentionally left as-is).
func DesignBandpass(fs, lowHz, highHz float64) []float64 {
	taps := firOrder + 1
	fl := 2 * lowHz / fs
	fh := 2 * highHz / fs

	w := hammingWindow(taps)
	h := make([]float64, taps)
	half := float64(firOrder) / 2

	for i := 0; i < taps; i++ {
		x := float64(i) - half
		h[i] = w[i] * (fh*sinc(fh*x) - fl*sinc(fl*x))
	}
	return h
}

// ConvolveSame applies h to x in "same" mode: the output has the same
// length as x, centre-aligned on the filter's group delay and
// zero-padded at the edges (spec §4.2, DESIGN NOTES). For a
// length-(N+1) filter with N even, the delay is exactly N/2 samples.
func ConvolveSame(x, h []float64) []float64 {
	l := len(h)
	delay := (l - 1) / 2
	out := make([]float64, len(x))

	for k := range x {
		var sum float64
		for m := 0; m < l; m++ {
			idx := k - m + delay
			if idx >= 0 && idx < len(x) {
				sum += h[m] * x[idx]
			}
		}
		out[k] = sum
	}
	return out
}

// eegPassband and eogPassband are the fixed filter bands from spec §4.2.
var (
	eegPassband = [2]float64{0.3, 45.0}
	eogPassband = [2]float64{0.3, 12.0}
)

// FilterEEG band-pass filters c3 and c4 independently at fs and
// averages the two filtered series sample-wise. The per-channel
// filter-then-average order (rather than filtering an average) is
// required for bit-identical output (spec §9 open question).
func FilterEEG(c3, c4 RawChannel, fs float64) RawChannel {
	h := DesignBandpass(fs, eegPassband[0], eegPassband[1])
	f3 := ConvolveSame(c3, h)
	f4 := ConvolveSame(c4, h)

	out := make(RawChannel, len(f3))
	for i := range out {
		out[i] = (f3[i] + f4[i]) / 2
	}
	return out
}

// FilterEOG band-pass filters a single EOG channel at fs.
func FilterEOG(eog RawChannel, fs float64) RawChannel {
	h := DesignBandpass(fs, eogPassband[0], eogPassband[1])
	return ConvolveSame(eog, h)
}
