package edf2cfs

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// STFT parameters fixed by spec §4.4.
const (
	stftWindow   = 128 // W
	epochSamples = 3000 // P, 30s at 100Hz
	stftHop      = 90  // H
	timeBins     = 32  // T
	freqBins     = 32  // first 32 DFT bins, DC through bin 31
	tensorChans  = 3   // EEG, EOG-left, EOG-right
)

// FeatureTensor is the dense [E, 3, 32, 32] float32 array described
// in spec §3, flattened in epoch-major, channel, time, frequency
// order.
type FeatureTensor struct {
	Epochs int
	Data   []float32
}

// At returns the magnitude value for (epoch, channel, time bin, freq bin).
func (t FeatureTensor) At(e, c, tb, f int) float32 {
	idx := ((e*tensorChans+c)*timeBins+tb)*freqBins + f
	return t.Data[idx]
}

// stftPlan holds the per-worker FFT plan and window, sized once for
// the fixed W=128 frame length (spec §5: "per-thread plans of fixed
// size W=128" rather than a single shared plan guarded by a mutex).
type stftPlan struct {
	fft    *fourier.FFT
	window []float64
}

func newSTFTPlan() *stftPlan {
	return &stftPlan{
		fft:    fourier.NewFFT(stftWindow),
		window: hammingWindow(stftWindow),
	}
}

// frame extracts W samples from x starting at start, zero-padding any
// positions beyond the end of x.
func (p *stftPlan) frame(x RawChannel, start int) []float64 {
	out := make([]float64, stftWindow)
	for i := 0; i < stftWindow; i++ {
		idx := start + i
		if idx >= 0 && idx < len(x) {
			out[i] = x[idx] * p.window[i]
		}
	}
	return out
}

// magnitudes runs the real-to-complex DFT over frame and returns the
// magnitude of the first freqBins coefficients (DC through bin 31).
func (p *stftPlan) magnitudes(frame []float64) []float64 {
	coeffs := p.fft.Coefficients(nil, frame)
	out := make([]float64, freqBins)
	for f := 0; f < freqBins; f++ {
		re := real(coeffs[f])
		im := imag(coeffs[f])
		out[f] = math.Hypot(re, im)
	}
	return out
}

// channelEpoch fills the time x frequency block for one channel of
// one epoch: time bins t=0..31 start at j=t*H within the epoch.
func (p *stftPlan) channelEpoch(x RawChannel, epochStart int, dst []float32) {
	for t := 0; t < timeBins; t++ {
		j := epochStart + t*stftHop
		mags := p.magnitudes(p.frame(x, j))
		base := t * freqBins
		for f := 0; f < freqBins; f++ {
			dst[base+f] = float32(mags[f])
		}
	}
}

// ExtractFeatures computes the feature tensor from the three
// resampled channels, in the fixed order {EEG, EOG-left, EOG-right}
// (spec §4.4). Epoch count is derived solely from the EEG channel's
// resampled length; any trailing samples beyond E*P are discarded.
func ExtractFeatures(eeg, eogLeft, eogRight RawChannel) FeatureTensor {
	epochs := len(eeg) / epochSamples
	tensor := FeatureTensor{
		Epochs: epochs,
		Data:   make([]float32, epochs*tensorChans*timeBins*freqBins),
	}
	if epochs == 0 {
		return tensor
	}

	plan := newSTFTPlan()
	channels := [tensorChans]RawChannel{eeg, eogLeft, eogRight}

	for e := 0; e < epochs; e++ {
		epochStart := e * epochSamples
		for c := 0; c < tensorChans; c++ {
			blockStart := (e*tensorChans + c) * timeBins * freqBins
			plan.channelEpoch(channels[c], epochStart, tensor.Data[blockStart:blockStart+timeBins*freqBins])
		}
	}

	return tensor
}
