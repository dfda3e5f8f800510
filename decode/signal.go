package decode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SignalMeta describes one physical channel's header metadata: its
// label, how many samples it contributes per data record, the file's
// record duration (shared across all signals), its physical unit
// string, its digital/physical scaling range, and its index within
// the EDF signal list.
//
// Sample rate = SamplesPerRecord / RecordDuration (spec §3 invariant).
type SignalMeta struct {
	Index            int
	Label            string
	PhysicalUnit     string
	SamplesPerRecord int
	NumDataRecords   int
	RecordDuration   float64

	physicalMin float64
	physicalMax float64
	digitalMin  float64
	digitalMax  float64
}

// Rate returns the signal's nominal sample rate in Hz.
func (s SignalMeta) Rate() float64 {
	if s.RecordDuration == 0 {
		return 0
	}
	return float64(s.SamplesPerRecord) / s.RecordDuration
}

// NSamples returns the total number of samples the signal contributes
// across the whole file.
func (s SignalMeta) NSamples() int {
	return s.SamplesPerRecord * s.NumDataRecords
}

// gain is the scale factor of the standard EDF digital-to-physical
// conversion: physical = physicalMin + (digital - digitalMin) * gain.
func (s SignalMeta) gain() float64 {
	span := s.digitalMax - s.digitalMin
	if span == 0 {
		return 1
	}
	return (s.physicalMax - s.physicalMin) / span
}

// DecodeSignals reads the per-signal header blocks that follow the
// main header: ns labels, then ns transducer types, then ns physical
// dimensions, and so on, per the EDF field layout. hdr.NumSignals
// determines ns.
func DecodeSignals(stream Stream, hdr Header) ([]SignalMeta, error) {
	ns := hdr.NumSignals
	if ns <= 0 {
		return nil, fmt.Errorf("decode: non-positive signal count %d", ns)
	}

	readBlock := func(fieldWidth int) ([]string, error) {
		buf := make([]byte, fieldWidth*ns)
		if _, err := io.ReadFull(stream, buf); err != nil {
			return nil, err
		}
		out := make([]string, ns)
		for i := 0; i < ns; i++ {
			out[i] = strings.TrimSpace(string(buf[i*fieldWidth : (i+1)*fieldWidth]))
		}
		return out, nil
	}

	labels, err := readBlock(16)
	if err != nil {
		return nil, fmt.Errorf("decode: labels: %w", err)
	}
	if _, err := readBlock(80); err != nil { // transducer type, unused
		return nil, fmt.Errorf("decode: transducer types: %w", err)
	}
	dims, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: physical dimensions: %w", err)
	}
	physMins, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: physical minimums: %w", err)
	}
	physMaxs, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: physical maximums: %w", err)
	}
	digMins, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: digital minimums: %w", err)
	}
	digMaxs, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: digital maximums: %w", err)
	}
	if _, err := readBlock(80); err != nil { // prefiltering, unused
		return nil, fmt.Errorf("decode: prefiltering: %w", err)
	}
	spr, err := readBlock(8)
	if err != nil {
		return nil, fmt.Errorf("decode: samples per record: %w", err)
	}
	if _, err := readBlock(32); err != nil { // reserved, unused
		return nil, fmt.Errorf("decode: signal reserved block: %w", err)
	}

	signals := make([]SignalMeta, ns)
	for i := 0; i < ns; i++ {
		samplesPerRecord, err := strconv.Atoi(spr[i])
		if err != nil {
			return nil, fmt.Errorf("decode: samples per record for signal %d: %w", i, err)
		}
		physMin, err := strconv.ParseFloat(physMins[i], 64)
		if err != nil {
			return nil, fmt.Errorf("decode: physical minimum for signal %d: %w", i, err)
		}
		physMax, err := strconv.ParseFloat(physMaxs[i], 64)
		if err != nil {
			return nil, fmt.Errorf("decode: physical maximum for signal %d: %w", i, err)
		}
		digMin, err := strconv.ParseFloat(digMins[i], 64)
		if err != nil {
			return nil, fmt.Errorf("decode: digital minimum for signal %d: %w", i, err)
		}
		digMax, err := strconv.ParseFloat(digMaxs[i], 64)
		if err != nil {
			return nil, fmt.Errorf("decode: digital maximum for signal %d: %w", i, err)
		}

		signals[i] = SignalMeta{
			Index:            i,
			Label:            labels[i],
			PhysicalUnit:     dims[i],
			SamplesPerRecord: samplesPerRecord,
			NumDataRecords:   hdr.NumDataRecords,
			RecordDuration:   hdr.RecordDuration,
			physicalMin:      physMin,
			physicalMax:      physMax,
			digitalMin:       digMin,
			digitalMax:       digMax,
		}
	}

	return signals, nil
}
