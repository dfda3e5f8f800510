package decode

import (
	"strconv"
	"strings"
)

// buildEDF assembles a minimal synthetic EDF byte image spanning the
// full fixed-width ASCII header layout DecodeHeader/DecodeSignals
// parse, followed by nRecords data records of interleaved int16
// little-endian samples.
func buildEDF(labels []string, samplesPerRecord []int, nRecords int, recordDuration float64, digitalRange [2]int, physicalRange [2]float64, fill func(signal, record, sample int) int16) []byte {
	ns := len(labels)

	field := func(s string, width int) string {
		if len(s) >= width {
			return s[:width]
		}
		return s + strings.Repeat(" ", width-len(s))
	}

	var buf []byte
	write := func(s string) { buf = append(buf, []byte(s)...) }

	headerBytes := 256 + ns*256

	write(field("0", 8))
	write(field("", 80)) // patient id
	write(field("", 80)) // recording id
	write(field("01.01.85", 8))
	write(field("00.00.00", 8))
	write(field(strconv.Itoa(headerBytes), 8))
	write(field("", 44)) // reserved
	write(field(strconv.Itoa(nRecords), 8))
	write(field(strconv.FormatFloat(recordDuration, 'f', -1, 64), 8))
	write(field(strconv.Itoa(ns), 4))

	for _, l := range labels {
		write(field(l, 16))
	}
	for range labels {
		write(field("", 80)) // transducer type
	}
	for range labels {
		write(field("uV", 8))
	}
	for range labels {
		write(field(strconv.FormatFloat(physicalRange[0], 'f', -1, 64), 8))
	}
	for range labels {
		write(field(strconv.FormatFloat(physicalRange[1], 'f', -1, 64), 8))
	}
	for range labels {
		write(field(strconv.Itoa(digitalRange[0]), 8))
	}
	for range labels {
		write(field(strconv.Itoa(digitalRange[1]), 8))
	}
	for range labels {
		write(field("", 80)) // prefiltering
	}
	for _, n := range samplesPerRecord {
		write(field(strconv.Itoa(n), 8))
	}
	for range labels {
		write(field("", 32)) // reserved
	}

	for r := 0; r < nRecords; r++ {
		for sidx, n := range samplesPerRecord {
			for s := 0; s < n; s++ {
				var v int16
				if fill != nil {
					v = fill(sidx, r, s)
				}
				buf = append(buf, byte(v), byte(v>>8))
			}
		}
	}

	return buf
}
