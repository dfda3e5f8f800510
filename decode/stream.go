// Package decode implements the minimal EDF reader assumed available by
// the conversion pipeline: enough to list per-channel signal metadata
// and extract one channel's physical-unit samples. It deliberately does
// not parse or retain any patient-identifying header field (patient id,
// recording id) — anonymisation starts here, not at the CFS writer.
package decode

import "os"

// Stream caters for a generic reader type so the EDF parser can run
// against either a file on disk or an in-memory byte buffer. All the
// parser cares about is Read and Seek, which both *os.File and
// *bytes.Reader implement.
type Stream interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
}

// Tell reports the current position within a stream opened for reading.
func Tell(stream Stream) (int64, error) {
	return stream.Seek(0, os.SEEK_CUR)
}
