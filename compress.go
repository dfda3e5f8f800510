package edf2cfs

import (
	"bytes"
	"compress/zlib"
	"io"
)

// deflateBound returns the standard DEFLATE worst-case output size for
// n input bytes (the same bound zlib's compressBound uses): the
// stream can never grow by more than this over the input size, even
// for incompressible data.
func deflateBound(n int) int {
	return n + (n >> 12) + (n >> 14) + (n >> 25) + 13
}

// Compress DEFLATEs (zlib-framed) payload, bounding the output buffer
// per deflateBound and reporting the taxonomy errors from spec §4.5.
// DEFLATE itself is treated as an assumed byte-in/byte-out primitive
// (spec §1); compress/zlib is the stdlib implementation of that
// primitive.
func Compress(payload []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, NewJobError(ErrOutOfMemory)
		}
	}()

	bound := deflateBound(len(payload))
	buf := bytes.NewBuffer(make([]byte, 0, bound))

	w := zlib.NewWriter(buf)
	if _, werr := w.Write(payload); werr != nil {
		return nil, NewJobError(ErrOutOfMemory)
	}
	if cerr := w.Close(); cerr != nil {
		return nil, NewJobError(ErrOutOfMemory)
	}

	if buf.Len() > bound {
		return nil, NewJobError(ErrBufferTooSmall)
	}

	return buf.Bytes(), nil
}

// decompress inflates a zlib-framed DEFLATE stream back to the
// original byte image, the inverse of Compress.
func decompress(compressed []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, NewJobError(ErrIntegrityFailure)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, NewJobError(ErrIntegrityFailure)
	}
	return out, nil
}
