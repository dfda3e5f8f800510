package edf2cfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// CFS container layout constants (spec §6.1). All multi-byte
// integers are written little-endian; there is no host-endianness
// branch (spec §9 design note — the big-endian path in the reference
// was unreachable and malformed, so we simply always emit through a
// little-endian sink).
const (
	cfsSignature   = "CFS"
	cfsVersion     = 1
	cfsNFreq       = freqBins
	cfsNTimes      = timeBins
	cfsNChannels   = tensorChans
	cfsCompression = 1
	cfsHashFlag    = 1
	cfsHeaderSize  = 31
)

// SerializePayload lays out the tensor as little-endian binary32
// values in the exact order of spec §3/§6.1: epoch, then channel,
// then time, then frequency. FeatureTensor.Data is already built in
// that order, so this is a direct byte-image encode.
func SerializePayload(t FeatureTensor) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(t.Data)*4))
	for _, v := range t.Data {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

// BuildHeader assembles the 31-byte CFS header for a payload with the
// given epoch count and SHA-1 digest.
func BuildHeader(epochs int, digest sha1Digest) ([cfsHeaderSize]byte, error) {
	var hdr [cfsHeaderSize]byte
	if epochs < 0 || epochs > math.MaxUint16 {
		return hdr, fmt.Errorf("edf2cfs: epoch count %d does not fit uint16", epochs)
	}

	copy(hdr[0:3], cfsSignature)
	hdr[3] = cfsVersion
	hdr[4] = cfsNFreq
	hdr[5] = cfsNTimes
	hdr[6] = cfsNChannels
	binary.LittleEndian.PutUint16(hdr[7:9], uint16(epochs))
	hdr[9] = cfsCompression
	hdr[10] = cfsHashFlag
	copy(hdr[11:31], digest[:])

	return hdr, nil
}

// WriteCFS serialises tensor, hashes and compresses the payload, and
// atomically writes the CFS container to path: the bytes are written
// to a temporary sibling file first, then renamed into place, so a
// crash mid-write never leaves a truncated .cfs (spec §9 design
// note). On any failure the temporary file is removed and no partial
// output remains at path (spec §7 propagation policy).
func WriteCFS(path string, tensor FeatureTensor) (err error) {
	payload := SerializePayload(tensor)
	digest := HashPayload(payload)

	compressed, err := Compress(payload)
	if err != nil {
		return err
	}

	header, err := BuildHeader(tensor.Epochs, digest)
	if err != nil {
		return WriteFailure(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cfs-*.tmp")
	if err != nil {
		return WriteFailure(path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, werr := tmp.Write(header[:]); werr != nil {
		tmp.Close()
		return WriteFailure(path, werr)
	}
	if _, werr := tmp.Write(compressed); werr != nil {
		tmp.Close()
		return WriteFailure(path, werr)
	}
	if serr := tmp.Sync(); serr != nil {
		tmp.Close()
		return WriteFailure(path, serr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return WriteFailure(path, cerr)
	}

	if rerr := os.Rename(tmpPath, path); rerr != nil {
		return WriteFailure(path, rerr)
	}

	return nil
}

// DecodedCFS is the result of reading a CFS container back into its
// component parts, used by round-trip tests (spec §8).
type DecodedCFS struct {
	Epochs  int
	Digest  sha1Digest
	Payload []byte // decompressed float32 byte image
}

// ReadCFS parses a CFS container from disk: validates the fixed
// header fields, decompresses the DEFLATE payload, and returns both
// alongside the header's recorded digest so callers can exercise the
// round-trip laws of spec §8 (re-hash the decompressed payload and
// compare against the header digest).
func ReadCFS(path string) (DecodedCFS, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DecodedCFS{}, err
	}
	if len(raw) < cfsHeaderSize {
		return DecodedCFS{}, fmt.Errorf("edf2cfs: %s: truncated header (%d bytes)", path, len(raw))
	}
	if string(raw[0:3]) != cfsSignature {
		return DecodedCFS{}, fmt.Errorf("edf2cfs: %s: bad signature %q", path, raw[0:3])
	}
	if raw[3] != cfsVersion || raw[4] != cfsNFreq || raw[5] != cfsNTimes || raw[6] != cfsNChannels ||
		raw[9] != cfsCompression || raw[10] != cfsHashFlag {
		return DecodedCFS{}, fmt.Errorf("edf2cfs: %s: unexpected fixed header fields % x", path, raw[3:11])
	}

	epochs := int(binary.LittleEndian.Uint16(raw[7:9]))
	var digest sha1Digest
	copy(digest[:], raw[11:31])

	payload, err := decompress(raw[cfsHeaderSize:])
	if err != nil {
		return DecodedCFS{}, err
	}

	return DecodedCFS{Epochs: epochs, Digest: digest, Payload: payload}, nil
}
