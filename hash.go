package edf2cfs

import "crypto/sha1"

// sha1Digest is a 20-byte SHA-1 digest, spec §4.5 / §6.1.
type sha1Digest [sha1.Size]byte

// HashPayload computes the SHA-1 digest over the raw little-endian
// byte image of the float32 payload, in the exact serialisation order
// of spec §3/§6.1. SHA-1 is treated as an assumed byte-in/byte-out
// primitive (spec §1), so this is a direct stdlib call rather than a
// component of its own.
func HashPayload(payload []byte) sha1Digest {
	return sha1.Sum(payload)
}
