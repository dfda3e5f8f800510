package edf2cfs

import "testing"

func TestHashPayloadDeterministic(t *testing.T) {
	payload := []byte("the quick brown fox")
	a := HashPayload(payload)
	b := HashPayload(payload)
	if a != b {
		t.Fatalf("HashPayload not deterministic: %x vs %x", a, b)
	}
}

func TestHashPayloadDiffers(t *testing.T) {
	a := HashPayload([]byte("foo"))
	b := HashPayload([]byte("bar"))
	if a == b {
		t.Fatal("HashPayload collided on distinct inputs")
	}
}
