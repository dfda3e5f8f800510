package edf2cfs

import (
	"math"
	"testing"
)

func TestGCD(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{200, 100, 100},
		{256, 100, 4},
		{100, 100, 100},
		{0, 5, 5},
	}
	for _, c := range cases {
		if got := gcd(c.a, c.b); got != c.want {
			t.Errorf("gcd(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestResampleBypassAtTargetRate(t *testing.T) {
	x := make(RawChannel, 300)
	for i := range x {
		x[i] = float64(i)
	}
	out := Resample(x, TargetRate, TargetRate)
	if len(out) != len(x) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(x))
	}
	for i := range x {
		if out[i] != x[i] {
			t.Fatalf("out[%d] = %v, want %v (bypass at equal rate)", i, out[i], x[i])
		}
	}
}

func TestResampleLength(t *testing.T) {
	x := make(RawChannel, 2000) // 10s at 200Hz
	out := Resample(x, 200, TargetRate)
	want := int(math.Round(float64(len(x)) * TargetRate / 200))
	if len(out) != want {
		t.Fatalf("len(out) = %d, want %d", len(out), want)
	}
}

func TestResampleUpsampleLength(t *testing.T) {
	x := make(RawChannel, 1000) // 20s at 50Hz, upsampled to 100Hz
	out := Resample(x, 50, TargetRate)
	want := int(math.Round(float64(len(x)) * TargetRate / 50))
	if len(out) != want {
		t.Fatalf("len(out) = %d, want %d", len(out), want)
	}
}

func TestResampleDeterministic(t *testing.T) {
	x := make(RawChannel, 600)
	for i := range x {
		x[i] = math.Sin(float64(i) / 7)
	}
	a := Resample(x, 200, TargetRate)
	b := Resample(x, 200, TargetRate)
	if len(a) != len(b) {
		t.Fatalf("len mismatch across identical calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("out[%d] differs across identical calls: %v vs %v", i, a[i], b[i])
		}
	}
}
