package model

import "testing"

func TestSampleRingCapsAtSixty(t *testing.T) {
	r := NewSampleRing(60)
	for i := 0; i < 200; i++ {
		r.Push(float64(i))
	}
	if r.Len() != 60 {
		t.Fatalf("expected len 60, got %d", r.Len())
	}
	last, ok := r.Last()
	if !ok || last != 199 {
		t.Fatalf("expected last sample 199, got %v (ok=%v)", last, ok)
	}
	values := r.Values()
	if values[0] != 140 {
		t.Fatalf("expected oldest retained sample 140, got %v", values[0])
	}
}

func TestSampleRingEmpty(t *testing.T) {
	var r SampleRing
	if _, ok := r.Last(); ok {
		t.Fatal("expected no last sample on empty ring")
	}
	if r.Max() != 0 {
		t.Fatalf("expected 0 max on empty ring, got %v", r.Max())
	}
}

func TestSampleRingZeroCapacityDefaultsToSixty(t *testing.T) {
	var r SampleRing
	for i := 0; i < 61; i++ {
		r.Push(float64(i))
	}
	if r.Len() != 60 {
		t.Fatalf("expected zero-value ring to default to capacity 60, got len %d", r.Len())
	}
}
