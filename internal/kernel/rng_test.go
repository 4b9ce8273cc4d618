package kernel

import "testing"

func TestRNG_DeterministicForSameSeed(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)

	for i := 0; i < 50; i++ {
		va, vb := a.IntN(1000), b.IntN(1000)
		if va != vb {
			t.Fatalf("draw %d diverged: %d != %d", i, va, vb)
		}
	}
}

func TestRNG_IntN_NeverReachesN(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) = %d, out of [0,3)", v)
		}
	}
}

func TestRNG_UniformInt_InclusiveBounds(t *testing.T) {
	r := NewRNG(2)
	for i := 0; i < 1000; i++ {
		if v := r.UniformInt(5, 7); v < 5 || v > 7 {
			t.Fatalf("UniformInt(5,7) = %d, out of [5,7]", v)
		}
	}
}

func TestRNG_UniformInt_DegenerateRange(t *testing.T) {
	r := NewRNG(3)
	if v := r.UniformInt(4, 4); v != 4 {
		t.Fatalf("UniformInt(4,4) = %d, want 4", v)
	}
}

func TestChoice_ReturnsOneOfOptions(t *testing.T) {
	r := NewRNG(4)
	options := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		v := Choice(r, options)
		found := false
		for _, o := range options {
			if v == o {
				found = true
			}
		}
		if !found {
			t.Fatalf("Choice returned %q, not in options", v)
		}
	}
}

func TestRNG_Normal_CentersOnMean(t *testing.T) {
	r := NewRNG(5)
	var sum float64
	const n = 10000
	for i := 0; i < n; i++ {
		sum += r.Normal(100, 1)
	}
	mean := sum / n
	if mean < 95 || mean > 105 {
		t.Fatalf("sample mean = %v, want close to 100", mean)
	}
}
