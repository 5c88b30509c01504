package hasher

import "testing"

func TestHash_Deterministic(t *testing.T) {
	in := "same input"
	h1 := Hash(in)
	h2 := Hash(in)
	if h1 != h2 {
		t.Fatalf("hash must be deterministic, got %s vs %s", h1, h2)
	}
}

func TestHash_DifferentInputs(t *testing.T) {
	if Hash("a") == Hash("b") {
		t.Fatalf("different inputs should not produce the same hash")
	}
}

func TestHash_KnownVector(t *testing.T) {
	// SHA-256("hello") per the standard test vectors
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := Hash("hello")
	if got != want {
		t.Fatalf("unexpected hash: got %s want %s", got, want)
	}
}

func TestShort_Length(t *testing.T) {
	got := Short([]byte(`{"base_fare": 3.50}`))
	if len(got) != 12 {
		t.Fatalf("short hash must be 12 characters, got %d", len(got))
	}
}

func BenchmarkHash(b *testing.B) {
	in := "some reasonably sized input"

	for b.Loop() {
		_ = Hash(in)
	}
}
