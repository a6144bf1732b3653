package hasher

import "testing"

func TestHash_Deterministic(t *testing.T) {
	in := "Main Library\n9:00 AM\nJan 2, 2024\n"
	if Hash(in) != Hash(in) {
		t.Fatal("hash must be deterministic")
	}
}

func TestHash_DifferentInputs(t *testing.T) {
	if Hash("a") == Hash("b") {
		t.Fatal("different inputs should not produce the same hash")
	}
}

func TestHash_KnownVector(t *testing.T) {
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Hash("hello"); got != want {
		t.Fatalf("unexpected hash: got %s want %s", got, want)
	}
	if got := SumBytes([]byte("hello")); got != want {
		t.Fatalf("SumBytes disagrees with Hash: %s", got)
	}
}

func BenchmarkHash(b *testing.B) {
	in := "some reasonably sized timesheet export"

	for b.Loop() {
		_ = Hash(in)
	}
}
