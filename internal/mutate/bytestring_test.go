package mutate

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestByteStringMutator_InitRespectsBounds(t *testing.T) {
	m := NewByteStringMutator(2, 5, false)
	p := NewPRNG(1)

	for i := 0; i < 100; i++ {
		v := m.Init(p).([]byte)
		if len(v) < 2 || len(v) > 5 {
			t.Fatalf("Init produced length %d, want [2,5]", len(v))
		}
	}
}

func TestByteStringMutator_MutateSingletonDomainPanics(t *testing.T) {
	m := NewByteStringMutator(0, 0, false)
	p := NewPRNG(1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Mutate on a size-0-only domain to panic")
		}
	}()

	m.Mutate([]byte{}, p)
}

func TestByteStringMutator_MutateNeverReturnsSameValue(t *testing.T) {
	m := NewByteStringMutator(3, 8, false)
	p := NewPRNG(2)

	cur := m.Init(p).([]byte)
	for i := 0; i < 200; i++ {
		next := m.Mutate(cur, p).([]byte)
		if bytesEqual(next, cur) {
			t.Fatalf("Mutate returned the same bytes %v", cur)
		}

		cur = next
	}
}

func TestByteStringMutator_RequireUTF8(t *testing.T) {
	m := NewByteStringMutator(1, 16, true)
	p := NewPRNG(3)

	cur := m.Init(p).([]byte)
	if !utf8.Valid(cur) {
		t.Fatalf("Init produced invalid UTF-8: %q", cur)
	}

	for i := 0; i < 50; i++ {
		cur = m.Mutate(cur, p).([]byte)
		if !utf8.Valid(cur) {
			t.Fatalf("Mutate produced invalid UTF-8: %q", cur)
		}
	}
}

func TestByteStringMutator_ReadWriteRoundTrip(t *testing.T) {
	m := NewByteStringMutator(0, 10, false)
	p := NewPRNG(4)

	v := m.Init(p)
	w := NewByteWriter()
	m.Write(w, v)

	got := m.Read(NewByteReader(w.Bytes()))
	if diff := cmp.Diff(v, got); diff != "" {
		t.Fatalf("round trip mismatch (-init +read):\n%s", diff)
	}
}

func TestByteStringMutator_ReadIsTotalOnTruncatedInput(t *testing.T) {
	m := NewByteStringMutator(4, 4, false)

	got := m.Read(NewByteReader(nil)).([]byte)
	if len(got) != 4 {
		t.Fatalf("Read on empty input produced length %d, want 4 (zero-padded)", len(got))
	}
}

func TestByteStringMutator_Detach(t *testing.T) {
	m := NewByteStringMutator(0, 10, false)

	v := []byte{1, 2, 3}
	d := m.Detach(v).([]byte)
	d[0] = 99

	if v[0] == 99 {
		t.Fatal("Detach shares backing storage with the original value")
	}
}
