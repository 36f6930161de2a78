package mutate

import "testing"

func TestBooleanMutator_MutateFlips(t *testing.T) {
	m := NewBooleanMutator()

	if got := m.Mutate(true, nil); got != false {
		t.Fatalf("Mutate(true) = %v, want false", got)
	}

	if got := m.Mutate(false, nil); got != true {
		t.Fatalf("Mutate(false) = %v, want true", got)
	}
}

func TestBooleanMutator_ReadWriteRoundTrip(t *testing.T) {
	m := NewBooleanMutator()

	for _, v := range []bool{true, false} {
		w := NewByteWriter()
		m.Write(w, v)

		got := m.Read(NewByteReader(w.Bytes()))
		if got != v {
			t.Fatalf("round trip of %v produced %v", v, got)
		}
	}
}

func TestBooleanMutator_InitDrawsBothValues(t *testing.T) {
	p := NewPRNG(9)
	m := NewBooleanMutator()

	seen := map[bool]bool{}
	for i := 0; i < 100; i++ {
		seen[m.Init(p).(bool)] = true
	}

	if len(seen) != 2 {
		t.Fatalf("Init over 100 draws only produced %v, want both true and false", seen)
	}
}
