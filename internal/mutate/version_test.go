package mutate

import "testing"

func TestVersionedRootMutator_ReadWriteRoundTrip(t *testing.T) {
	inner := intMutator(t, 0, 100)
	m := NewVersionedRootMutator(inner)

	p := NewPRNG(91)
	v := m.Init(p)

	w := NewByteWriter()
	m.Write(w, v)

	bytes := w.Bytes()
	if len(bytes) == 0 {
		t.Fatal("Write produced no bytes")
	}

	if err := CheckCorpusVersion(bytes[0]); err != nil {
		t.Fatalf("CheckCorpusVersion rejected this build's own version tag: %v", err)
	}

	got := m.Read(NewByteReader(bytes))
	if !valuesEqual(got, v) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, v)
	}
}

func TestCheckCorpusVersion_RejectsIncompatibleMajor(t *testing.T) {
	if err := CheckCorpusVersion(99); err == nil {
		t.Fatal("expected CheckCorpusVersion to reject an incompatible major version")
	}
}

func TestCheckCorpusVersion_AcceptsCurrentMajor(t *testing.T) {
	if err := CheckCorpusVersion(byte(corpusFormatVersion.Major())); err != nil {
		t.Fatalf("CheckCorpusVersion rejected the current build's major version: %v", err)
	}
}
