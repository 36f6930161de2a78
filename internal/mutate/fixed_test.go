package mutate

import (
	"testing"

	"github.com/orizon-lang/mutagen/internal/testrunner/assert"
)

func TestFixedMutator_InitAndReadAlwaysReturnTheConstant(t *testing.T) {
	m := NewFixedMutator(NewFixedTypeRef(int64(42)), int64(42))
	p := NewPRNG(61)

	assert.Equal(t, m.Init(p), any(int64(42)))
	assert.Equal(t, m.Read(NewByteReader(nil)), any(int64(42)))
}

func TestFixedMutator_MutatePanics(t *testing.T) {
	m := NewFixedMutator(NewFixedTypeRef(int64(7)), int64(7))
	p := NewPRNG(62)

	assert.Panics(t, func() { m.Mutate(int64(7), p) })
}

func TestFixedMutator_WriteEmitsNoBytes(t *testing.T) {
	m := NewFixedMutator(NewFixedTypeRef(int64(7)), int64(7))

	w := NewByteWriter()
	m.Write(w, int64(7))

	assert.Len(t, w.Bytes(), 0)
}
