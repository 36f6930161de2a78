package mutate

import (
	"testing"

	"github.com/orizon-lang/mutagen/internal/testrunner/assert"
)

func TestDelayedMutator_ResolveTwiceErrors(t *testing.T) {
	d := NewDelayedMutator(RootPath(), "Node")
	inner := intMutator(t, 0, 50)

	assert.NoError(t, d.Resolve(inner))
	assert.Error(t, d.Resolve(inner))
}

func TestDelayedMutator_UnresolvedUsePanics(t *testing.T) {
	d := NewDelayedMutator(RootPath(), "Node")
	p := NewPRNG(71)

	assert.Panics(t, func() { d.Init(p) })
}

func TestDelayedMutator_DelegatesOnceResolved(t *testing.T) {
	d := NewDelayedMutator(RootPath(), "Node")
	inner := intMutator(t, 0, 50)

	assert.NoError(t, d.Resolve(inner))

	p := NewPRNG(72)
	v := d.Init(p)

	w := NewByteWriter()
	d.Write(w, v)

	got := d.Read(NewByteReader(w.Bytes()))
	assert.Equal(t, got, v)
}

func TestDelayedMutator_StructurallySharedIsTrue(t *testing.T) {
	d := NewDelayedMutator(RootPath(), "Node")
	assert.True(t, d.StructurallyShared())
}
