package mutate

import "fmt"

// OptionalMutator wraps inner with a presence bit, per spec.md §4.7. An
// absent value is represented simply as a nil any — no wrapper struct is
// needed since product/sum already box fields as any.
type OptionalMutator struct {
	inner   Mutator
	notNull bool // AnnotationNotNull forcing: always present.
}

// NewOptionalMutator builds optional<inner>. notNull corresponds to a
// protobuf proto3 scalar field, which is present-with-default rather than
// absent (SPEC_FULL.md's descriptor adapter uses this for non-oneof,
// non-message scalar fields).
func NewOptionalMutator(inner Mutator, notNull bool) *OptionalMutator {
	return &OptionalMutator{inner: inner, notNull: notNull}
}

func (m *OptionalMutator) TypeRef() TypeRef {
	t := NewTypeRef(KindOptional)
	elem := m.inner.TypeRef()
	t.Elem = &elem

	if m.notNull {
		t = t.WithAnnotation(AnnotationNotNull, true)
	}

	return t
}

func (m *OptionalMutator) HasFixedSize() bool       { return false }
func (m *OptionalMutator) StructurallyShared() bool { return false }

func (m *OptionalMutator) Init(p RandomSource) any {
	if !m.notNull && !p.Choice() {
		return nil
	}

	return m.inner.Init(p)
}

// Mutate flips presence, or — if present — mutates the inner value,
// per spec.md §4.7. A notNull mutator never flips to absent; an absent
// mutator that doesn't flip to present just re-initializes (there is no
// inner value yet to mutate in place).
func (m *OptionalMutator) Mutate(v any, p RandomSource) any {
	for {
		next := m.mutateOnce(v, p)
		if !valuesEqual(next, v) {
			return next
		}
	}
}

func (m *OptionalMutator) mutateOnce(v any, p RandomSource) any {
	if p.TrueInOneOutOf(2) {
		if v == nil {
			return m.inner.Init(p)
		}

		if m.notNull {
			return m.inner.Mutate(v, p)
		}

		return nil
	}

	if v == nil {
		return m.inner.Init(p)
	}

	return m.inner.Mutate(v, p)
}

func (m *OptionalMutator) Read(r *ByteReader) any {
	b := r.ReadN(1)

	present := m.notNull || b[0]&1 == 1
	if !present {
		return nil
	}

	return m.inner.Read(r)
}

func (m *OptionalMutator) Write(w *ByteWriter, v any) {
	if v == nil {
		w.WriteN([]byte{0})

		return
	}

	w.WriteN([]byte{1})
	m.inner.Write(w, v)
}

func (m *OptionalMutator) Detach(v any) any {
	if v == nil {
		return nil
	}

	return m.inner.Detach(v)
}

func (m *OptionalMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	if inCycle(m) {
		return "optional<...>"
	}

	childInCycle := func(x Mutator) bool { return x == m || inCycle(x) }

	if v == nil {
		return "None"
	}

	return fmt.Sprintf("Some(%s)", m.inner.DebugString(v, childInCycle))
}
