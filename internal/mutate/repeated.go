package mutate

import (
	"fmt"
	"strings"
)

// RepeatedMutator mutates a variable-length homogeneous sequence bounded to
// [sizeMin, sizeMax], per spec.md §4.7. Values are carried as []any.
type RepeatedMutator struct {
	inner            Mutator
	sizeMin, sizeMax int
}

// NewRepeatedMutator builds repeated<inner> bounded to [sizeMin, sizeMax].
// SPEC_FULL.md §4.9b's DefaultMaxRepeated (1000) is the caller's concern,
// not this constructor's — a descriptor adapter that doesn't declare a
// bound passes it explicitly.
func NewRepeatedMutator(inner Mutator, sizeMin, sizeMax int) *RepeatedMutator {
	return &RepeatedMutator{inner: inner, sizeMin: sizeMin, sizeMax: sizeMax}
}

func (m *RepeatedMutator) TypeRef() TypeRef {
	lo, hi := m.sizeMin, m.sizeMax
	t := NewTypeRef(KindRepeated).WithAnnotation(AnnotationSizeRange, SizeRange{Min: &lo, Max: &hi})
	elem := m.inner.TypeRef()
	t.Elem = &elem

	return t
}

func (m *RepeatedMutator) HasFixedSize() bool {
	return m.sizeMin == m.sizeMax && m.inner.HasFixedSize()
}

func (m *RepeatedMutator) StructurallyShared() bool { return false }

func (m *RepeatedMutator) Init(p RandomSource) any {
	n := p.ClosedRange(int64(m.sizeMin), int64(m.sizeMax))
	out := make([]any, n)

	for i := range out {
		out[i] = m.inner.Init(p)
	}

	return out
}

// Mutate appends, drops, duplicates, swaps two adjacent elements, or
// mutates one element in place, then clamps length back into bounds,
// per spec.md §4.7.
func (m *RepeatedMutator) Mutate(v any, p RandomSource) any {
	cur := v.([]any)

	for {
		next := m.clampLen(m.mutateOnce(cur, p), p)
		if !valuesEqual(next, cur) {
			return next
		}
	}
}

func (m *RepeatedMutator) mutateOnce(cur []any, p RandomSource) []any {
	switch p.IndexIn(5) {
	case 0:
		return m.appendOne(cur, p)
	case 1:
		return m.dropOne(cur, p)
	case 2:
		return m.duplicateOne(cur, p)
	case 3:
		return m.swapAdjacent(cur, p)
	default:
		return m.mutateInPlace(cur, p)
	}
}

func (m *RepeatedMutator) appendOne(cur []any, p RandomSource) []any {
	out := append(append([]any{}, cur...), m.inner.Init(p))

	return out
}

func (m *RepeatedMutator) dropOne(cur []any, p RandomSource) []any {
	if len(cur) == 0 {
		return cur
	}

	idx := p.IndexIn(len(cur))
	out := append([]any{}, cur[:idx]...)
	out = append(out, cur[idx+1:]...)

	return out
}

func (m *RepeatedMutator) duplicateOne(cur []any, p RandomSource) []any {
	if len(cur) == 0 {
		return cur
	}

	idx := p.IndexIn(len(cur))
	out := make([]any, 0, len(cur)+1)
	out = append(out, cur[:idx+1]...)
	out = append(out, cur[idx])
	out = append(out, cur[idx+1:]...)

	return out
}

func (m *RepeatedMutator) swapAdjacent(cur []any, p RandomSource) []any {
	if len(cur) < 2 {
		return cur
	}

	idx := p.IndexIn(len(cur) - 1)
	out := append([]any{}, cur...)
	out[idx], out[idx+1] = out[idx+1], out[idx]

	return out
}

func (m *RepeatedMutator) mutateInPlace(cur []any, p RandomSource) []any {
	if len(cur) == 0 {
		return append([]any{}, m.inner.Init(p))
	}

	idx := p.IndexIn(len(cur))
	out := append([]any{}, cur...)
	out[idx] = m.inner.Mutate(cur[idx], p)

	return out
}

func (m *RepeatedMutator) clampLen(cur []any, p RandomSource) []any {
	if len(cur) > m.sizeMax {
		return append([]any{}, cur[:m.sizeMax]...)
	}

	if len(cur) < m.sizeMin {
		out := append([]any{}, cur...)
		for len(out) < m.sizeMin {
			out = append(out, m.inner.Init(p))
		}

		return out
	}

	return cur
}

// Read decodes a varint length, clamped into bounds, then that many elements.
func (m *RepeatedMutator) Read(r *ByteReader) any {
	n := r.ReadVarint()
	length := clampLen(int(n), m.sizeMin, m.sizeMax)

	out := make([]any, length)
	for i := range out {
		out[i] = m.inner.Read(r)
	}

	return out
}

func (m *RepeatedMutator) Write(w *ByteWriter, v any) {
	vals := v.([]any)

	w.WriteVarint(uint64(len(vals)))
	for _, e := range vals {
		m.inner.Write(w, e)
	}
}

func (m *RepeatedMutator) Detach(v any) any {
	vals := v.([]any)
	out := make([]any, len(vals))

	for i, e := range vals {
		out[i] = m.inner.Detach(e)
	}

	return out
}

func (m *RepeatedMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	if inCycle(m) {
		return "repeated<...>"
	}

	childInCycle := func(x Mutator) bool { return x == m || inCycle(x) }

	vals, ok := v.([]any)
	if !ok {
		return "[]"
	}

	parts := make([]string, len(vals))
	for i, e := range vals {
		parts[i] = m.inner.DebugString(e, childInCycle)
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
