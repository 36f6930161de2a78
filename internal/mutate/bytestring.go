package mutate

import (
	"fmt"
	"unicode/utf8"
)

const utf8RepairAttempts = 8

// ByteStringMutator mutates a length-bounded byte string, per spec.md §4.6.
// When requireUTF8 is set (the WithUtf8Length annotation), init/mutate
// additionally retry toward well-formed UTF-8, falling back to a
// byte-for-byte repair so the operation stays total.
type ByteStringMutator struct {
	sizeMin, sizeMax int
	requireUTF8      bool
}

// NewByteStringMutator builds a byte-string mutator bounded to [sizeMin, sizeMax].
func NewByteStringMutator(sizeMin, sizeMax int, requireUTF8 bool) *ByteStringMutator {
	return &ByteStringMutator{sizeMin: sizeMin, sizeMax: sizeMax, requireUTF8: requireUTF8}
}

func (m *ByteStringMutator) TypeRef() TypeRef {
	lo, hi := m.sizeMin, m.sizeMax
	t := NewTypeRef(KindBytes).WithAnnotation(AnnotationSizeRange, SizeRange{Min: &lo, Max: &hi})

	if m.requireUTF8 {
		t = t.WithAnnotation(AnnotationWithUtf8Length, SizeRange{Min: &lo, Max: &hi})
	}

	return t
}

func (m *ByteStringMutator) HasFixedSize() bool       { return m.sizeMin == m.sizeMax }
func (m *ByteStringMutator) StructurallyShared() bool { return false }

func (m *ByteStringMutator) Init(p RandomSource) any {
	n := p.ClosedRange(int64(m.sizeMin), int64(m.sizeMax))
	out := p.Bytes(int(n))

	return m.maybeRepairUTF8(out, p)
}

func (m *ByteStringMutator) Mutate(v any, p RandomSource) any {
	checkState(m.sizeMin != m.sizeMax || m.sizeMax != 0, "ByteStringMutator.Mutate",
		"domain has exactly one member (empty byte string); use fixedValue instead")

	cur := v.([]byte)

	for {
		var next []byte

		switch p.IndexIn(4) {
		case 0:
			next = m.insert(cur, p)
		case 1:
			next = m.deleteSpan(cur, p)
		case 2:
			next = m.overwriteSpan(cur, p)
		default:
			n := p.ClosedRange(int64(m.sizeMin), int64(m.sizeMax))
			next = p.Bytes(int(n))
		}

		next = m.clamp(next, p)
		next = m.maybeRepairUTF8(next, p)

		if !bytesEqual(next, cur) {
			return next
		}
	}
}

func (m *ByteStringMutator) insert(cur []byte, p RandomSource) []byte {
	pos := p.IndexIn(len(cur) + 1)
	b := byte(p.ClosedRange(0, 255))
	out := make([]byte, 0, len(cur)+1)
	out = append(out, cur[:pos]...)
	out = append(out, b)
	out = append(out, cur[pos:]...)

	return out
}

func (m *ByteStringMutator) deleteSpan(cur []byte, p RandomSource) []byte {
	if len(cur) == 0 {
		return cur
	}

	pos := p.IndexIn(len(cur))
	span := p.IndexIn(len(cur)-pos) + 1
	out := make([]byte, 0, len(cur)-span)
	out = append(out, cur[:pos]...)
	out = append(out, cur[pos+span:]...)

	return out
}

func (m *ByteStringMutator) overwriteSpan(cur []byte, p RandomSource) []byte {
	if len(cur) == 0 {
		return m.insert(cur, p)
	}

	out := append([]byte(nil), cur...)
	pos := p.IndexIn(len(out))
	span := p.IndexIn(len(out)-pos) + 1

	for i := pos; i < pos+span; i++ {
		out[i] = byte(p.ClosedRange(0, 255))
	}

	return out
}

func (m *ByteStringMutator) clamp(b []byte, p RandomSource) []byte {
	if len(b) > m.sizeMax {
		return b[:m.sizeMax]
	}

	if len(b) < m.sizeMin {
		extra := p.Bytes(m.sizeMin - len(b))

		return append(b, extra...)
	}

	return b
}

func (m *ByteStringMutator) maybeRepairUTF8(b []byte, p RandomSource) []byte {
	if !m.requireUTF8 {
		return b
	}

	for attempt := 0; attempt < utf8RepairAttempts; attempt++ {
		if utf8.Valid(b) {
			return b
		}

		b = p.Bytes(len(b))
	}

	// Total fallback: force validity byte-by-byte rather than loop forever.
	// Each byte that does not start a valid UTF-8 sequence becomes '?', so
	// the length is unchanged and the result is well-formed.
	out := append([]byte(nil), b...)
	for i := 0; i < len(out); {
		r, size := utf8.DecodeRune(out[i:])
		if r == utf8.RuneError && size == 1 {
			out[i] = '?'
		}

		i += size
	}

	return m.clamp(out, p)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func (m *ByteStringMutator) Read(r *ByteReader) any {
	n := r.ReadVarint()
	length := clampLen(int(n), m.sizeMin, m.sizeMax)

	return r.ReadN(length)
}

func clampLen(n, lo, hi int) int {
	if n < lo {
		return lo
	}

	if n > hi {
		return hi
	}

	return n
}

func (m *ByteStringMutator) Write(w *ByteWriter, v any) {
	b := v.([]byte)
	w.WriteVarint(uint64(len(b)))
	w.WriteN(b)
}

func (m *ByteStringMutator) Detach(v any) any {
	b := v.([]byte)

	return append([]byte(nil), b...)
}

func (m *ByteStringMutator) DebugString(v any, _ func(Mutator) bool) string {
	return fmt.Sprintf("bytes[%d,%d](len=%d)", m.sizeMin, m.sizeMax, len(v.([]byte)))
}
