package protobuf

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// enumMutator mutates a protobuf enum by indexing into its declared value
// set — the same bounded-discrete-domain technique mutate.IntegralMutator
// applies to a Range, but keyed by declaration order rather than numeric
// value, since enum numbers need not be contiguous or sorted. A plain
// sum-of-fixedValue composition was tried first and rejected: fixedValue
// fails closed on Mutate, which only works for a sum whose fallback branch
// never needs to mutate in place — not the case here, where an enum with
// more than one declared value would most often try to "mutate the
// current branch" and panic.
type enumMutator struct {
	name   string
	values []int64
	names  []string
}

func newEnumMutator(ed protoreflect.EnumDescriptor) *enumMutator {
	m := &enumMutator{name: string(ed.FullName())}

	values := ed.Values()
	for i := 0; i < values.Len(); i++ {
		v := values.Get(i)
		m.values = append(m.values, int64(v.Number()))
		m.names = append(m.names, string(v.Name()))
	}

	return m
}

func (m *enumMutator) TypeRef() mutate.TypeRef {
	t := mutate.NewTypeRef(mutate.KindSum)
	t.Name = m.name
	t.FieldNames = m.names

	return t
}

func (m *enumMutator) HasFixedSize() bool       { return true }
func (m *enumMutator) StructurallyShared() bool { return false }

func (m *enumMutator) Init(p mutate.RandomSource) any {
	return mutate.PickIn(p, m.values)
}

func (m *enumMutator) Mutate(v any, p mutate.RandomSource) any {
	cur := v.(int64)

	if len(m.values) <= 1 {
		panic(&mutate.EngineBug{Op: "enumMutator.Mutate", Message: fmt.Sprintf("%s has only one declared value", m.name)})
	}

	for {
		next := mutate.PickIn(p, m.values)
		if next != cur {
			return next
		}
	}
}

// Read reduces the raw varint modulo the declared value count, so any byte
// sequence decodes to a declared enum number (spec.md §6.1's totality).
func (m *enumMutator) Read(r *mutate.ByteReader) any {
	if len(m.values) == 0 {
		return int64(0)
	}

	raw := r.ReadVarint()

	return m.values[int(raw)%len(m.values)]
}

// Write encodes v as its index in the declared value list, the form Read
// decodes.
func (m *enumMutator) Write(w *mutate.ByteWriter, v any) {
	val := v.(int64)

	for i, n := range m.values {
		if n == val {
			w.WriteVarint(uint64(i))

			return
		}
	}

	w.WriteVarint(0)
}

func (m *enumMutator) Detach(v any) any { return v }

func (m *enumMutator) DebugString(v any, _ func(mutate.Mutator) bool) string {
	val, _ := v.(int64)

	for i, n := range m.values {
		if n == val {
			return fmt.Sprintf("%s.%s", m.name, m.names[i])
		}
	}

	return fmt.Sprintf("%s(%d)", m.name, val)
}
