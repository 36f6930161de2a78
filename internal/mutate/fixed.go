package mutate

import "fmt"

// FixedMutator always produces the same constant value, per spec.md §4.7's
// fixedValue(c). Its domain has exactly one member, so Mutate fails closed:
// callers must not build a mutator from a singleton domain unless this is
// exactly what they want (spec.md §9's resolution of the range-narrows-to-
// one-value Open Question — construction should reach for this instead of
// silently tolerating a degenerate Range).
type FixedMutator struct {
	typeRef TypeRef
	value   any
}

// NewFixedMutator builds a constant mutator reporting t as its TypeRef.
func NewFixedMutator(t TypeRef, value any) *FixedMutator {
	return &FixedMutator{typeRef: t, value: value}
}

func (m *FixedMutator) TypeRef() TypeRef         { return m.typeRef }
func (m *FixedMutator) HasFixedSize() bool       { return true }
func (m *FixedMutator) StructurallyShared() bool { return false }
func (m *FixedMutator) Init(RandomSource) any    { return m.value }

func (m *FixedMutator) Mutate(any, RandomSource) any {
	checkState(false, "FixedMutator.Mutate", "domain has exactly one member; fixedValue must never be mutated")

	return nil
}

// Read and Write contribute no bytes: the value needs no encoding since
// there is nothing to vary.
func (m *FixedMutator) Read(*ByteReader) any   { return m.value }
func (m *FixedMutator) Write(*ByteWriter, any) {}
func (m *FixedMutator) Detach(v any) any       { return v }

func (m *FixedMutator) DebugString(any, func(Mutator) bool) string {
	return fmt.Sprintf("fixed(%v)", m.value)
}
