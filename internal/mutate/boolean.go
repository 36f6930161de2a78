package mutate

import "fmt"

// BooleanMutator mutates a plain boolean; its only possible mutation is a
// flip, since the domain has exactly two members (spec.md §4.5).
type BooleanMutator struct{}

// NewBooleanMutator returns the (stateless, shareable) boolean mutator.
func NewBooleanMutator() *BooleanMutator { return &BooleanMutator{} }

func (m *BooleanMutator) TypeRef() TypeRef          { return NewTypeRef(KindBool) }
func (m *BooleanMutator) HasFixedSize() bool        { return true }
func (m *BooleanMutator) StructurallyShared() bool  { return false }

func (m *BooleanMutator) Init(p RandomSource) any {
	return p.Choice()
}

func (m *BooleanMutator) Mutate(v any, _ RandomSource) any {
	return !v.(bool)
}

func (m *BooleanMutator) Read(r *ByteReader) any {
	b := r.ReadN(1)

	return b[0]&1 == 1
}

func (m *BooleanMutator) Write(w *ByteWriter, v any) {
	if v.(bool) {
		w.WriteN([]byte{1})
	} else {
		w.WriteN([]byte{0})
	}
}

func (m *BooleanMutator) Detach(v any) any { return v }

func (m *BooleanMutator) DebugString(v any, _ func(Mutator) bool) string {
	return fmt.Sprintf("bool(%v)", v.(bool))
}
