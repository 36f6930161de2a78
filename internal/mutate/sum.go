package mutate

import "fmt"

// SumValue is the boxed value a SumMutator produces: a branch tag plus the
// value of that branch alone (spec.md §4.7's "oneOf").
type SumValue struct {
	Tag   int
	Inner any
}

// SumMutator picks among k mutually exclusive branches, per spec.md §4.7.
type SumMutator struct {
	name        string
	branches    []Mutator
	branchNames []string
}

// NewSumMutator builds a tagged union over branches.
func NewSumMutator(name string, branches []Mutator, branchNames []string) *SumMutator {
	return &SumMutator{name: name, branches: branches, branchNames: branchNames}
}

func (m *SumMutator) TypeRef() TypeRef {
	fields := make([]TypeRef, len(m.branches))
	for i, b := range m.branches {
		fields[i] = b.TypeRef()
	}

	t := NewTypeRef(KindSum)
	t.Name = m.name
	t.Fields = fields
	t.FieldNames = m.branchNames

	return t
}

// HasFixedSize is false: different branches generally encode to different
// sizes, and the 1-byte tag is common but the payload is not.
func (m *SumMutator) HasFixedSize() bool       { return false }
func (m *SumMutator) StructurallyShared() bool { return false }

// Init picks a branch uniformly and initializes it.
func (m *SumMutator) Init(p RandomSource) any {
	tag := p.IndexIn(len(m.branches))

	return SumValue{Tag: tag, Inner: m.branches[tag].Init(p)}
}

// Mutate either switches to a different branch (re-initializing it) or
// mutates the current branch in place, per spec.md §4.7. A current branch
// that is a FixedMutator cannot change in place, so it always switches.
func (m *SumMutator) Mutate(v any, p RandomSource) any {
	cur := v.(SumValue)
	k := len(m.branches)

	_, fixed := m.branches[cur.Tag].(*FixedMutator)
	if k > 1 && (fixed || p.TrueInOneOutOf(k+1)) {
		choice := p.IndexIn(k - 1)

		newTag := choice
		if choice >= cur.Tag {
			newTag = choice + 1
		}

		return SumValue{Tag: newTag, Inner: m.branches[newTag].Init(p)}
	}

	return SumValue{Tag: cur.Tag, Inner: m.branches[cur.Tag].Mutate(cur.Inner, p)}
}

// Read consumes one tag byte, reduced modulo the branch count so any byte
// value decodes to a valid branch, then reads that branch (spec.md §4.7's
// worked example: a 0x07 tag over 2 branches selects branch 1).
func (m *SumMutator) Read(r *ByteReader) any {
	b := r.ReadN(1)
	k := len(m.branches)
	tag := int(b[0]) % k

	return SumValue{Tag: tag, Inner: m.branches[tag].Read(r)}
}

func (m *SumMutator) Write(w *ByteWriter, v any) {
	val := v.(SumValue)
	w.WriteN([]byte{byte(val.Tag)})
	m.branches[val.Tag].Write(w, val.Inner)
}

func (m *SumMutator) Detach(v any) any {
	val := v.(SumValue)

	return SumValue{Tag: val.Tag, Inner: m.branches[val.Tag].Detach(val.Inner)}
}

func (m *SumMutator) branchName(i int) string {
	if i < len(m.branchNames) && m.branchNames[i] != "" {
		return m.branchNames[i]
	}

	return fmt.Sprintf("#%d", i)
}

func (m *SumMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	if inCycle(m) {
		return m.name
	}

	childInCycle := func(x Mutator) bool { return x == m || inCycle(x) }

	val, ok := v.(SumValue)
	if !ok {
		return m.name
	}

	return fmt.Sprintf("%s.%s(%s)", m.name, m.branchName(val.Tag), m.branches[val.Tag].DebugString(val.Inner, childInCycle))
}
