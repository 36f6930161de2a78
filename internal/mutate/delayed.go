package mutate

import muterrors "github.com/orizon-lang/mutagen/internal/errors"

// DelayedMutator is the recursion placeholder spec.md §4.8 describes: the
// factory chain substitutes one of these when a type reference would
// otherwise recurse into an ancestor still under construction, then fixes
// it up by calling Resolve once the ancestor's mutator exists. It is the
// one mutator StructurallyShared reports true for, since the mutator graph
// it sits on is genuinely cyclic even though the values it produces are not.
type DelayedMutator struct {
	path     Path
	name     string
	resolved Mutator
}

// NewDelayedMutator returns an unresolved placeholder for name at path.
func NewDelayedMutator(path Path, name string) *DelayedMutator {
	return &DelayedMutator{path: path, name: name}
}

// Resolve fills the placeholder. Calling it twice is a construction error
// (spec.md §7's ErrDelayedResolvedTwice), not an operational one: it means
// the factory chain's fixup pass visited the same placeholder twice.
func (m *DelayedMutator) Resolve(target Mutator) error {
	if m.resolved != nil {
		return muterrors.DelayedResolvedTwice(m.path.String())
	}

	m.resolved = target

	return nil
}

func (m *DelayedMutator) require() Mutator {
	checkState(m.resolved != nil, "DelayedMutator", "mutator at %s used before its recursive reference was resolved", m.path.String())

	return m.resolved
}

func (m *DelayedMutator) TypeRef() TypeRef {
	if m.resolved != nil {
		return m.resolved.TypeRef()
	}

	t := NewTypeRef(KindRecursiveRef)
	t.Name = m.name

	return t
}

func (m *DelayedMutator) HasFixedSize() bool       { return false }
func (m *DelayedMutator) StructurallyShared() bool { return true }

func (m *DelayedMutator) Init(p RandomSource) any          { return m.require().Init(p) }
func (m *DelayedMutator) Mutate(v any, p RandomSource) any { return m.require().Mutate(v, p) }
func (m *DelayedMutator) Read(r *ByteReader) any           { return m.require().Read(r) }
func (m *DelayedMutator) Write(w *ByteWriter, v any)       { m.require().Write(w, v) }
func (m *DelayedMutator) Detach(v any) any                 { return m.require().Detach(v) }

// DebugString prints just the declared name when inCycle reports this
// mutator (or, more often, its resolved target) is already on the current
// path; otherwise it delegates to the resolved mutator.
func (m *DelayedMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	if inCycle(m) || inCycle(m.resolved) {
		return m.name
	}

	return m.require().DebugString(v, inCycle)
}
