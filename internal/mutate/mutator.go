package mutate

// Mutator is the capability set every node in the engine satisfies
// (spec.md §4.3). It operates on boxed values (any) rather than a generic
// Mutator[T]: product/sum combine children of different concrete value
// types, so the combinator boundary already erases to a common value
// representation the same way protoreflect.Value boxes heterogeneous
// protobuf field values.
type Mutator interface {
	// TypeRef returns the type this mutator was built for.
	TypeRef() TypeRef
	// HasFixedSize reports whether every value this mutator produces
	// encodes to the same number of bytes. Product and repeated combine
	// their children's answers into their own; no Read, including
	// repeated's, skips element decoding based on it.
	HasFixedSize() bool
	// StructurallyShared reports whether detach must avoid eagerly
	// materializing a cyclic reference (true only for delayed placeholders
	// that sit on a construction cycle).
	StructurallyShared() bool

	// Init produces a fresh, in-domain value.
	Init(p RandomSource) any
	// Mutate returns a neighboring value; it must not return v unchanged
	// when the domain has more than one member.
	Mutate(v any, p RandomSource) any
	// Read consumes bytes from r, total over any input.
	Read(r *ByteReader) any
	// Write serializes v in the framing Read expects.
	Write(w *ByteWriter, v any)
	// Detach returns a value equal to v sharing no mutable state with it.
	Detach(v any) any
	// DebugString renders v for diagnostics. inCycle reports whether the
	// caller has already visited this mutator on the current path, letting
	// recursive structures print as just their declared name. A top-level
	// caller passes a predicate that always returns false; every combinator
	// that owns children (product, sum, optional, repeated) wraps it in a
	// closure adding itself before delegating, and delayed prints its name
	// when its resolved target is already in the set, so the visiting set
	// for any one DebugString call lives entirely on the Go call stack
	// (spec.md §9) with no separate mutable collection required.
	DebugString(v any, inCycle func(Mutator) bool) string
}
