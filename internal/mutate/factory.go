package mutate

import muterrors "github.com/orizon-lang/mutagen/internal/errors"

// defaultMaxBytes bounds an unbounded byte-string's size when no
// AnnotationSizeRange is present, so Init never has to draw from an
// unbounded domain.
const defaultMaxBytes = 4096

// DefaultMaxRepeated is the fallback upper bound a repeated TypeRef gets
// when it carries no AnnotationSizeRange — SPEC_FULL.md §4.9b's choice for
// the protobuf adapter, exported so other callers can reuse the same
// default rather than inventing their own.
const DefaultMaxRepeated = 1000

// Build walks t and constructs the Mutator tree it describes, threading a
// construction stack so a KindRecursiveRef naming an ancestor's Name
// resolves to a DelayedMutator rather than recursing forever (spec.md §4.8).
// The returned error is always a *muterrors.StandardError describing the
// dotted path at which construction failed (spec.md §7).
func Build(t TypeRef, path Path) (Mutator, error) {
	b := &builder{}

	return b.build(t, path)
}

type frame struct {
	name    string
	delayed []*DelayedMutator
}

type builder struct {
	stack []*frame
}

func (b *builder) build(t TypeRef, path Path) (Mutator, error) {
	switch t.Kind {
	case KindRecursiveRef:
		return b.buildRecursiveRef(t, path)
	case KindBool:
		return NewBooleanMutator(), nil
	case KindFloat32:
		return NewFloat32Mutator(), nil
	case KindFloat64:
		return NewFloat64Mutator(), nil
	case KindInt:
		return b.buildInt(t, path)
	case KindBytes:
		return b.buildBytes(t, path)
	case KindString:
		return b.buildString(t, path)
	case KindFixed:
		return b.buildFixed(t, path)
	case KindOptional:
		return b.buildOptional(t, path)
	case KindRepeated:
		return b.buildRepeated(t, path)
	case KindProduct:
		return b.buildProduct(t, path)
	case KindSum:
		return b.buildSum(t, path)
	default:
		return nil, muterrors.UnknownShape(path.String(), t.Kind.String())
	}
}

func (b *builder) buildRecursiveRef(t TypeRef, path Path) (Mutator, error) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].name == t.Name {
			d := NewDelayedMutator(path, t.Name)
			b.stack[i].delayed = append(b.stack[i].delayed, d)

			return d, nil
		}
	}

	return nil, muterrors.UnknownShape(path.String(), "recursive-ref to undeclared type "+t.Name)
}

func (b *builder) buildInt(t TypeRef, path Path) (Mutator, error) {
	var rng *Range

	if v, ok := t.Annotation(AnnotationRange); ok {
		r, _ := v.(Range)
		rng = &r
	}

	m, err := NewIntegralMutator(path, t.IntWidth, t.IntSigned, rng)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (b *builder) buildBytes(t TypeRef, path Path) (Mutator, error) {
	lo, hi := 0, defaultMaxBytes
	requireUTF8 := false

	if v, ok := t.Annotation(AnnotationSizeRange); ok {
		sz, _ := v.(SizeRange)
		if sz.Min != nil {
			lo = *sz.Min
		}

		if sz.Max != nil {
			hi = *sz.Max
		}
	}

	if v, ok := t.Annotation(AnnotationWithUtf8Length); ok {
		requireUTF8 = true

		sz, _ := v.(SizeRange)
		if sz.Min != nil {
			lo = *sz.Min
		}

		if sz.Max != nil {
			hi = *sz.Max
		}
	}

	if lo >= hi {
		return nil, muterrors.InvalidBounds(path.String(), int64(lo), int64(hi))
	}

	return NewByteStringMutator(lo, hi, requireUTF8), nil
}

// buildString realizes KindString as the byte-string mutator with
// WithUtf8Length forced on, so a TypeRef author can write KindString
// directly instead of spelling out KindBytes plus the annotation by hand.
func (b *builder) buildString(t TypeRef, path Path) (Mutator, error) {
	if _, ok := t.Annotation(AnnotationWithUtf8Length); !ok {
		sz := SizeRange{}

		if v, ok := t.Annotation(AnnotationSizeRange); ok {
			sz, _ = v.(SizeRange)
		}

		t = t.WithAnnotation(AnnotationWithUtf8Length, sz)
	}

	return b.buildBytes(t, path)
}

func (b *builder) buildFixed(t TypeRef, path Path) (Mutator, error) {
	value, _ := t.Annotation(AnnotationFixedValue)

	return NewFixedMutator(t, value), nil
}

func (b *builder) buildOptional(t TypeRef, path Path) (Mutator, error) {
	if t.Elem == nil {
		return nil, muterrors.UnknownShape(path.String(), "optional with no Elem")
	}

	inner, err := b.build(*t.Elem, path.Child("value"))
	if err != nil {
		return nil, muterrors.ChildFailed(path.String(), err)
	}

	_, notNull := t.Annotation(AnnotationNotNull)

	return NewOptionalMutator(inner, notNull), nil
}

func (b *builder) buildRepeated(t TypeRef, path Path) (Mutator, error) {
	if t.Elem == nil {
		return nil, muterrors.UnknownShape(path.String(), "repeated with no Elem")
	}

	lo, hi := 0, DefaultMaxRepeated

	if v, ok := t.Annotation(AnnotationSizeRange); ok {
		sz, _ := v.(SizeRange)
		if sz.Min != nil {
			lo = *sz.Min
		}

		if sz.Max != nil {
			hi = *sz.Max
		}
	}

	if lo > hi {
		return nil, muterrors.InvalidBounds(path.String(), int64(lo), int64(hi))
	}

	inner, err := b.build(*t.Elem, path.Child("element"))
	if err != nil {
		return nil, muterrors.ChildFailed(path.String(), err)
	}

	return NewRepeatedMutator(inner, lo, hi), nil
}

func (b *builder) buildProduct(t TypeRef, path Path) (Mutator, error) {
	f := &frame{name: t.Name}
	b.stack = append(b.stack, f)

	fields := make([]Mutator, len(t.Fields))

	for i, childType := range t.Fields {
		childPath := path.Child(fieldLabel(t.FieldNames, i))

		child, err := b.build(childType, childPath)
		if err != nil {
			b.stack = b.stack[:len(b.stack)-1]

			return nil, muterrors.ChildFailed(path.String(), err)
		}

		fields[i] = child
	}

	b.stack = b.stack[:len(b.stack)-1]

	pm := NewProductMutator(path, t.Name, fields, t.FieldNames)

	for _, d := range f.delayed {
		if err := d.Resolve(pm); err != nil {
			return nil, err
		}
	}

	return pm, nil
}

func (b *builder) buildSum(t TypeRef, path Path) (Mutator, error) {
	f := &frame{name: t.Name}
	b.stack = append(b.stack, f)

	branches := make([]Mutator, len(t.Fields))

	for i, childType := range t.Fields {
		childPath := path.Child(fieldLabel(t.FieldNames, i))

		child, err := b.build(childType, childPath)
		if err != nil {
			b.stack = b.stack[:len(b.stack)-1]

			return nil, muterrors.ChildFailed(path.String(), err)
		}

		branches[i] = child
	}

	b.stack = b.stack[:len(b.stack)-1]

	sm := NewSumMutator(t.Name, branches, t.FieldNames)

	for _, d := range f.delayed {
		if err := d.Resolve(sm); err != nil {
			return nil, err
		}
	}

	return sm, nil
}

func fieldLabel(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}

	return "field"
}
