// Package mutate implements the structure-aware mutation engine: a
// compositional factory that builds typed mutators for primitive,
// bounded-integral, composite, variant, recursive, and repeated shapes.
package mutate

import "fmt"

// Kind is the base shape a TypeRef describes. Factories match on Kind
// (plus, for composite kinds, the element TypeRef) rather than on a
// reflective walk of a host-language type.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat32
	KindFloat64
	KindBytes
	// KindString is KindBytes plus AnnotationWithUtf8Length forced on; it
	// exists so a caller can ask for a UTF-8 string directly instead of
	// spelling out the annotation, the way protobuf.scalarTypeRef already
	// does for StringKind fields by hand.
	KindString
	KindProduct
	KindSum
	KindOptional
	KindRepeated
	KindFixed
	KindRecursiveRef
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindProduct:
		return "product"
	case KindSum:
		return "sum"
	case KindOptional:
		return "optional"
	case KindRepeated:
		return "repeated"
	case KindFixed:
		return "fixed"
	case KindRecursiveRef:
		return "recursive-ref"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AnnotationKey names a recognized piece of per-type metadata. Unknown keys
// are accepted and preserved (so an inner factory that understands them
// still sees them) but ignored by every factory in this package.
type AnnotationKey string

const (
	// AnnotationRange narrows an integral's bounds. Value type: Range.
	AnnotationRange AnnotationKey = "Range"
	// AnnotationNotNull forces an optional's presence to true at init. Only
	// its presence is read; OptionalMutator.TypeRef stores true.
	AnnotationNotNull AnnotationKey = "NotNull"
	// AnnotationSizeRange bounds a byte-string or repeated length. Value type: SizeRange.
	AnnotationSizeRange AnnotationKey = "SizeRange"
	// AnnotationWithUtf8Length bounds a string's encoded length and requires
	// well-formed UTF-8. Value type: SizeRange.
	AnnotationWithUtf8Length AnnotationKey = "WithUtf8Length"
	// AnnotationFixedValue carries a KindFixed TypeRef's constant. Value type: any.
	AnnotationFixedValue AnnotationKey = "FixedValue"
)

// Range narrows an integral's bounds; either side may be absent, in which
// case the integral's natural width limits apply on that side.
type Range struct {
	Min *int64
	Max *int64
}

// SizeRange bounds the length of a byte string or repeated sequence.
type SizeRange struct {
	Min *int
	Max *int
}

// TypeRef is the language-neutral description Build matches on.
// It is built once, at construction time, either by hand or by a
// descriptor-driven adapter (see package protobuf).
type TypeRef struct {
	Kind Kind
	// Name identifies a product/sum/recursive-ref type for debug strings and
	// recursion detection; it has no meaning for primitive kinds.
	Name string
	// Elem is the element type for Optional and Repeated.
	Elem *TypeRef
	// Fields is the child type list for Product and Sum (Sum's first entry
	// is conventionally the "absent"/default branch).
	Fields []TypeRef
	// FieldNames optionally labels Fields entries (same length as Fields, or empty).
	FieldNames []string
	// IntWidth and IntSigned describe a KindInt's natural encoding; both are
	// meaningful only when Kind == KindInt. Use NewIntTypeRef to set them.
	IntWidth  Width
	IntSigned bool

	annotations map[AnnotationKey]any
}

// NewTypeRef builds a TypeRef of the given kind with no annotations.
func NewTypeRef(kind Kind) TypeRef {
	return TypeRef{Kind: kind}
}

// NewIntTypeRef builds a KindInt TypeRef of the given natural width/signedness.
// Narrow further with WithAnnotation(AnnotationRange, ...).
func NewIntTypeRef(width Width, signed bool) TypeRef {
	t := NewTypeRef(KindInt)
	t.IntWidth = width
	t.IntSigned = signed

	return t
}

// NewStringTypeRef builds a KindString TypeRef. Narrow further with
// WithAnnotation(AnnotationSizeRange, ...).
func NewStringTypeRef() TypeRef { return NewTypeRef(KindString) }

// NewFixedTypeRef builds a KindFixed TypeRef carrying value as its sole member.
func NewFixedTypeRef(value any) TypeRef {
	t := NewTypeRef(KindFixed)

	return t.WithAnnotation(AnnotationFixedValue, value)
}

// WithAnnotation returns a copy of t with key set to value.
func (t TypeRef) WithAnnotation(key AnnotationKey, value any) TypeRef {
	out := t
	out.annotations = make(map[AnnotationKey]any, len(t.annotations)+1)

	for k, v := range t.annotations {
		out.annotations[k] = v
	}

	out.annotations[key] = value

	return out
}

// Annotation looks up a key; ok is false when the key is absent.
func (t TypeRef) Annotation(key AnnotationKey) (any, bool) {
	v, ok := t.annotations[key]

	return v, ok
}

// Path renders a dotted type path for error messages, e.g. "Root.field_a".
type Path struct {
	segments []string
}

// Child returns a new Path with seg appended.
func (p Path) Child(seg string) Path {
	out := Path{segments: make([]string, len(p.segments), len(p.segments)+1)}
	copy(out.segments, p.segments)
	out.segments = append(out.segments, seg)

	return out
}

// Index returns a new Path with an indexed element marker appended.
func (p Path) Index(i int) Path {
	return p.Child(fmt.Sprintf("[%d]", i))
}

// String renders the dotted path, e.g. "Root.field_a.element[*]".
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "Root"
	}

	out := "Root"
	for _, s := range p.segments {
		if len(s) > 0 && s[0] == '[' {
			out += s
		} else {
			out += "." + s
		}
	}

	return out
}

// RootPath returns the empty path, rendering as "Root".
func RootPath() Path { return Path{} }
