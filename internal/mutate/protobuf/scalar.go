package protobuf

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// scalarTypeRef maps a non-message, non-enum field's protoreflect.Kind to
// the mutate.TypeRef its leaf mutator is built from. String fields reuse
// the byte-string mutator over its UTF-8-validating annotation rather than
// a separate string mutator, converting at the any boundary (see convert.go).
func scalarTypeRef(fd protoreflect.FieldDescriptor) mutate.TypeRef {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return mutate.NewTypeRef(mutate.KindBool)
	case protoreflect.FloatKind:
		return mutate.NewTypeRef(mutate.KindFloat32)
	case protoreflect.DoubleKind:
		return mutate.NewTypeRef(mutate.KindFloat64)
	case protoreflect.StringKind:
		return mutate.NewTypeRef(mutate.KindBytes).WithAnnotation(mutate.AnnotationWithUtf8Length, mutate.SizeRange{})
	case protoreflect.BytesKind:
		return mutate.NewTypeRef(mutate.KindBytes)
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return mutate.NewIntTypeRef(mutate.Width32, true)
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return mutate.NewIntTypeRef(mutate.Width64, true)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return mutate.NewIntTypeRef(mutate.Width32, false)
	default: // Uint64Kind, Fixed64Kind
		return mutate.NewIntTypeRef(mutate.Width64, false)
	}
}
