package protobuf

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// builder mirrors mutate's own construction-stack recursion detection
// (internal/mutate/factory.go), but keyed by message full name instead of
// a TypeRef's Name: a self- or mutually-recursive message (e.g. a Tree
// message with a repeated Tree children field) is built once, and every
// further reference while its frame is still open resolves to a
// mutate.DelayedMutator fixed up once the ancestor's *messageMutator exists.
type builder struct {
	stack []*msgFrame
}

type msgFrame struct {
	name    protoreflect.FullName
	delayed []*mutate.DelayedMutator
}

func (b *builder) buildMessage(desc protoreflect.MessageDescriptor, path mutate.Path) (mutate.Mutator, error) {
	name := desc.FullName()

	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].name == name {
			d := mutate.NewDelayedMutator(path, string(name))
			b.stack[i].delayed = append(b.stack[i].delayed, d)

			return d, nil
		}
	}

	f := &msgFrame{name: name}
	b.stack = append(b.stack, f)

	slots := fieldSlots(desc)
	fields := make([]mutate.Mutator, len(slots))

	for i, s := range slots {
		fm, err := b.buildSlot(s, path.Child(s.name()))
		if err != nil {
			b.stack = b.stack[:len(b.stack)-1]

			return nil, err
		}

		fields[i] = fm
	}

	b.stack = b.stack[:len(b.stack)-1]

	mm := &messageMutator{desc: desc, slots: slots, fields: fields}

	for _, d := range f.delayed {
		if err := d.Resolve(mm); err != nil {
			return nil, err
		}
	}

	return mm, nil
}

func (b *builder) buildSlot(s fieldSlot, path mutate.Path) (mutate.Mutator, error) {
	if s.oneof != nil {
		return b.buildOneof(s, path)
	}

	return b.buildField(s.field, path)
}

func (b *builder) buildOneof(s fieldSlot, path mutate.Path) (mutate.Mutator, error) {
	branches := make([]mutate.Mutator, len(s.members)+1)
	names := make([]string, len(s.members)+1)

	branches[0] = mutate.NewFixedMutator(mutate.NewFixedTypeRef(nil), nil)
	names[0] = "absent"

	for i, fd := range s.members {
		fm, err := b.buildFieldValue(fd, path.Child(string(fd.Name())))
		if err != nil {
			return nil, err
		}

		branches[i+1] = fm
		names[i+1] = string(fd.Name())
	}

	return mutate.NewSumMutator(string(s.oneof.FullName()), branches, names), nil
}

func (b *builder) buildField(fd protoreflect.FieldDescriptor, path mutate.Path) (mutate.Mutator, error) {
	switch {
	case fd.IsMap():
		return b.buildMap(fd, path)
	case fd.IsList():
		elem, err := b.buildFieldValue(fd, path.Child("element"))
		if err != nil {
			return nil, err
		}

		return mutate.NewRepeatedMutator(elem, 0, mutate.DefaultMaxRepeated), nil
	case fd.HasOptionalKeyword():
		inner, err := b.buildFieldValue(fd, path.Child("value"))
		if err != nil {
			return nil, err
		}

		return mutate.NewOptionalMutator(inner, false), nil
	case fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind:
		return b.buildMessage(fd.Message(), path)
	default:
		inner, err := b.buildFieldValue(fd, path)
		if err != nil {
			return nil, err
		}
		// proto3 scalars without the explicit "optional" keyword are
		// always present with a default value, never absent.
		return mutate.NewOptionalMutator(inner, true), nil
	}
}

func (b *builder) buildFieldValue(fd protoreflect.FieldDescriptor, path mutate.Path) (mutate.Mutator, error) {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return b.buildMessage(fd.Message(), path)
	case protoreflect.EnumKind:
		return newEnumMutator(fd.Enum()), nil
	default:
		return mutate.Build(scalarTypeRef(fd), path)
	}
}

func (b *builder) buildMap(fd protoreflect.FieldDescriptor, path mutate.Path) (mutate.Mutator, error) {
	keyM, err := b.buildFieldValue(fd.MapKey(), path.Child("key"))
	if err != nil {
		return nil, err
	}

	valM, err := b.buildFieldValue(fd.MapValue(), path.Child("value"))
	if err != nil {
		return nil, err
	}

	pair := mutate.NewProductMutator(path, string(fd.FullName())+".entry", []mutate.Mutator{keyM, valM}, []string{"key", "value"})

	return &mapMutator{RepeatedMutator: mutate.NewRepeatedMutator(pair, 0, mutate.DefaultMaxRepeated)}, nil
}
