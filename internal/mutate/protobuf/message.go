package protobuf

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// messageMutator is the Mutator a builder produces for one message type.
// Unlike the generic combinators, its values are *dynamicpb.Message, not a
// []any tuple: Read/Write walk the same per-slot framing as product (each
// slot's own mutator decodes/encodes its field in declaration order), not
// proto.Marshal/Unmarshal — the corpus byte form stays this engine's own
// stable framing (spec.md §6.1), not protobuf wire format. Detach becomes
// proto.Clone and DebugString becomes prototext.Format, so the in-memory
// value is a real *dynamicpb.Message any other protobuf-aware tool in the
// process can inspect via protoreflect, per SPEC_FULL.md §4.9a.
type messageMutator struct {
	desc   protoreflect.MessageDescriptor
	slots  []fieldSlot
	fields []mutate.Mutator // one per slot, same order as slots
}

func (m *messageMutator) TypeRef() mutate.TypeRef {
	fields := make([]mutate.TypeRef, len(m.fields))
	names := make([]string, len(m.fields))

	for i, f := range m.fields {
		fields[i] = f.TypeRef()
		names[i] = m.slots[i].name()
	}

	t := mutate.NewTypeRef(mutate.KindProduct)
	t.Name = string(m.desc.FullName())
	t.Fields = fields
	t.FieldNames = names

	return t
}

func (m *messageMutator) HasFixedSize() bool {
	for _, f := range m.fields {
		if !f.HasFixedSize() {
			return false
		}
	}

	return true
}

func (m *messageMutator) StructurallyShared() bool { return false }

func (m *messageMutator) Init(p mutate.RandomSource) any {
	msg := dynamicpb.NewMessage(m.desc)

	for i, s := range m.slots {
		m.setSlot(msg, s, m.fields[i].Init(p))
	}

	return msg
}

// Mutate picks one field uniformly and mutates only that field — the same
// field-at-a-time discipline spec.md §4.7 gives product — by cloning the
// message, reading the chosen slot's current Go value out, mutating it,
// and writing the result back in.
func (m *messageMutator) Mutate(v any, p mutate.RandomSource) any {
	clone := proto.Clone(v.(proto.Message))
	msg := clone.ProtoReflect()

	idx := p.IndexIn(len(m.slots))
	cur := m.getSlot(msg, m.slots[idx])
	next := m.fields[idx].Mutate(cur, p)
	m.setSlot(msg, m.slots[idx], next)

	return clone
}

func (m *messageMutator) Read(r *mutate.ByteReader) any {
	msg := dynamicpb.NewMessage(m.desc)

	for i, s := range m.slots {
		m.setSlot(msg, s, m.fields[i].Read(r))
	}

	return msg
}

func (m *messageMutator) Write(w *mutate.ByteWriter, v any) {
	msg := v.(proto.Message).ProtoReflect()

	for i, s := range m.slots {
		m.fields[i].Write(w, m.getSlot(msg, s))
	}
}

func (m *messageMutator) Detach(v any) any {
	return proto.Clone(v.(proto.Message))
}

func (m *messageMutator) DebugString(v any, inCycle func(mutate.Mutator) bool) string {
	if inCycle(m) {
		return string(m.desc.FullName())
	}

	msg, ok := v.(proto.Message)
	if !ok {
		return string(m.desc.FullName())
	}

	return prototext.Format(msg)
}

func (m *messageMutator) getSlot(msg protoreflect.Message, s fieldSlot) any {
	if s.oneof != nil {
		return m.getOneof(msg, s)
	}

	return m.getField(msg, s.field)
}

func (m *messageMutator) getOneof(msg protoreflect.Message, s fieldSlot) any {
	which := msg.WhichOneof(s.oneof)
	if which == nil {
		return mutate.SumValue{Tag: 0, Inner: nil}
	}

	for i, fd := range s.members {
		if fd.Number() == which.Number() {
			return mutate.SumValue{Tag: i + 1, Inner: protoScalarToGo(fd, msg.Get(fd))}
		}
	}

	return mutate.SumValue{Tag: 0, Inner: nil}
}

func (m *messageMutator) getField(msg protoreflect.Message, fd protoreflect.FieldDescriptor) any {
	switch {
	case fd.IsMap():
		return getMapGoValue(fd, msg.Get(fd).Map())
	case fd.IsList():
		l := msg.Get(fd).List()
		out := make([]any, l.Len())

		for i := 0; i < l.Len(); i++ {
			out[i] = protoScalarToGo(fd, l.Get(i))
		}

		return out
	case fd.HasOptionalKeyword():
		if !msg.Has(fd) {
			return nil
		}

		return protoScalarToGo(fd, msg.Get(fd))
	default:
		return protoScalarToGo(fd, msg.Get(fd))
	}
}

func (m *messageMutator) setSlot(msg protoreflect.Message, s fieldSlot, val any) {
	if s.oneof != nil {
		m.setOneof(msg, s, val)

		return
	}

	m.setField(msg, s.field, val)
}

func (m *messageMutator) setOneof(msg protoreflect.Message, s fieldSlot, val any) {
	sv, ok := val.(mutate.SumValue)
	if !ok || sv.Tag == 0 {
		for _, fd := range s.members {
			msg.Clear(fd)
		}

		return
	}

	fd := s.members[sv.Tag-1]
	msg.Set(fd, goToProtoValue(fd, sv.Inner))
}

func (m *messageMutator) setField(msg protoreflect.Message, fd protoreflect.FieldDescriptor, val any) {
	switch {
	case fd.IsMap():
		setMapGoValue(msg, fd, val)
	case fd.IsList():
		l := msg.Mutable(fd).List()
		l.Truncate(0)

		elems, _ := val.([]any)
		for _, e := range elems {
			l.Append(goToProtoValue(fd, e))
		}
	case fd.HasOptionalKeyword():
		if val == nil {
			msg.Clear(fd)

			return
		}

		msg.Set(fd, goToProtoValue(fd, val))
	default:
		if val == nil {
			msg.Clear(fd)

			return
		}

		msg.Set(fd, goToProtoValue(fd, val))
	}
}

func getMapGoValue(fd protoreflect.FieldDescriptor, mp protoreflect.Map) any {
	var out []any

	mp.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
		out = append(out, []any{protoScalarToGo(fd.MapKey(), k.Value()), protoScalarToGo(fd.MapValue(), v)})

		return true
	})

	if out == nil {
		out = []any{}
	}

	return out
}

func setMapGoValue(msg protoreflect.Message, fd protoreflect.FieldDescriptor, val any) {
	mp := msg.Mutable(fd).Map()

	var keys []protoreflect.MapKey

	mp.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
		keys = append(keys, k)

		return true
	})

	for _, k := range keys {
		mp.Clear(k)
	}

	pairs, _ := val.([]any)
	for _, e := range pairs {
		pair := e.([]any)
		k := goToProtoValue(fd.MapKey(), pair[0]).MapKey()
		v := goToProtoValue(fd.MapValue(), pair[1])
		mp.Set(k, v)
	}
}
