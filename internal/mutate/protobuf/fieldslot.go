// Package protobuf adapts a protobuf message descriptor into a mutate.Mutator
// tree without requiring generated code or a protoc invocation, per
// SPEC_FULL.md §4.9a: descriptors are built with descriptorpb/protodesc and
// values flow as *dynamicpb.Message, so the in-memory value is a real message
// any other protobuf-aware tool can inspect. The corpus byte form is this
// engine's own framing, not protobuf wire format.
package protobuf

import "google.golang.org/protobuf/reflect/protoreflect"

// fieldSlot is one ordered component of a message's product shape: either a
// group of mutually-exclusive oneof members, or a single plain field. Both
// the mutator builder and the message's Read/Write conversion walk the same
// fieldSlots(desc) order so they never drift apart.
type fieldSlot struct {
	oneof   protoreflect.OneofDescriptor
	members []protoreflect.FieldDescriptor // populated when oneof != nil

	field protoreflect.FieldDescriptor // populated when oneof == nil
}

// fieldSlots returns desc's fields grouped as real (non-synthetic) oneofs
// first, then every remaining plain field in declaration order. A proto3
// "optional" scalar's presence tracking is implemented by the compiler as
// a synthetic one-member oneof, which fieldSlots deliberately does not
// group — it surfaces as a plain field, and the adapter's optional
// handling keys off HasOptionalKeyword instead.
func fieldSlots(desc protoreflect.MessageDescriptor) []fieldSlot {
	handled := map[int]bool{}

	var out []fieldSlot

	oneofs := desc.Oneofs()
	for oi := 0; oi < oneofs.Len(); oi++ {
		od := oneofs.Get(oi)
		if od.IsSynthetic() {
			continue
		}

		members := make([]protoreflect.FieldDescriptor, od.Fields().Len())
		for fi := range members {
			members[fi] = od.Fields().Get(fi)
			handled[members[fi].Index()] = true
		}

		out = append(out, fieldSlot{oneof: od, members: members})
	}

	fields := desc.Fields()
	for fi := 0; fi < fields.Len(); fi++ {
		fd := fields.Get(fi)
		if handled[fd.Index()] {
			continue
		}

		out = append(out, fieldSlot{field: fd})
	}

	return out
}

func (s fieldSlot) name() string {
	if s.oneof != nil {
		return string(s.oneof.Name())
	}

	return string(s.field.Name())
}
