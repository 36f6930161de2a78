package protobuf

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// buildNodeDescriptor assembles a self-contained "Node" message exercising
// a plain scalar, a repeated scalar, a nested enum, a map<string,string>, a
// oneof, and a recursive repeated-message field — without a .proto file or
// a protoc invocation, the way SPEC_FULL.md §4.9a's adapter is meant to be
// driven.
func buildNodeDescriptor(t *testing.T) protoreflect.MessageDescriptor {
	t.Helper()

	label := func(l descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto_Label { return &l }
	kind := func(k descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type { return &k }

	mapEntry := &descriptorpb.DescriptorProto{
		Name: proto.String("AttrsEntry"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{Name: proto.String("key"), Number: proto.Int32(1), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
			{Name: proto.String("value"), Number: proto.Int32(2), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}

	status := &descriptorpb.EnumDescriptorProto{
		Name: proto.String("Status"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("UNKNOWN"), Number: proto.Int32(0)},
			{Name: proto.String("ACTIVE"), Number: proto.Int32(1)},
			{Name: proto.String("RETIRED"), Number: proto.Int32(2)},
		},
	}

	node := &descriptorpb.DescriptorProto{
		Name: proto.String("Node"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{Name: proto.String("id"), Number: proto.Int32(1), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_INT32)},
			{Name: proto.String("tags"), Number: proto.Int32(2), Label: label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
			{Name: proto.String("status"), Number: proto.Int32(3), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_ENUM), TypeName: proto.String(".testpb.Node.Status")},
			{Name: proto.String("attrs"), Number: proto.Int32(4), Label: label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: proto.String(".testpb.Node.AttrsEntry")},
			{Name: proto.String("count"), Number: proto.Int32(5), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_INT32), OneofIndex: proto.Int32(0)},
			{Name: proto.String("text"), Number: proto.Int32(6), Label: label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_STRING), OneofIndex: proto.Int32(0)},
			{Name: proto.String("children"), Number: proto.Int32(7), Label: label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED), Type: kind(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: proto.String(".testpb.Node")},
		},
		NestedType: []*descriptorpb.DescriptorProto{mapEntry},
		EnumType:   []*descriptorpb.EnumDescriptorProto{status},
		OneofDecl: []*descriptorpb.OneofDescriptorProto{
			{Name: proto.String("payload")},
		},
	}

	file, err := BuildFileDescriptor("testpb", node)
	if err != nil {
		t.Fatalf("BuildFileDescriptor: %v", err)
	}

	return file.Messages().ByName("Node")
}

func TestMessageMutator_InitMutateWriteReadRoundTrip(t *testing.T) {
	desc := buildNodeDescriptor(t)

	m, err := NewMessageMutator(desc)
	if err != nil {
		t.Fatalf("NewMessageMutator: %v", err)
	}

	p := mutate.NewPRNG(101)
	v := m.Init(p)

	if _, ok := v.(proto.Message); !ok {
		t.Fatalf("Init produced %T, want proto.Message", v)
	}

	for i := 0; i < 20; i++ {
		v = m.Mutate(v, p)
	}

	w := mutate.NewByteWriter()
	m.Write(w, v)

	got := m.Read(mutate.NewByteReader(w.Bytes()))
	if _, ok := got.(proto.Message); !ok {
		t.Fatalf("Read produced %T, want proto.Message", got)
	}
}

func TestMessageMutator_DetachIsIndependent(t *testing.T) {
	desc := buildNodeDescriptor(t)

	m, err := NewMessageMutator(desc)
	if err != nil {
		t.Fatalf("NewMessageMutator: %v", err)
	}

	p := mutate.NewPRNG(102)
	v := m.Init(p)

	d := m.Detach(v).(proto.Message)
	if d == v.(proto.Message) {
		t.Fatal("Detach returned the same message instance")
	}

	dr := d.ProtoReflect()
	idField := dr.Descriptor().Fields().ByName("id")
	dr.Set(idField, protoreflect.ValueOfInt32(12345))

	orig := v.(proto.Message).ProtoReflect()
	if orig.Get(idField).Int() == 12345 {
		t.Fatal("mutating the detached clone affected the original message")
	}
}

func TestMessageMutator_DebugStringUsesPrototext(t *testing.T) {
	desc := buildNodeDescriptor(t)

	m, err := NewMessageMutator(desc)
	if err != nil {
		t.Fatalf("NewMessageMutator: %v", err)
	}

	p := mutate.NewPRNG(103)
	v := m.Init(p)

	noCycle := func(mutate.Mutator) bool { return false }
	if s := m.DebugString(v, noCycle); s == "" {
		t.Fatal("DebugString returned an empty string")
	}
}

func TestMapMutator_ReadDedupesByKeyLastWins(t *testing.T) {
	desc := buildNodeDescriptor(t)
	attrs := desc.Fields().ByName("attrs")

	keyM, err := mutate.Build(scalarTypeRef(attrs.MapKey()), mutate.RootPath())
	if err != nil {
		t.Fatalf("building map key mutator: %v", err)
	}

	valM, err := mutate.Build(scalarTypeRef(attrs.MapValue()), mutate.RootPath())
	if err != nil {
		t.Fatalf("building map value mutator: %v", err)
	}

	pair := mutate.NewProductMutator(mutate.RootPath(), "AttrsEntry", []mutate.Mutator{keyM, valM}, []string{"key", "value"})
	mm := &mapMutator{RepeatedMutator: mutate.NewRepeatedMutator(pair, 0, mutate.DefaultMaxRepeated)}

	w := mutate.NewByteWriter()
	raw := []any{
		[]any{[]byte("a"), []byte("1")},
		[]any{[]byte("b"), []byte("2")},
		[]any{[]byte("a"), []byte("3")},
	}
	mm.RepeatedMutator.Write(w, raw)

	got := mm.Read(mutate.NewByteReader(w.Bytes())).([]any)
	if len(got) != 2 {
		t.Fatalf("Read produced %d entries, want 2 after dedup", len(got))
	}

	for _, e := range got {
		pair := e.([]any)
		if string(pair[0].([]byte)) == "a" && string(pair[1].([]byte)) != "3" {
			t.Fatalf("key %q did not keep the last value: %v", "a", pair)
		}
	}
}

func TestEnumMutator_MutateAndDebugString(t *testing.T) {
	desc := buildNodeDescriptor(t)
	status := desc.Fields().ByName("status")

	em := newEnumMutator(status.Enum())
	p := mutate.NewPRNG(104)

	cur := em.Init(p)
	for i := 0; i < 50; i++ {
		next := em.Mutate(cur, p)
		if next == cur {
			t.Fatalf("Mutate returned the same enum value %v", cur)
		}

		cur = next
	}

	s := em.DebugString(cur, func(mutate.Mutator) bool { return false })
	if s == "" {
		t.Fatal("enum DebugString returned an empty string")
	}
}
