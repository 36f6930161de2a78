package protobuf

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// NewMessageMutator builds a mutate.Mutator for desc: every singular
// scalar maps to the matching primitive mutator, optional maps to
// optional, repeated maps to repeated, oneof maps to sum with an absent
// branch, map<K,V> maps to repeated(product(K,V)) with dedup-on-read and
// sorted-write, and nested (including recursive) messages recurse through
// the same construction-stack cycle detection mutate.Build uses
// internally, per SPEC_FULL.md §4.9a/§4.9b.
func NewMessageMutator(desc protoreflect.MessageDescriptor) (mutate.Mutator, error) {
	b := &builder{}

	return b.buildMessage(desc, mutate.RootPath())
}

// BuildFileDescriptor assembles one or more self-contained message shapes
// (no imports, no extensions) into a real protoreflect.FileDescriptor via
// descriptorpb and protodesc — the same path protoc itself drives — so a
// caller can describe a fuzz target's wire shape entirely in Go without a
// .proto file or a protoc invocation.
func BuildFileDescriptor(pkg string, messages ...*descriptorpb.DescriptorProto) (protoreflect.FileDescriptor, error) {
	fdProto := &descriptorpb.FileDescriptorProto{
		Name:        proto.String(pkg + ".proto"),
		Package:     proto.String(pkg),
		Syntax:      proto.String("proto3"),
		MessageType: messages,
	}

	return protodesc.NewFile(fdProto, protoregistry.GlobalFiles)
}
