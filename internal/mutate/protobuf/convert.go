package protobuf

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// protoScalarToGo converts a field's current protoreflect.Value to the
// boxed `any` shape mutate's leaf mutators expect: int64 for every integer
// width and enum, float64 for both float kinds (float32 is narrowed back
// on the way out by FloatMutator itself), []byte for both bytes and string
// (a string is just a UTF-8-checked byte string at this boundary), and the
// boxed proto.Message for nested messages.
func protoScalarToGo(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return v.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return v.Int()
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return int64(uint32(v.Uint()))
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return int64(v.Uint())
	case protoreflect.FloatKind:
		return float64(float32(v.Float()))
	case protoreflect.DoubleKind:
		return v.Float()
	case protoreflect.StringKind:
		return []byte(v.String())
	case protoreflect.BytesKind:
		return append([]byte(nil), v.Bytes()...)
	case protoreflect.EnumKind:
		return int64(v.Enum())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return v.Message().Interface()
	default:
		return nil
	}
}

// goToProtoValue is protoScalarToGo's inverse, used when writing a mutated
// Go value back into a dynamicpb message field.
func goToProtoValue(fd protoreflect.FieldDescriptor, val any) protoreflect.Value {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return protoreflect.ValueOfBool(val.(bool))
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return protoreflect.ValueOfInt32(int32(val.(int64)))
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return protoreflect.ValueOfInt64(val.(int64))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return protoreflect.ValueOfUint32(uint32(val.(int64)))
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return protoreflect.ValueOfUint64(uint64(val.(int64)))
	case protoreflect.FloatKind:
		return protoreflect.ValueOfFloat32(float32(val.(float64)))
	case protoreflect.DoubleKind:
		return protoreflect.ValueOfFloat64(val.(float64))
	case protoreflect.StringKind:
		return protoreflect.ValueOfString(string(val.([]byte)))
	case protoreflect.BytesKind:
		return protoreflect.ValueOfBytes(val.([]byte))
	case protoreflect.EnumKind:
		return protoreflect.ValueOfEnum(protoreflect.EnumNumber(val.(int64)))
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return protoreflect.ValueOfMessage(val.(proto.Message).ProtoReflect())
	default:
		return protoreflect.Value{}
	}
}
