package mutate

import (
	"testing"
	"unicode/utf8"
)

func TestBuild_SimpleProduct(t *testing.T) {
	lo, hi := int64(0), int64(100)
	tr := NewTypeRef(KindProduct)
	tr.Name = "Point"
	tr.FieldNames = []string{"x", "y"}
	tr.Fields = []TypeRef{
		NewIntTypeRef(Width32, true).WithAnnotation(AnnotationRange, Range{Min: &lo, Max: &hi}),
		NewTypeRef(KindBool),
	}

	m, err := Build(tr, RootPath())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p := NewPRNG(81)
	v := m.Init(p)

	w := NewByteWriter()
	m.Write(w, v)

	got := m.Read(NewByteReader(w.Bytes()))
	if !valuesEqual(got, v) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, v)
	}
}

// TestBuild_RecursiveProduct builds a self-referential list-cell shape:
//
//	Cell = Product{ value: int, next: Optional<RecursiveRef("Cell")> }
//
// and checks that Build resolves the recursive reference into a working
// DelayedMutator instead of recursing forever.
func TestBuild_RecursiveProduct(t *testing.T) {
	lo, hi := int64(0), int64(1000)

	ref := NewTypeRef(KindRecursiveRef)
	ref.Name = "Cell"

	optNext := NewTypeRef(KindOptional)
	optNext.Elem = &ref

	tr := NewTypeRef(KindProduct)
	tr.Name = "Cell"
	tr.FieldNames = []string{"value", "next"}
	tr.Fields = []TypeRef{
		NewIntTypeRef(Width32, true).WithAnnotation(AnnotationRange, Range{Min: &lo, Max: &hi}),
		optNext,
	}

	m, err := Build(tr, RootPath())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p := NewPRNG(82)
	v := m.Init(p)

	w := NewByteWriter()
	m.Write(w, v)

	got := m.Read(NewByteReader(w.Bytes()))
	if !valuesEqual(got, v) {
		t.Fatalf("round trip mismatch on a recursive shape: got %v, want %v", got, v)
	}

	noCycle := func(Mutator) bool { return false }
	s := m.DebugString(v, noCycle)
	if s == "" {
		t.Fatal("DebugString of a recursive shape returned an empty string")
	}
}

func TestBuild_RecursiveRefToUndeclaredTypeErrors(t *testing.T) {
	ref := NewTypeRef(KindRecursiveRef)
	ref.Name = "DoesNotExist"

	_, err := Build(ref, RootPath())
	if err == nil {
		t.Fatal("expected an error building a recursive-ref with no enclosing product/sum")
	}
}

func TestBuild_DegenerateByteStringRangeErrors(t *testing.T) {
	lo, hi := 5, 5
	tr := NewTypeRef(KindBytes).WithAnnotation(AnnotationSizeRange, SizeRange{Min: &lo, Max: &hi})

	_, err := Build(tr, RootPath())
	if err == nil {
		t.Fatal("expected an error for a degenerate byte-string size range")
	}
}

func TestBuild_OptionalWithoutElemErrors(t *testing.T) {
	tr := NewTypeRef(KindOptional)

	_, err := Build(tr, RootPath())
	if err == nil {
		t.Fatal("expected an error for an optional with no Elem set")
	}
}

func TestBuild_StringTypeRef(t *testing.T) {
	m, err := Build(NewStringTypeRef(), RootPath())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p := NewPRNG(84)
	v := m.Init(p)

	if !utf8.Valid(v.([]byte)) {
		t.Fatalf("Init produced invalid UTF-8: %q", v)
	}

	w := NewByteWriter()
	m.Write(w, v)

	got := m.Read(NewByteReader(w.Bytes()))
	if !valuesEqual(got, v) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, v)
	}
}

func TestBuild_UnknownKindErrors(t *testing.T) {
	tr := NewTypeRef(KindRecursiveRef + 100)

	_, err := Build(tr, RootPath())
	if err == nil {
		t.Fatal("expected an error for an unrecognized Kind")
	}
}
