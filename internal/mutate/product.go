package mutate

import (
	"fmt"
	"strings"
)

// ProductMutator composes a fixed-arity tuple of heterogeneously-typed
// fields, per spec.md §4.7. Values are carried as []any in field
// declaration order.
type ProductMutator struct {
	path       Path
	name       string
	fields     []Mutator
	fieldNames []string
}

// NewProductMutator builds a product over fields, named per fieldNames
// (used only for TypeRef and debug rendering; len(fieldNames) may be 0 to
// fall back to positional names).
func NewProductMutator(path Path, name string, fields []Mutator, fieldNames []string) *ProductMutator {
	return &ProductMutator{path: path, name: name, fields: fields, fieldNames: fieldNames}
}

func (m *ProductMutator) TypeRef() TypeRef {
	fields := make([]TypeRef, len(m.fields))
	for i, f := range m.fields {
		fields[i] = f.TypeRef()
	}

	t := NewTypeRef(KindProduct)
	t.Name = m.name
	t.Fields = fields
	t.FieldNames = m.fieldNames

	return t
}

func (m *ProductMutator) HasFixedSize() bool {
	for _, f := range m.fields {
		if !f.HasFixedSize() {
			return false
		}
	}

	return true
}

func (m *ProductMutator) StructurallyShared() bool { return false }

// Init runs every field's Init and tuples the results.
func (m *ProductMutator) Init(p RandomSource) any {
	out := make([]any, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Init(p)
	}

	return out
}

// Mutate picks one field uniformly and mutates only that field, per
// spec.md §4.7 — the other fields are left exactly as they were.
func (m *ProductMutator) Mutate(v any, p RandomSource) any {
	cur := v.([]any)

	out := make([]any, len(cur))
	copy(out, cur)

	idx := p.IndexIn(len(m.fields))
	out[idx] = m.fields[idx].Mutate(cur[idx], p)

	return out
}

// Read decodes each field in declaration order and concatenates their framing.
func (m *ProductMutator) Read(r *ByteReader) any {
	out := make([]any, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Read(r)
	}

	return out
}

func (m *ProductMutator) Write(w *ByteWriter, v any) {
	vals := v.([]any)
	for i, f := range m.fields {
		f.Write(w, vals[i])
	}
}

func (m *ProductMutator) Detach(v any) any {
	vals := v.([]any)
	out := make([]any, len(vals))

	for i, f := range m.fields {
		out[i] = f.Detach(vals[i])
	}

	return out
}

func (m *ProductMutator) fieldName(i int) string {
	if i < len(m.fieldNames) && m.fieldNames[i] != "" {
		return m.fieldNames[i]
	}

	return fmt.Sprintf("_%d", i)
}

func (m *ProductMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	if inCycle(m) {
		return m.name
	}

	childInCycle := func(x Mutator) bool { return x == m || inCycle(x) }

	vals, _ := v.([]any)

	var b strings.Builder

	b.WriteString(m.name)
	b.WriteString("{")

	for i, f := range m.fields {
		if i > 0 {
			b.WriteString(", ")
		}

		var val any
		if vals != nil {
			val = vals[i]
		}

		b.WriteString(m.fieldName(i))
		b.WriteString(": ")
		b.WriteString(f.DebugString(val, childInCycle))
	}

	b.WriteString("}")

	return b.String()
}
