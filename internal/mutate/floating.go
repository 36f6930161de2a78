package mutate

import (
	"fmt"
	"math"
)

// FloatMutator mutates an IEEE-754 float32 or float64, per spec.md §4.5.
// Values are always carried as float64 (the engine's boxed value type);
// Width32 additionally narrows Read/Write/Mutate to float32 precision.
type FloatMutator struct {
	width    Width
	specials []float64
}

// NewFloat32Mutator and NewFloat64Mutator build the two supported widths.
func NewFloat32Mutator() *FloatMutator { return newFloatMutator(Width32) }
func NewFloat64Mutator() *FloatMutator { return newFloatMutator(Width64) }

func newFloatMutator(width Width) *FloatMutator {
	m := &FloatMutator{width: width}

	if width == Width32 {
		m.specials = []float64{
			0, math.Copysign(0, -1), 1, -1, float64(float32(math.NaN())),
			float64(float32(math.Inf(1))), float64(float32(math.Inf(-1))),
			float64(-math.MaxFloat32), float64(math.MaxFloat32),
		}
	} else {
		m.specials = []float64{
			0, math.Copysign(0, -1), 1, -1, math.NaN(),
			math.Inf(1), math.Inf(-1), -math.MaxFloat64, math.MaxFloat64,
		}
	}

	return m
}

func (m *FloatMutator) TypeRef() TypeRef {
	if m.width == Width32 {
		return NewTypeRef(KindFloat32)
	}

	return NewTypeRef(KindFloat64)
}

func (m *FloatMutator) HasFixedSize() bool       { return true }
func (m *FloatMutator) StructurallyShared() bool { return false }

func (m *FloatMutator) Init(p RandomSource) any {
	n := len(m.specials)
	choice := p.IndexIn(n + 1)

	if choice < n {
		return m.narrow(m.specials[choice])
	}

	return m.narrow(m.randomDraw(p))
}

func (m *FloatMutator) Mutate(v any, p RandomSource) any {
	cur := v.(float64)

	for {
		var next float64

		switch {
		case p.TrueInOneOutOf(3):
			next = PickIn(p, m.specials)
		case p.TrueInOneOutOf(2):
			next = m.bitFlip(cur, p)
		default:
			next = m.randomDraw(p)
		}

		next = m.narrow(next)
		if !sameFloatBits(next, cur, m.width) {
			return next
		}
	}
}

func (m *FloatMutator) bitFlip(v float64, p RandomSource) float64 {
	if m.width == Width32 {
		bits := math.Float32bits(float32(v))
		bit := p.IndexIn(32)
		bits ^= uint32(1) << uint(bit)

		return float64(math.Float32frombits(bits))
	}

	bits := math.Float64bits(v)
	bit := p.IndexIn(64)
	bits ^= uint64(1) << uint(bit)

	return math.Float64frombits(bits)
}

func (m *FloatMutator) randomDraw(p RandomSource) float64 {
	if m.width == Width32 {
		raw := p.ClosedRange(math.MinInt32, math.MaxInt32)

		return float64(math.Float32frombits(uint32(raw)))
	}

	hi := p.ClosedRange(math.MinInt64, math.MaxInt64)

	return math.Float64frombits(uint64(hi))
}

func (m *FloatMutator) narrow(v float64) float64 {
	if m.width == Width32 {
		return float64(float32(v))
	}

	return v
}

func sameFloatBits(a, b float64, width Width) bool {
	if width == Width32 {
		return math.Float32bits(float32(a)) == math.Float32bits(float32(b))
	}

	return math.Float64bits(a) == math.Float64bits(b)
}

func (m *FloatMutator) Read(r *ByteReader) any {
	if m.width == Width32 {
		b := r.ReadN(4)
		u := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])

		return float64(math.Float32frombits(u))
	}

	b := r.ReadN(8)

	var u uint64
	for _, bb := range b {
		u = u<<8 | uint64(bb)
	}

	return math.Float64frombits(u)
}

func (m *FloatMutator) Write(w *ByteWriter, v any) {
	val := v.(float64)

	if m.width == Width32 {
		u := math.Float32bits(float32(val))
		w.WriteN([]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})

		return
	}

	u := math.Float64bits(val)
	out := make([]byte, 8)

	for i := 7; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}

	w.WriteN(out)
}

func (m *FloatMutator) Detach(v any) any { return v }

func (m *FloatMutator) DebugString(v any, _ func(Mutator) bool) string {
	return fmt.Sprintf("float%d(%v)", int(m.width)*8, v.(float64))
}
