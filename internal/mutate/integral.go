package mutate

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// Width is the natural byte width of an integral mutator's encoding.
type Width int

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

const (
	bitFlipProbability   = 4 // mutate: 1/4 chance of a bit flip
	randomWalkProbability = 2 // else: 1/2 chance of a random walk
	randomWalkSpan        = 5 // walk step: +/- 5
	randomWalkSmallDomain = 5 // (hi/2 - lo/2) <= this falls back to full uniform draw
)

// IntegralMutator mutates a bounded-range integer, per spec.md §4.4.
type IntegralMutator struct {
	path Path

	width  Width
	signed bool
	lo, hi int64

	specialValues []int64

	largestMutableBitPositive int
	largestMutableBitNegative int
}

// NewIntegralMutator builds a bounded integer mutator. rng narrows the
// width/signedness's natural limits; either side may be nil. Returns a
// construction error if the narrowed bounds are degenerate (lo >= hi) —
// spec.md §9's first Open Question is resolved as "remain an error": a
// Range that narrows to one value should use a fixed-value mutator instead,
// since silently substituting one would hide what is usually a caller bug.
func NewIntegralMutator(path Path, width Width, signed bool, rng *Range) (*IntegralMutator, error) {
	lo, hi := naturalLimits(width, signed)

	if rng != nil {
		if rng.Min != nil && *rng.Min > lo {
			lo = *rng.Min
		}

		if rng.Max != nil && *rng.Max < hi {
			hi = *rng.Max
		}
	}

	if err := checkBounds(path, lo, hi); err != nil {
		return nil, err
	}

	m := &IntegralMutator{path: path, width: width, signed: signed, lo: lo, hi: hi}
	m.specialValues = dedupSortedIntersect([]int64{0, 1, lo, hi}, lo, hi)
	m.largestMutableBitPositive = bitWidthOf(maxInt64(hi, 0))
	m.largestMutableBitNegative = bitWidthOf(maxInt64(-minInt64(lo, 0), 0))

	return m, nil
}

func naturalLimits(width Width, signed bool) (lo, hi int64) {
	bitsN := uint(width) * 8
	if !signed {
		if bitsN >= 64 {
			return 0, math.MaxInt64 // unsigned 64-bit doesn't fit int64; engine caps at MaxInt64.
		}

		return 0, int64(1)<<bitsN - 1
	}

	if bitsN >= 64 {
		return math.MinInt64, math.MaxInt64
	}

	return -(int64(1) << (bitsN - 1)), int64(1)<<(bitsN-1) - 1
}

func dedupSortedIntersect(candidates []int64, lo, hi int64) []int64 {
	set := make(map[int64]struct{}, len(candidates))

	for _, c := range candidates {
		if c >= lo && c <= hi {
			set[c] = struct{}{}
		}
	}

	out := make([]int64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func bitWidthOf(v int64) int {
	if v <= 0 {
		return 0
	}

	return bits.Len64(uint64(v))
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}

func (m *IntegralMutator) TypeRef() TypeRef {
	rng := Range{Min: &m.lo, Max: &m.hi}

	return NewTypeRef(KindInt).WithAnnotation(AnnotationRange, rng)
}

func (m *IntegralMutator) HasFixedSize() bool       { return true }
func (m *IntegralMutator) StructurallyShared() bool { return false }

// Init draws a special value with probability 1/(|specialValues|+1) each,
// else uniform in [lo, hi].
func (m *IntegralMutator) Init(p RandomSource) any {
	n := len(m.specialValues)
	choice := p.IndexIn(n + 1)

	if choice < n {
		return m.specialValues[choice]
	}

	return p.ClosedRange(m.lo, m.hi)
}

// Mutate repeats bit-flip / random-walk / uniform draws until the value changes.
func (m *IntegralMutator) Mutate(v any, p RandomSource) any {
	cur := v.(int64)

	for {
		var next int64

		switch {
		case p.TrueInOneOutOf(bitFlipProbability):
			next = m.bitFlip(cur, p)
		case p.TrueInOneOutOf(randomWalkProbability):
			next = m.randomWalk(cur, p)
		default:
			next = p.ClosedRange(m.lo, m.hi)
		}

		if next != cur {
			return next
		}
	}
}

func (m *IntegralMutator) bitFlip(v int64, p RandomSource) int64 {
	width := m.largestMutableBitPositive
	if v < 0 {
		width = m.largestMutableBitNegative
	}

	if width <= 0 {
		return p.ClosedRange(m.lo, m.hi)
	}

	bit := p.IndexIn(width)
	flipped := int64(uint64(v) ^ (uint64(1) << uint(bit)))

	if flipped < m.lo || flipped > m.hi {
		return p.ClosedRange(m.lo, m.hi)
	}

	return flipped
}

func (m *IntegralMutator) randomWalk(v int64, p RandomSource) int64 {
	if m.hi/2-m.lo/2 <= randomWalkSmallDomain {
		return p.ClosedRange(m.lo, m.hi)
	}

	lo := maxInt64(m.lo, v-randomWalkSpan)
	hi := minInt64(m.hi, v+randomWalkSpan)

	return p.ClosedRange(lo, hi)
}

// Read consumes the natural width as big-endian bytes, then range-folds.
func (m *IntegralMutator) Read(r *ByteReader) any {
	raw := m.readRaw(r.ReadN(int(m.width)))

	return forceInRange(raw, m.lo, m.hi)
}

func (m *IntegralMutator) readRaw(b []byte) int64 {
	var u uint64
	for _, bb := range b {
		u = u<<8 | uint64(bb)
	}

	switch m.width {
	case Width8:
		if m.signed {
			return int64(int8(u))
		}

		return int64(uint8(u))
	case Width16:
		if m.signed {
			return int64(int16(u))
		}

		return int64(uint16(u))
	case Width32:
		if m.signed {
			return int64(int32(u))
		}

		return int64(uint32(u))
	default:
		return int64(u)
	}
}

// forceInRange folds any raw 64-bit value into [lo, hi], preserving most of
// raw's bits so byte-level corpus mutations stay productive even under a
// narrow range (spec.md §4.4).
func forceInRange(raw, lo, hi int64) int64 {
	rng := hi - lo
	if rng > 0 {
		diff := raw - lo
		mod := diff % rng

		if mod < 0 {
			mod = -mod
		}

		return lo + mod
	}

	// rng <= 0: hi-lo itself overflowed int64 (the domain spans the full
	// signed range split). raw already falls in range unless it doesn't.
	if raw >= lo && raw <= hi {
		return raw
	}

	return raw + rng
}

// Write encodes v as fixed-width big-endian.
func (m *IntegralMutator) Write(w *ByteWriter, v any) {
	val := v.(int64)
	u := uint64(val)
	n := int(m.width)
	out := make([]byte, n)

	for i := n - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}

	w.WriteN(out)
}

func (m *IntegralMutator) Detach(v any) any { return v }

func (m *IntegralMutator) DebugString(v any, inCycle func(Mutator) bool) string {
	return fmt.Sprintf("int%d[%d,%d](%d)", int(m.width)*8, m.lo, m.hi, v.(int64))
}
