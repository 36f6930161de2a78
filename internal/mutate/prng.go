package mutate

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// RandomSource is the deterministic pseudo-random abstraction every mutator
// is driven by. It is an interface (rather than a concrete *PRNG parameter)
// so factory-chain and combinator tests can substitute a mock that forces a
// specific draw, matching the worked examples in spec.md §8.
type RandomSource interface {
	// ClosedRange returns v with lo <= v <= hi, uniformly over the 64-bit
	// domain, without overflow even when hi-lo spans the full signed range.
	ClosedRange(lo, hi int64) int64
	// IndexIn returns i with 0 <= i < n. Panics (EngineBug) if n <= 0.
	IndexIn(n int) int
	// Choice returns a uniform boolean.
	Choice() bool
	// TrueInOneOutOf returns true with probability 1/n. Panics if n < 1.
	TrueInOneOutOf(n int) bool
	// Bytes returns n uniform random bytes.
	Bytes(n int) []byte
}

// PRNG is the engine's concrete RandomSource: a seeded math/rand generator.
// Two PRNGs constructed with the same seed produce the same sequence, the
// determinism invariant of spec.md §3.
type PRNG struct {
	r *rand.Rand
}

// NewPRNG seeds a new deterministic source.
func NewPRNG(seed int64) *PRNG {
	return &PRNG{r: rand.New(rand.NewSource(seed))}
}

// Derive mixes a base seed with a salt (e.g. a worker index) via SHA-256,
// the same scheme the fuzz driver uses to hand out independent per-worker
// seeds from one run seed.
func Derive(base int64, salt int) int64 {
	var b [16]byte

	binary.LittleEndian.PutUint64(b[0:8], uint64(base))
	binary.LittleEndian.PutUint64(b[8:16], uint64(salt))
	sum := sha256.Sum256(b[:])

	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

func (p *PRNG) ClosedRange(lo, hi int64) int64 {
	checkState(hi >= lo, "ClosedRange", "hi (%d) < lo (%d)", hi, lo)

	// span is the unsigned distance hi-lo computed mod 2^64: correct even
	// when the signed subtraction hi-lo would itself overflow int64.
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		// The domain is the full signed 64-bit range; any uint64 draw,
		// reinterpreted as int64, is a valid uniform pick.
		return int64(p.r.Uint64())
	}

	n := span + 1
	draw := p.r.Uint64() % n

	return int64(uint64(lo) + draw)
}

func (p *PRNG) IndexIn(n int) int {
	checkState(n > 0, "IndexIn", "n (%d) <= 0", n)

	return p.r.Intn(n)
}

func (p *PRNG) Choice() bool {
	return p.r.Intn(2) == 0
}

func (p *PRNG) TrueInOneOutOf(n int) bool {
	checkState(n >= 1, "TrueInOneOutOf", "n (%d) < 1", n)

	return p.r.Intn(n) == 0
}

func (p *PRNG) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(p.r.Intn(256))
	}

	return out
}

// PickIn returns a uniform element of xs. A free function, not a method: Go
// forbids generic methods on a non-generic receiver.
func PickIn[T any](p RandomSource, xs []T) T {
	return xs[p.IndexIn(len(xs))]
}
