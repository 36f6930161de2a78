package mutate

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orizon-lang/mutagen/internal/mutate/mutatemock"
	"github.com/orizon-lang/mutagen/internal/testrunner/prop"

	"go.uber.org/mock/gomock"
)

func TestForceInRange(t *testing.T) {
	tests := []struct {
		name       string
		raw, lo, hi int64
		want       int64
	}{
		// spec.md's worked example: Range[10,20], raw = -1 (all bits set in
		// a narrower width, sign-extended) folds to 11.
		{"negative raw folds forward", -1, 10, 20, 11},
		{"already in range", 15, 10, 20, 15},
		{"at lo", 10, 10, 20, 10},
		{"far below", -1000, 10, 20, 10 + (1000 % 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := forceInRange(tc.raw, tc.lo, tc.hi)
			if got != tc.want {
				t.Fatalf("forceInRange(%d, %d, %d) = %d, want %d", tc.raw, tc.lo, tc.hi, got, tc.want)
			}

			if got < tc.lo || got > tc.hi {
				t.Fatalf("forceInRange(%d, %d, %d) = %d out of [%d,%d]", tc.raw, tc.lo, tc.hi, got, tc.lo, tc.hi)
			}
		})
	}
}

// TestForceInRangeStaysInRange is the range invariant from spec.md §8:
// every raw 64-bit input folds into [lo, hi].
func TestForceInRangeStaysInRange(t *testing.T) {
	gen := func(r *rand.Rand, size int) [3]int64 {
		lo := r.Int63() % 1_000_000
		hi := lo + 1 + r.Int63()%1_000_000
		raw := r.Int63()
		if r.Intn(2) == 0 {
			raw = -raw
		}

		return [3]int64{raw, lo, hi}
	}

	result := prop.ForAll1(gen, nil, func(in [3]int64) bool {
		got := forceInRange(in[0], in[1], in[2])

		return got >= in[1] && got <= in[2]
	}, prop.Options{Trials: 500})

	if result.Failed {
		t.Fatalf("forceInRange produced an out-of-range value for input %v", result.FailingInput)
	}
}

func TestNewIntegralMutator_RejectsDegenerateRange(t *testing.T) {
	lo, hi := int64(5), int64(5)

	_, err := NewIntegralMutator(RootPath(), Width32, true, &Range{Min: &lo, Max: &hi})
	if err == nil {
		t.Fatal("expected an error for a single-value range, got nil")
	}
}

func TestIntegralMutator_MutateNeverReturnsSameValue(t *testing.T) {
	lo, hi := int64(10), int64(20)

	m, err := NewIntegralMutator(RootPath(), Width32, true, &Range{Min: &lo, Max: &hi})
	if err != nil {
		t.Fatalf("NewIntegralMutator: %v", err)
	}

	p := NewPRNG(42)

	cur := m.Init(p)
	for i := 0; i < 200; i++ {
		next := m.Mutate(cur, p)
		if next == cur {
			t.Fatalf("Mutate returned the same value %v on a domain of size 11", cur)
		}

		cur = next
	}
}

func TestIntegralMutator_ReadWriteRoundTrip(t *testing.T) {
	m, err := NewIntegralMutator(RootPath(), Width32, true, nil)
	if err != nil {
		t.Fatalf("NewIntegralMutator: %v", err)
	}

	p := NewPRNG(7)
	v := m.Init(p)

	w := NewByteWriter()
	m.Write(w, v)

	got := m.Read(NewByteReader(w.Bytes()))
	if diff := cmp.Diff(v, got); diff != "" {
		t.Fatalf("round trip mismatch (-init +read):\n%s", diff)
	}
}

func TestIntegralMutator_BitFlipForcedSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	rs := mutatemock.NewMockRandomSource(ctrl)

	lo, hi := int64(0), int64(255)
	m, err := NewIntegralMutator(RootPath(), Width8, false, &Range{Min: &lo, Max: &hi})
	if err != nil {
		t.Fatalf("NewIntegralMutator: %v", err)
	}

	// Force the bit-flip branch, flipping bit 0 of 0b0000_0000.
	rs.EXPECT().TrueInOneOutOf(bitFlipProbability).Return(true)
	rs.EXPECT().IndexIn(gomock.Any()).Return(0)

	got := m.Mutate(int64(0), rs)
	if got != int64(1) {
		t.Fatalf("bit-flip of 0 on bit 0 = %v, want 1", got)
	}
}
