package protobuf

import (
	"fmt"
	"sort"

	"github.com/orizon-lang/mutagen/internal/mutate"
)

// mapMutator wraps a repeated(product(key, value)) mutator with the
// canonical-map semantics SPEC_FULL.md's map field section describes:
// decoding dedupes by key, last entry wins (matching protobuf's own
// map-merge rule), and encoding always writes entries in key-sorted order,
// so two semantically equal maps serialize identically regardless of how
// many times a mutation round-tripped through insert/duplicate/shuffle.
type mapMutator struct {
	*mutate.RepeatedMutator
}

func (m *mapMutator) Read(r *mutate.ByteReader) any {
	raw, _ := m.RepeatedMutator.Read(r).([]any)

	seen := map[string]int{}
	out := make([]any, 0, len(raw))

	for _, e := range raw {
		pair := e.([]any)
		key := fmt.Sprint(pair[0])

		if idx, ok := seen[key]; ok {
			out[idx] = pair

			continue
		}

		seen[key] = len(out)
		out = append(out, pair)
	}

	return out
}

func (m *mapMutator) Write(w *mutate.ByteWriter, v any) {
	pairs := append([]any(nil), v.([]any)...)

	sort.Slice(pairs, func(i, j int) bool {
		return fmt.Sprint(pairs[i].([]any)[0]) < fmt.Sprint(pairs[j].([]any)[0])
	})

	m.RepeatedMutator.Write(w, pairs)
}
