// Command mutagen-fuzz drives a structure-aware mutation engine target
// against the byte-level fuzzing loop in internal/testrunner/fuzz,
// generating and mutating corpus entries as typed values rather than raw
// bytes (SPEC_FULL.md §1, §4.3).
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/orizon-lang/mutagen/internal/mutate"
	"github.com/orizon-lang/mutagen/internal/testrunner/fuzz"
)

func main() {
	var (
		dur        time.Duration
		seed       int64
		max        int
		par        int
		outPath    string
		crashDir   string
		corpusOut  string
		shapeKind  string
		printStats bool
		jsonStats  string
	)

	flag.DurationVar(&dur, "duration", 5*time.Second, "fuzzing duration")
	flag.Int64Var(&seed, "seed", 0, "random seed (0=time)")
	flag.IntVar(&max, "max", 4096, "max encoded input size")
	flag.IntVar(&par, "p", 1, "parallel workers")
	flag.StringVar(&outPath, "out", "", "optional crashes output file")
	flag.StringVar(&crashDir, "crash-dir", "", "optional directory to save each crashing input as a file")
	flag.StringVar(&corpusOut, "corpus-out", "", "directory to save the engine's own seed corpus before fuzzing")
	flag.StringVar(&shapeKind, "shape", "list", "demo shape to fuzz (list|record)")
	flag.BoolVar(&printStats, "stats", false, "print execution/crash statistics at end")
	flag.StringVar(&jsonStats, "json-stats", "", "write execution/crash stats as JSON to file")

	var minimizeBudget time.Duration

	flag.DurationVar(&minimizeBudget, "minimize-budget", 2*time.Second, "time budget per crash to spend shrinking it")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	root, err := mutate.Build(demoShape(shapeKind), mutate.RootPath())
	if err != nil {
		fatal("building mutator: ", err)
	}

	root = mutate.NewVersionedRootMutator(root)

	corpus, seedValues := seedCorpus(root, seed)

	if corpusOut != "" {
		if err := os.MkdirAll(corpusOut, 0o755); err != nil {
			fatal("creating corpus-out dir: ", err)
		}

		for i, c := range corpus {
			name := fmt.Sprintf("seed-%03d.bin", i)
			if err := os.WriteFile(filepath.Join(corpusOut, name), c, 0o644); err != nil {
				fatal("writing seed corpus: ", err)
			}
		}
	}

	target := decodeEncodeIdempotent(root)

	crashLog := &syncBuffer{}

	var w io.Writer = crashLog

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fatal("failed to open output: ", err)
		}

		defer f.Close()

		w = io.MultiWriter(crashLog, f)
	}

	if crashDir != "" {
		if err := os.MkdirAll(crashDir, 0o755); err != nil {
			fatal("creating crash dir: ", err)
		}
	}

	opts := fuzz.Options{Duration: dur, Seed: seed, MaxInput: max, Concurrency: par}

	start := time.Now()
	stats := fuzz.RunWithStats(opts, corpus, target, structuredMutator(root), w)
	elapsed := time.Since(start)

	if printStats {
		execsPerSec := float64(stats.Executions) / elapsed.Seconds()
		fmt.Printf("executions=%d crashes=%d duration=%s execs_per_sec=%.2f values_seen=%d\n",
			stats.Executions, stats.Crashes, elapsed.Truncate(time.Millisecond), execsPerSec, len(seedValues))
	}

	if stats.Crashes > 0 {
		minimized := minimizeCrashes(crashLog, target, seed, minimizeBudget)

		for i, m := range minimized {
			if crashDir != "" {
				name := fmt.Sprintf("min-%03d.bin", i)
				if err := os.WriteFile(filepath.Join(crashDir, name), m, 0o644); err != nil {
					fatal("writing minimized crash: ", err)
				}
			}
		}

		if printStats {
			fmt.Printf("minimized %d distinct crashing input(s)\n", len(minimized))
		}
	}

	if jsonStats != "" {
		body := fmt.Sprintf("{\"executions\":%d,\"crashes\":%d,\"duration_ms\":%d}\n",
			stats.Executions, stats.Crashes, elapsed.Milliseconds())

		if err := os.WriteFile(jsonStats, []byte(body), 0o644); err != nil {
			fatal("writing json stats: ", err)
		}
	}

	fmt.Println("fuzzing finished")
}

// decodeEncodeIdempotent is the demo's fuzz target: it checks that decoding
// arbitrary bytes into a value and re-encoding it is idempotent under a
// second decode/encode round. Read's totality (spec.md §4.4/§8) means any
// byte sequence decodes to some in-domain value; this target instead probes
// whether that value's own encoding is stable, a real correctness property
// a caller wiring in its own target would want checked before trusting
// corpus entries this engine produces.
func decodeEncodeIdempotent(root mutate.Mutator) fuzz.Target {
	return func(data []byte) error {
		v := root.Read(mutate.NewByteReader(data))

		w1 := mutate.NewByteWriter()
		root.Write(w1, v)

		v2 := root.Read(mutate.NewByteReader(w1.Bytes()))

		w2 := mutate.NewByteWriter()
		root.Write(w2, v2)

		if !bytes.Equal(w1.Bytes(), w2.Bytes()) {
			return fmt.Errorf("re-encoding a decoded value changed its bytes: %x != %x", w1.Bytes(), w2.Bytes())
		}

		if !reflect.DeepEqual(v, v2) {
			return fmt.Errorf("re-decoding a re-encoded value changed its shape: %v != %v", v, v2)
		}

		return nil
	}
}

// syncBuffer is a concurrency-safe io.Writer sink: fuzz.RunWithStats writes
// crash lines from one goroutine per worker, and bytes.Buffer alone is not
// safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}

// minimizeCrashes parses the "<timestamp>\t0x<hex>\t<error>" lines
// fuzz.RunWithStats wrote to log, decodes each distinct crashing input, and
// shrinks it with fuzz.Minimize within budget per input.
func minimizeCrashes(log *syncBuffer, target fuzz.Target, seed int64, budget time.Duration) [][]byte {
	seen := map[string]bool{}

	var out [][]byte

	for _, line := range strings.Split(log.String(), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		hexField := strings.TrimPrefix(parts[1], "0x")

		data, err := hex.DecodeString(hexField)
		if err != nil || seen[hexField] {
			continue
		}

		seen[hexField] = true

		out = append(out, fuzz.Minimize(seed, data, target, budget))
	}

	return out
}

// demoShape returns one of two illustrative TypeRefs: a recursive
// cons-list of bounded integers, or a flat record of mixed primitive
// fields. Both exercise Build's recursion handling and combinator
// dispatch without requiring an external descriptor.
func demoShape(kind string) mutate.TypeRef {
	switch strings.ToLower(kind) {
	case "record":
		lo, hi := int64(0), int64(1000)

		return productOf("Record", []string{"id", "active", "label"}, []mutate.TypeRef{
			mutate.NewIntTypeRef(mutate.Width32, true).WithAnnotation(mutate.AnnotationRange, mutate.Range{Min: &lo, Max: &hi}),
			mutate.NewTypeRef(mutate.KindBool),
			mutate.NewTypeRef(mutate.KindBytes).WithAnnotation(mutate.AnnotationWithUtf8Length, mutate.SizeRange{}),
		})
	default:
		return listShape()
	}
}

// listShape builds Cell = Product{ value: int32[0,1000], next: Optional<RecursiveRef("Cell")> }.
func listShape() mutate.TypeRef {
	lo, hi := int64(0), int64(1000)

	ref := mutate.NewTypeRef(mutate.KindRecursiveRef)
	ref.Name = "Cell"

	next := mutate.NewTypeRef(mutate.KindOptional)
	next.Elem = &ref

	return productOf("Cell", []string{"value", "next"}, []mutate.TypeRef{
		mutate.NewIntTypeRef(mutate.Width32, true).WithAnnotation(mutate.AnnotationRange, mutate.Range{Min: &lo, Max: &hi}),
		next,
	})
}

func productOf(name string, fieldNames []string, fields []mutate.TypeRef) mutate.TypeRef {
	t := mutate.NewTypeRef(mutate.KindProduct)
	t.Name = name
	t.FieldNames = fieldNames
	t.Fields = fields

	return t
}

// seedCorpus draws a handful of initial values from root and encodes them,
// giving fuzz.RunWithStats a non-empty starting corpus in the engine's own
// wire framing rather than an arbitrary byte seed.
func seedCorpus(root mutate.Mutator, seed int64) ([]fuzz.CorpusEntry, []any) {
	p := mutate.NewPRNG(seed)

	const n = 8

	corpus := make([]fuzz.CorpusEntry, 0, n)
	values := make([]any, 0, n)

	for i := 0; i < n; i++ {
		v := root.Init(p)
		w := mutate.NewByteWriter()
		root.Write(w, v)

		corpus = append(corpus, fuzz.CorpusEntry(w.Bytes()))
		values = append(values, v)
	}

	return corpus, values
}

// structuredMutator adapts root into the fuzz.Mutator signature the byte-
// level loop drives: decode the parent bytes through root, mutate the
// typed value, then re-encode, so every candidate the loop tries is a
// well-formed value of the target shape rather than an arbitrary byte
// edit (SPEC_FULL.md §1's reason to prefer a structure-aware mutator over
// fuzz.DefaultMutator's blind byte flips). Each call derives its own PRNG
// from the *rand.Rand the loop already seeded per-worker, so no separate
// seed needs to be threaded in here.
func structuredMutator(root mutate.Mutator) fuzz.Mutator {
	return func(r *rand.Rand, in []byte) []byte {
		p := mutate.NewPRNG(r.Int63())

		v := root.Read(mutate.NewByteReader(in))
		next := root.Mutate(v, p)

		w := mutate.NewByteWriter()
		root.Write(w, next)

		return w.Bytes()
	}
}

func fatal(a ...any) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}
