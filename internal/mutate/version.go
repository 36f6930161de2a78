package mutate

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CorpusFormatVersion is the version this build's root-mutator framing
// writes, per SPEC_FULL.md §6.1a. It describes the corpus file's byte
// framing, not a fuzz target's TypeRef schema (which varies target to
// target and build to build); only the outermost root mutator needs this
// bookkeeping; nested combinators compose without it.
const CorpusFormatVersion = "1.0.0"

var corpusFormatVersion = semver.MustParse(CorpusFormatVersion)

// VersionedRootMutator wraps a root Mutator with a one-byte format-version
// prefix on Read/Write. Read never rejects a mismatched tag itself —
// decoder totality (spec.md §6.1) takes priority over strictness — but
// CheckCorpusVersion lets a driver warn or refuse before trusting a
// corpus directory grown under an incompatible build.
type VersionedRootMutator struct {
	Mutator
}

// NewVersionedRootMutator wraps root so it reads/writes with the current
// build's corpus format version tag.
func NewVersionedRootMutator(root Mutator) *VersionedRootMutator {
	return &VersionedRootMutator{Mutator: root}
}

func (m *VersionedRootMutator) Read(r *ByteReader) any {
	r.ReadN(1) // version tag; validated out-of-band via CheckCorpusVersion.

	return m.Mutator.Read(r)
}

func (m *VersionedRootMutator) Write(w *ByteWriter, v any) {
	w.WriteN([]byte{byte(corpusFormatVersion.Major())})
	m.Mutator.Write(w, v)
}

// CheckCorpusVersion reports whether tag, as read from a corpus entry's
// leading byte, names a major version this build accepts. Callers that
// load a corpus directory should check each entry before handing its
// bytes to a VersionedRootMutator.Read.
func CheckCorpusVersion(tag byte) error {
	constraint, err := semver.NewConstraint(fmt.Sprintf("~%d", tag))
	if err != nil {
		return fmt.Errorf("corpus version tag %d is not a valid major version: %w", tag, err)
	}

	if !constraint.Check(corpusFormatVersion) {
		return fmt.Errorf("corpus format version %d is incompatible with this build's format %s", tag, CorpusFormatVersion)
	}

	return nil
}
