package mutate

import (
	"fmt"

	muterrors "github.com/orizon-lang/mutagen/internal/errors"
)

// EngineBug is raised (via panic) for operational errors: states that
// indicate a bug in the engine or its caller rather than a malformed
// construction or a decodable-but-unusual input. spec.md §7 classifies
// these as "should not occur in correct use" and mandates no retry.
type EngineBug struct {
	Op      string
	Message string
}

func (e *EngineBug) Error() string {
	return fmt.Sprintf("engine bug in %s: %s", e.Op, e.Message)
}

// checkState panics with an EngineBug when cond is false. Used for the
// operational invariants of §7: mutate on a size-1 domain, indexIn(0),
// resolving an unresolved delayed.
func checkState(cond bool, op, format string, args ...any) {
	if !cond {
		panic(&EngineBug{Op: op, Message: fmt.Sprintf(format, args...)})
	}
}

// checkBounds validates a non-degenerate [lo, hi] range at construction
// time, returning a *muterrors.StandardError (not a panic) since this is a
// construction-time, caller-correctable failure.
func checkBounds(path Path, lo, hi int64) error {
	if lo >= hi {
		return muterrors.InvalidBounds(path.String(), lo, hi)
	}

	return nil
}
