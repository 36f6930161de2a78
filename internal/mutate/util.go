package mutate

import "reflect"

// valuesEqual compares two boxed values for the sole purpose of a mutate
// loop's termination check (spec.md §4.3's "must not return v unchanged").
// Composite mutators box heterogeneous, sometimes non-comparable value
// shapes ([]any, []byte, nil), so equality has to go through reflection
// rather than ==.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
