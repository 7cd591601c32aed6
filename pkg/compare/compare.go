// Package compare implements structural equality over JSON-like value trees
// (maps, sequences, scalars) for configuration diffing.
package compare

import (
	"fmt"
	"reflect"
)

// Equal reports whether a and b are structurally equal.
//
// Scalars are compared strictly with no type coercion: 1 is never equal to
// "1", and an int is never equal to a float of the same magnitude. Sequences
// are compared element-by-element at matching indices, so order matters for
// all arrays; callers that want set semantics must sort before comparing.
// Maps are compared by key set and recursively by value, with insertion order
// irrelevant. A sequence is never equal to a map, even when the map's keys
// look like indices. Inputs must be acyclic.
func Equal(a, b any) bool {
	av, aOK := concrete(a)
	bv, bOK := concrete(b)
	if !aOK || !bOK {
		return !aOK && !bOK
	}

	aList, bList := isListKind(av.Kind()), isListKind(bv.Kind())
	aMap, bMap := av.Kind() == reflect.Map, bv.Kind() == reflect.Map

	switch {
	case aList || bList:
		if !aList || !bList {
			return false
		}
		return equalLists(av, bv)
	case aMap || bMap:
		if !aMap || !bMap {
			return false
		}
		return equalMaps(av, bv)
	default:
		return equalScalars(av, bv)
	}
}

func equalLists(av, bv reflect.Value) bool {
	if av.Len() != bv.Len() {
		return false
	}
	for i := 0; i < av.Len(); i++ {
		if !Equal(av.Index(i).Interface(), bv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func equalMaps(av, bv reflect.Value) bool {
	if av.Len() != bv.Len() {
		return false
	}

	bByKey := make(map[string]reflect.Value, bv.Len())
	iterB := bv.MapRange()
	for iterB.Next() {
		bByKey[fmt.Sprintf("%v", iterB.Key().Interface())] = iterB.Value()
	}

	iterA := av.MapRange()
	for iterA.Next() {
		key := fmt.Sprintf("%v", iterA.Key().Interface())
		bVal, exists := bByKey[key]
		if !exists {
			return false
		}
		if !Equal(iterA.Value().Interface(), bVal.Interface()) {
			return false
		}
	}
	return true
}

func equalScalars(av, bv reflect.Value) bool {
	if av.Type() != bv.Type() {
		return false
	}
	if !av.Type().Comparable() {
		return false
	}
	return av.Interface() == bv.Interface()
}

func concrete(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	return rv, true
}

func isListKind(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}
