// Package normalize decides whether a value is semantically absent and strips
// absent values from JSON-like trees before they are compared or sent over
// the wire. Nil, empty strings, empty collections, and collections whose
// members are all themselves empty count as absent; zero and false do not.
package normalize

import (
	"fmt"
	"reflect"
)

// Rule overrides the default emptiness treatment for a named field.
type Rule int

const (
	// RuleDefault applies the standard emptiness semantics.
	RuleDefault Rule = iota
	// RuleKeepEmptyList marks a list-valued field the remote API requires to
	// be present even when empty. The field survives normalization as an
	// empty list and makes its enclosing map count as non-empty.
	RuleKeepEmptyList
)

// Rules maps field names to exception rules. A nil Rules applies defaults
// everywhere.
type Rules map[string]Rule

func (r Rules) ruleFor(field string) Rule {
	if r == nil {
		return RuleDefault
	}
	return r[field]
}

// IsEmpty reports whether v is semantically absent. It is total over any
// JSON-like value tree and never panics on scalars, slices, or maps.
func IsEmpty(v any, rules Rules) bool {
	rv, ok := concrete(v)
	if !ok {
		return true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !IsEmpty(rv.Index(i).Interface(), rules) {
				return false
			}
		}
		return true
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			field := fmt.Sprintf("%v", iter.Key().Interface())
			if rules.ruleFor(field) == RuleKeepEmptyList && isList(iter.Value()) {
				return false
			}
			if !IsEmpty(iter.Value().Interface(), rules) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Normalize recursively drops map keys and sequence elements that are empty.
// The boolean reports whether anything meaningful remains; when it is false
// the caller must treat the whole value as absent. Normalize is idempotent:
// applying it to its own output yields the same result.
func Normalize(v any, rules Rules) (any, bool) {
	rv, ok := concrete(v)
	if !ok {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil, false
		}
		return rv.Interface(), true
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if nv, present := Normalize(rv.Index(i).Interface(), rules); present {
				out = append(out, nv)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			field := fmt.Sprintf("%v", iter.Key().Interface())
			nv, present := Normalize(iter.Value().Interface(), rules)
			if present {
				out[field] = nv
				continue
			}
			if rules.ruleFor(field) == RuleKeepEmptyList && isList(iter.Value()) {
				out[field] = []any{}
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return rv.Interface(), true
	}
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
	if (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return reflect.Value{}, false
	}
	return rv, true
}

func isList(v reflect.Value) bool {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}
