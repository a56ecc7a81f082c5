// Package paramset implements a flat, typed-getter parameter contract:
// every parameter has a default, so a caller can hand over an empty Set and
// still get a runnable configuration.
package paramset

import "fmt"

// Set is a flat parameter bag, modeled on a component-configuration
// attribute map: a map of arbitrary values with typed getters that fall
// back to a caller-supplied default when the key is absent, and panic when
// the key is present but holds a value of the wrong type (a configuration
// bug, not a runtime one).
type Set map[string]interface{}

// Has reports whether name is present in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Float64 returns the float64 value stored at name, or def if absent.
func (s Set) Float64(name string, def float64) float64 {
	v, ok := s[name]
	if !ok {
		return def
	}
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	case int:
		return float64(f)
	default:
		panic(fmt.Errorf("paramset: wanted a float64 for %q but got %v (%T)", name, v, v))
	}
}

// Int returns the int value stored at name, or def if absent.
func (s Set) Int(name string, def int) int {
	v, ok := s[name]
	if !ok {
		return def
	}
	switch i := v.(type) {
	case int:
		return i
	case float64:
		return int(i)
	default:
		panic(fmt.Errorf("paramset: wanted an int for %q but got %v (%T)", name, v, v))
	}
}

// String returns the string value stored at name, or def if absent.
func (s Set) String(name string, def string) string {
	v, ok := s[name]
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		panic(fmt.Errorf("paramset: wanted a string for %q but got %v (%T)", name, v, v))
	}
	return str
}

// Bool returns the bool value stored at name, or def if absent.
func (s Set) Bool(name string, def bool) bool {
	v, ok := s[name]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		panic(fmt.Errorf("paramset: wanted a bool for %q but got %v (%T)", name, v, v))
	}
	return b
}

// StringSlice returns the []string stored at name, or def if absent.
func (s Set) StringSlice(name string, def []string) []string {
	v, ok := s[name]
	if !ok {
		return def
	}
	switch sl := v.(type) {
	case []string:
		return sl
	case []interface{}:
		out := make([]string, len(sl))
		for i, e := range sl {
			str, ok := e.(string)
			if !ok {
				panic(fmt.Errorf("paramset: wanted a string slice for %q but element %d was %T", name, i, e))
			}
			out[i] = str
		}
		return out
	default:
		panic(fmt.Errorf("paramset: wanted a string slice for %q but got %v (%T)", name, v, v))
	}
}
