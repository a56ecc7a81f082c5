package paramset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsWhenAbsent(t *testing.T) {
	s := Set{}
	assert.False(t, s.Has("x"))
	assert.Equal(t, 1.5, s.Float64("x", 1.5))
	assert.Equal(t, 3, s.Int("x", 3))
	assert.Equal(t, "def", s.String("x", "def"))
	assert.True(t, s.Bool("x", true))
	assert.Equal(t, []string{"a"}, s.StringSlice("x", []string{"a"}))
}

func TestTypedGettersReadPresentValues(t *testing.T) {
	s := Set{
		"f":  2.5,
		"i":  7,
		"str": "hello",
		"b":  true,
		"ss": []string{"a", "b"},
	}
	assert.True(t, s.Has("f"))
	assert.Equal(t, 2.5, s.Float64("f", 0))
	assert.Equal(t, 7, s.Int("i", 0))
	assert.Equal(t, "hello", s.String("str", ""))
	assert.True(t, s.Bool("b", false))
	assert.Equal(t, []string{"a", "b"}, s.StringSlice("ss", nil))
}

func TestFloat64AcceptsIntAndFloat32(t *testing.T) {
	s := Set{"a": 3, "b": float32(1.5)}
	assert.Equal(t, 3.0, s.Float64("a", 0))
	assert.Equal(t, 1.5, s.Float64("b", 0))
}

func TestStringSliceAcceptsInterfaceSlice(t *testing.T) {
	s := Set{"ss": []interface{}{"x", "y"}}
	assert.Equal(t, []string{"x", "y"}, s.StringSlice("ss", nil))
}

func TestTypedGettersPanicOnWrongType(t *testing.T) {
	assert.Panics(t, func() { Set{"x": "nope"}.Float64("x", 0) })
	assert.Panics(t, func() { Set{"x": "nope"}.Int("x", 0) })
	assert.Panics(t, func() { Set{"x": 5}.String("x", "") })
	assert.Panics(t, func() { Set{"x": 5}.Bool("x", false) })
	assert.Panics(t, func() { Set{"x": 5}.StringSlice("x", nil) })
	assert.Panics(t, func() { Set{"x": []interface{}{5}}.StringSlice("x", nil) })
}
