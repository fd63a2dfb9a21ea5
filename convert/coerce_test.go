package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crdtools/crdtools/schema"
)

func TestBuiltinConversionWidening(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"same type", "uint16", "uint16", true},
		{"same representation different name", "u16", "uint16", true},
		{"unsigned widening", "u16", "usize", true},
		{"unsigned to wider signed", "uint16", "int32", true},
		{"unsigned to same-width signed", "uint32", "int32", false},
		{"signed widening", "int8", "int64", true},
		{"signed narrowing", "int64", "int8", false},
		{"signed to unsigned", "int16", "uint32", false},
		{"integer to float", "int64", "float64", true},
		{"float widening", "f32", "f64", true},
		{"float narrowing", "float64", "float32", false},
		{"float to integer", "float64", "int64", false},
		{"non-numeric", "string", "uint64", false},
		{"both non-numeric", "string", "bool", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := builtinConversion(schema.Type(tt.from), schema.Type(tt.to))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.NotNil(t, fn)
			}
		})
	}
}

func TestCoerceNumericValues(t *testing.T) {
	t.Run("unsigned to signed", func(t *testing.T) {
		fn, ok := builtinConversion("u16", "i32")
		require.True(t, ok)
		got, err := fn(float64(5))
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)
	})

	t.Run("integer to float", func(t *testing.T) {
		fn, ok := builtinConversion("i32", "f64")
		require.True(t, ok)
		got, err := fn(int64(7))
		require.NoError(t, err)
		assert.Equal(t, float64(7), got)
	})

	t.Run("fractional value into integer target", func(t *testing.T) {
		fn, ok := builtinConversion("u16", "u32")
		require.True(t, ok)
		_, err := fn(float64(1.5))
		assert.Error(t, err)
	})

	t.Run("negative value into unsigned target", func(t *testing.T) {
		fn, ok := builtinConversion("u16", "u32")
		require.True(t, ok)
		_, err := fn(float64(-1))
		assert.Error(t, err)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		fn, ok := builtinConversion("u16", "u32")
		require.True(t, ok)
		_, err := fn("five")
		assert.Error(t, err)
	})
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, uint64(0), zeroValue("u16"))
	assert.Equal(t, int64(0), zeroValue("int32"))
	assert.Equal(t, float64(0), zeroValue("f64"))
	assert.Equal(t, false, zeroValue("bool"))
	assert.Equal(t, "", zeroValue("string"))
	assert.Equal(t, []any{}, zeroValue("[]string"))
	assert.Equal(t, []any{}, zeroValue("Vec<String>"))
	assert.Equal(t, map[string]any{}, zeroValue("map[string]string"))
	assert.Nil(t, zeroValue("SomeStruct"))
}
