package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/crdtools/crdtools/schema"
)

// numericClass groups declared types by representation.
type numericClass int

const (
	classSigned numericClass = iota
	classUnsigned
	classFloat
)

// numericInfo describes a numeric declared type.
type numericInfo struct {
	class numericClass
	bits  int
}

// numericTypes maps declared type names to their numeric class and width.
// Both Go-style ("uint16") and Rust-style ("u16", "usize") names are
// recognized, since schema declarations commonly use either convention.
var numericTypes = map[schema.Type]numericInfo{
	"int8":  {classSigned, 8},
	"int16": {classSigned, 16},
	"int32": {classSigned, 32},
	"int64": {classSigned, 64},
	"int":   {classSigned, 64},
	"i8":    {classSigned, 8},
	"i16":   {classSigned, 16},
	"i32":   {classSigned, 32},
	"i64":   {classSigned, 64},
	"isize": {classSigned, 64},

	"uint8":  {classUnsigned, 8},
	"uint16": {classUnsigned, 16},
	"uint32": {classUnsigned, 32},
	"uint64": {classUnsigned, 64},
	"uint":   {classUnsigned, 64},
	"u8":     {classUnsigned, 8},
	"u16":    {classUnsigned, 16},
	"u32":    {classUnsigned, 32},
	"u64":    {classUnsigned, 64},
	"usize":  {classUnsigned, 64},

	"float32": {classFloat, 32},
	"float64": {classFloat, 64},
	"f32":     {classFloat, 32},
	"f64":     {classFloat, 64},
}

// builtinConversion returns a value conversion for a type change, or false
// when no built-in conversion exists between the two types.
//
// Built-in conversions cover the numeric widenings: a numeric value may move
// to a wider type of the same class, from unsigned to a strictly wider
// signed type, and from any integer to a float. Everything else requires a
// caller-supplied conversion function.
func builtinConversion(from, to schema.Type) (schema.ConvertFunc, bool) {
	if from == to {
		return identityConversion, true
	}

	fromInfo, fromOK := numericTypes[from]
	toInfo, toOK := numericTypes[to]
	if !fromOK || !toOK {
		return nil, false
	}
	if fromInfo.class == toInfo.class && fromInfo.bits == toInfo.bits {
		// Same representation under a different name, e.g. u16 -> uint16.
		return identityConversion, true
	}
	if !widens(fromInfo, toInfo) {
		return nil, false
	}

	return func(v any) (any, error) {
		return coerceNumeric(v, toInfo)
	}, true
}

func identityConversion(v any) (any, error) {
	return v, nil
}

// HasBuiltinConversion reports whether values convert between the two
// declared types without a caller-supplied conversion function.
func HasBuiltinConversion(from, to schema.Type) bool {
	_, ok := builtinConversion(from, to)
	return ok
}

// widens reports whether a value of from always fits into to.
func widens(from, to numericInfo) bool {
	switch to.class {
	case classFloat:
		// Integers always fit; floats only widen to equal or more bits.
		return from.class != classFloat || from.bits <= to.bits
	case classSigned:
		if from.class == classSigned {
			return from.bits <= to.bits
		}
		if from.class == classUnsigned {
			return from.bits < to.bits
		}
		return false
	case classUnsigned:
		return from.class == classUnsigned && from.bits <= to.bits
	default:
		return false
	}
}

// coerceNumeric normalizes a decoded value into the canonical representation
// of the target class: int64 for signed, uint64 for unsigned, float64 for
// float. JSON decoding yields float64 for all numbers, so that is the common
// input; native integer types are accepted for values built in code.
func coerceNumeric(v any, to numericInfo) (any, error) {
	switch to.class {
	case classFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		}
	case classSigned:
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("value %v is not an integer", n)
			}
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case uint64:
			if n > math.MaxInt64 {
				return nil, fmt.Errorf("value %v overflows the target type", n)
			}
			return int64(n), nil
		}
	case classUnsigned:
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("value %v is not an integer", n)
			}
			if n < 0 {
				return nil, fmt.Errorf("value %v is negative", n)
			}
			return uint64(n), nil
		case int:
			if n < 0 {
				return nil, fmt.Errorf("value %v is negative", n)
			}
			return uint64(n), nil
		case int64:
			if n < 0 {
				return nil, fmt.Errorf("value %v is negative", n)
			}
			return uint64(n), nil
		case uint64:
			return n, nil
		}
	}
	return nil, fmt.Errorf("value of type %T is not numeric", v)
}

// zeroValue returns the zero value for a declared type, used to synthesize
// added items without a default value provider.
func zeroValue(t schema.Type) any {
	if info, ok := numericTypes[t]; ok {
		switch info.class {
		case classSigned:
			return int64(0)
		case classUnsigned:
			return uint64(0)
		case classFloat:
			return float64(0)
		}
	}

	name := string(t)
	switch {
	case name == "bool":
		return false
	case name == "string" || name == "String":
		return ""
	case strings.HasPrefix(name, "[]") || strings.HasPrefix(name, "Vec<"):
		return []any{}
	case strings.HasPrefix(name, "map[") || strings.HasPrefix(name, "HashMap<") || strings.HasPrefix(name, "BTreeMap<"):
		return map[string]any{}
	default:
		return nil
	}
}
