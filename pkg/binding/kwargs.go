package binding

import (
	"fmt"
	"math"
	"time"
)

// Integer is the set of integer types a generated constructor may accept
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of float types a generated constructor may accept
type Floating interface {
	~float32 | ~float64
}

// lookup returns the value of name, treating an explicit nil like absence
func lookup(kw Kwargs, name string) (any, bool) {
	v, ok := kw[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Bool reads a boolean argument. Absence means false.
func Bool(kw Kwargs, name string) (bool, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeMismatch(name, "bool", v)
	}
	return b, nil
}

// String reads an optional string argument
func String(kw Kwargs, name string) (*string, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, typeMismatch(name, "str", v)
	}
	return &s, nil
}

// Strings reads an optional list of strings. Hosts usually hand over []any.
func Strings(kw Kwargs, name string) ([]string, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, InvalidArgument(name, fmt.Errorf("item %d: expected str, got %T", i, item))
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, typeMismatch(name, "list[str]", v)
	}
}

// Int reads an optional integer argument, rejecting values T cannot hold
func Int[T Integer](kw Kwargs, name string) (*T, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return nil, nil
	}

	var out T
	switch n := v.(type) {
	case int:
		return convertSigned[T](name, int64(n))
	case int8:
		return convertSigned[T](name, int64(n))
	case int16:
		return convertSigned[T](name, int64(n))
	case int32:
		return convertSigned[T](name, int64(n))
	case int64:
		return convertSigned[T](name, n)
	case uint:
		return convertUnsigned[T](name, uint64(n))
	case uint8:
		return convertUnsigned[T](name, uint64(n))
	case uint16:
		return convertUnsigned[T](name, uint64(n))
	case uint32:
		return convertUnsigned[T](name, uint64(n))
	case uint64:
		return convertUnsigned[T](name, n)
	case float64:
		// JSON-decoding hosts deliver every number as float64
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, InvalidArgument(name, fmt.Errorf("%v is not an integer", n))
		}
		if n < 0 {
			if n < math.MinInt64 {
				return nil, InvalidArgument(name, fmt.Errorf("%v overflows %T", n, out))
			}
			return convertSigned[T](name, int64(n))
		}
		if n >= math.MaxUint64 {
			return nil, InvalidArgument(name, fmt.Errorf("%v overflows %T", n, out))
		}
		return convertUnsigned[T](name, uint64(n))
	default:
		return nil, typeMismatch(name, "int", v)
	}
}

func convertSigned[T Integer](name string, n int64) (*T, error) {
	out := T(n)
	if int64(out) != n || (n < 0) != (out < 0) {
		return nil, InvalidArgument(name, fmt.Errorf("%d overflows %T", n, out))
	}
	return &out, nil
}

func convertUnsigned[T Integer](name string, n uint64) (*T, error) {
	out := T(n)
	if uint64(out) != n || out < 0 {
		return nil, InvalidArgument(name, fmt.Errorf("%d overflows %T", n, out))
	}
	return &out, nil
}

// Float reads an optional float argument. Integers are widened.
func Float[T Floating](kw Kwargs, name string) (*T, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return nil, nil
	}
	f, err := toFloat(name, v)
	if err != nil {
		return nil, err
	}
	out := T(f)
	return &out, nil
}

// Duration reads an optional time delta given as float seconds. A
// time.Duration value is accepted as is.
func Duration(kw Kwargs, name string) (*time.Duration, error) {
	v, ok := lookup(kw, name)
	if !ok {
		return nil, nil
	}
	if d, ok := v.(time.Duration); ok {
		return &d, nil
	}
	seconds, err := toFloat(name, v)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(seconds) {
		return nil, InvalidArgument(name, fmt.Errorf("duration is not a number"))
	}
	if seconds < 0 {
		return nil, InvalidArgument(name, fmt.Errorf("negative duration %vs", seconds))
	}
	// float64(math.MaxInt64) rounds up to 2^63
	if seconds*float64(time.Second) >= math.MaxInt64 {
		return nil, InvalidArgument(name, fmt.Errorf("duration %vs overflows", seconds))
	}
	d := time.Duration(seconds * float64(time.Second))
	return &d, nil
}

func toFloat(name string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, typeMismatch(name, "float", v)
	}
}
