package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedType is returned when a value falls outside the accepted
// scalar/binary types: string, []byte, int, int64, float32, float64.
var ErrUnsupportedType = errors.New("trace: unsupported value type")

// EncodeValue renders a value to the bytes stored for it. The rule,
// applied consistently everywhere a value crosses into the store:
//
//   - string:  the raw bytes of the string
//   - []byte:  the bytes as-is
//   - int, int64: base-10 digits
//   - float32, float64: strconv.FormatFloat 'g', 64-bit precision
func EncodeValue(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case []byte:
		out := make([]byte, len(x))
		copy(out, x)
		return out, nil
	case int:
		return []byte(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(x, 10)), nil
	case float32:
		return []byte(strconv.FormatFloat(float64(x), 'g', -1, 64)), nil
	case float64:
		return []byte(strconv.FormatFloat(x, 'g', -1, 64)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// quoteValue renders a single value for display inside a recorded
// argument tuple. Strings and byte slices are double-quoted Go literals
// so their boundaries survive round-tripping through the history list;
// numbers render as their EncodeValue text.
func quoteValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x), nil
	case []byte:
		return strconv.Quote(string(x)), nil
	default:
		enc, err := EncodeValue(v)
		if err != nil {
			return "", err
		}
		return string(enc), nil
	}
}

// FormatTuple renders a positional-argument tuple to its textual form,
// e.g. `("foo", 42)`. This is the representation appended to an
// operation's input-history list.
func FormatTuple(args []any) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		q, err := quoteValue(a)
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
		parts[i] = q
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
