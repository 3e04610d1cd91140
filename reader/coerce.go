package reader

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueCoercer converts an allowable value of an array parameter to the
// declared element type so the enum is written with the right JSON type.
type ValueCoercer interface {
	Coerce(elementType, value string) (any, error)
}

// ValueCoercerFunc adapts a function to ValueCoercer.
type ValueCoercerFunc func(elementType, value string) (any, error)

// Coerce implements ValueCoercer.
func (f ValueCoercerFunc) Coerce(elementType, value string) (any, error) {
	return f(elementType, value)
}

// DefaultCoercer converts values to the primitive element types with
// strconv. Strings pass through unchanged; other element types are an error.
var DefaultCoercer ValueCoercer = ValueCoercerFunc(coercePrimitive)

func coercePrimitive(elementType, value string) (any, error) {
	switch strings.ToLower(elementType) {
	case "int", "integer":
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case "long":
		return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	case "float":
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case "double":
		return strconv.ParseFloat(strings.TrimSpace(value), 64)
	case "boolean":
		return strconv.ParseBool(strings.TrimSpace(value))
	case "string", "":
		return value, nil
	}
	return nil, fmt.Errorf("no conversion to %s", elementType)
}
