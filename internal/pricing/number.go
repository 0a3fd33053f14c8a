package pricing

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Number is a float64 that decodes leniently from JSON. Absent, null or
// non-numeric values decode to 0 instead of failing the whole payload.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*n = 0
		return nil
	}
	*n = Number(ToFloat(v))
	return nil
}

// Float returns n as a plain float64.
func (n Number) Float() float64 {
	return float64(n)
}

// String renders n the shortest way that round-trips, so 50 prints as "50"
// and 25.5 as "25.5".
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// ToFloat coerces v to a float64. Booleans, nil, NaN, infinities and anything
// cast cannot parse become 0.
func ToFloat(v any) float64 {
	switch x := v.(type) {
	case nil, bool:
		return 0
	case Number:
		return sanitize(float64(x))
	case float64:
		return sanitize(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return sanitize(f)
}

// sanitize also folds -0 into 0 so it never prints as "-0.00".
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	return f
}

// Flag is a boolean that decodes from any JSON scalar using truthiness:
// true, a non-empty string or a non-zero number are set.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*f = false
		return nil
	}

	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case string:
		*f = x != ""
	case float64:
		*f = Flag(x != 0 && !math.IsNaN(x))
	default:
		*f = false
	}
	return nil
}

// Text is a string that decodes from any JSON scalar. Numbers keep their
// shortest representation; null, arrays and objects decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*t = ""
		return nil
	}

	switch x := v.(type) {
	case string:
		*t = Text(x)
	case float64, bool:
		*t = Text(cast.ToString(x))
	default:
		*t = ""
	}
	return nil
}
