package entities

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxSafe is the largest value any currency or stat may hold.
// It matches the largest integer a float64 represents exactly.
const MaxSafe Num = 9007199254740991

// Num is a non-fractional game quantity. Persisted documents written by older
// clients store some numbers as strings, floats or null; decoding coerces all
// of them and treats anything unparseable as 0.
type Num int64

// UnmarshalJSON implements lenient decoding
func (n *Num) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Num(i)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = FromFloat(math.Trunc(f))
	return nil
}

// Clamp bounds n to [0, MaxSafe]
func (n Num) Clamp() Num {
	if n < 0 {
		return 0
	}
	if n > MaxSafe {
		return MaxSafe
	}
	return n
}

// Float returns n as a float64
func (n Num) Float() float64 {
	return float64(n)
}

// FromFloat converts f to Num, saturating at the int64 range
func FromFloat(f float64) Num {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return Num(f)
}

// Round converts f to the nearest Num, halves away from zero
func Round(f float64) Num {
	return FromFloat(math.Round(f))
}

// AddCapped adds b to a and clamps the result to [0, MaxSafe] without overflowing
func AddCapped(a, b Num) Num {
	if b > 0 && a > MaxSafe-b {
		return MaxSafe
	}
	return (a + b).Clamp()
}
