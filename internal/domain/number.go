package domain

import (
	"bytes"
	"math"
	"strconv"
)

// Number is a float64 that tolerates sloppy form input: JSON numbers, numeric
// strings, null, and garbage all decode without error, with anything
// non-numeric or non-finite read as zero.
type Number float64

// UnmarshalJSON never fails; it degrades to zero instead so a half-filled
// form still produces a renderable invoice.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Float returns the underlying value, with non-finite values read as zero.
func (n Number) Float() float64 {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
