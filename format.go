package tabular

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"time"
	"unsafe"
)

// TimeLayout is the single timestamp format used for time.Time fields. It keeps
// the UTC offset of the value instead of normalising to UTC; a zero offset is
// written as "Z".
const TimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

const (
	nanToken    = "NaN"
	negNaNToken = "-NaN"
	posInfToken = "Infinity"
	negInfToken = "-Infinity"
)

var (
	errFloatSyntax = errors.New("not a decimal floating-point literal")
	errFloatRange  = errors.New("value out of float64 range")
	errTimeSyntax  = errors.New("not a " + TimeLayout + " timestamp")
	errTimeYear    = errors.New("year outside [0, 9999]")
	errTimeOffset  = errors.New("UTC offset is not a whole number of minutes")
	errBoolSyntax  = errors.New(`want "true" or "false"`)
)

// AppendBool appends the canonical literal of v to dst.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, "true"...)
	}
	return append(dst, "false"...)
}

// ParseBool accepts exactly "true" or "false".
func ParseBool(b []byte) (bool, error) {
	switch string(b) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, newFieldError("bool", b, errBoolSyntax)
}

// AppendFloat64 appends the shortest decimal text that parses back to exactly v.
// NaN and the infinities are written as NaN, Infinity and -Infinity. A NaN keeps
// its sign bit (-NaN) but not its payload bits.
func AppendFloat64(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v) && math.Signbit(v):
		return append(dst, negNaNToken...)
	case math.IsNaN(v):
		return append(dst, nanToken...)
	case math.IsInf(v, 1):
		return append(dst, posInfToken...)
	case math.IsInf(v, -1):
		return append(dst, negInfToken...)
	}
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}

// ParseFloat64 decodes the text written by AppendFloat64. It accepts plain
// decimal literals with an optional sign, fraction and exponent, and the special
// tokens; hex floats, digit separators and surrounding space are rejected.
func ParseFloat64(b []byte) (float64, error) {
	switch string(b) {
	case nanToken:
		return math.NaN(), nil
	case negNaNToken:
		return math.Copysign(math.NaN(), -1), nil
	case posInfToken:
		return math.Inf(1), nil
	case negInfToken:
		return math.Inf(-1), nil
	}
	if !isDecimalLiteral(b) {
		return 0, newFieldError("float64", b, errFloatSyntax)
	}
	v, err := strconv.ParseFloat(bytesToString(b), 64)
	if err != nil {
		return 0, newFieldError("float64", b, errFloatRange)
	}
	return v, nil
}

func isDecimalLiteral(b []byte) bool {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	digits := 0
	for i < len(b) && isDigit(b[i]) {
		i++
		digits++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(b[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		exp := 0
		for i < len(b) && isDigit(b[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// AppendTime appends t in TimeLayout. It fails for values the layout cannot
// carry exactly: years outside [0, 9999] and offsets with a seconds part.
func AppendTime(dst []byte, t time.Time) ([]byte, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return dst, newFieldError("time", []byte(t.String()), errTimeYear)
	}
	if _, off := t.Zone(); off%60 != 0 {
		return dst, newFieldError("time", []byte(t.String()), errTimeOffset)
	}
	return t.AppendFormat(dst, TimeLayout), nil
}

// ParseTime decodes a TimeLayout timestamp. The result carries the encoded
// offset as a fixed zone (UTC for "Z"), independent of the local time zone.
func ParseTime(b []byte) (time.Time, error) {
	// YYYY-MM-DDThh:mm:ssZ is the shortest valid form.
	if len(b) < 20 || b[4] != '-' || b[7] != '-' || b[10] != 'T' || b[13] != ':' || b[16] != ':' {
		return time.Time{}, newFieldError("time", b, errTimeSyntax)
	}
	t, err := time.Parse(TimeLayout, bytesToString(b))
	if err != nil {
		return time.Time{}, newFieldError("time", b, errTimeSyntax)
	}
	if b[len(b)-1] == 'Z' {
		return t.UTC(), nil
	}
	_, off := t.Zone()
	return t.In(fixedZone(off)), nil
}

var zones sync.Map // offset seconds -> *time.Location

func fixedZone(offset int) *time.Location {
	if loc, ok := zones.Load(offset); ok {
		return loc.(*time.Location)
	}
	loc, _ := zones.LoadOrStore(offset, time.FixedZone("", offset))
	return loc.(*time.Location)
}

// bytesToString views b as a string without copying. The result must not
// outlive the next mutation of b.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
