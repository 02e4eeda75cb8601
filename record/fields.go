package record

import (
	"fmt"
	"time"

	"github.com/oleg578/tabular"
)

// The conversions below let engines that exchange []string records share the
// field formats of the tabular codec, so output of one engine reads back in
// any other.

// AppendFields appends the four fields of v to dst.
func (v S) AppendFields(dst []string) ([]string, error) {
	return append(dst, v.Field0, v.Field1, v.Field2, v.Field3), nil
}

// ParseS builds an S from exactly four fields.
func ParseS(fields []string) (S, error) {
	if err := checkWidth(fields); err != nil {
		return S{}, err
	}
	return S{Field0: fields[0], Field1: fields[1], Field2: fields[2], Field3: fields[3]}, nil
}

// AppendFields appends the four fields of v to dst.
func (v N) AppendFields(dst []string) ([]string, error) {
	return append(dst, formatFloat(v.Field0), formatFloat(v.Field1), formatFloat(v.Field2), formatFloat(v.Field3)), nil
}

// ParseN builds an N from exactly four fields.
func ParseN(fields []string) (N, error) {
	if err := checkWidth(fields); err != nil {
		return N{}, err
	}
	var (
		v   N
		err error
	)
	for i, dst := range [Width]*float64{&v.Field0, &v.Field1, &v.Field2, &v.Field3} {
		if *dst, err = tabular.ParseFloat64([]byte(fields[i])); err != nil {
			return N{}, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	return v, nil
}

// AppendFields appends the four fields of v to dst.
func (v D) AppendFields(dst []string) ([]string, error) {
	for i, t := range [Width]time.Time{v.Field0, v.Field1, v.Field2, v.Field3} {
		s, err := formatTime(t)
		if err != nil {
			return dst, fmt.Errorf("field %d: %w", i+1, err)
		}
		dst = append(dst, s)
	}
	return dst, nil
}

// ParseD builds a D from exactly four fields.
func ParseD(fields []string) (D, error) {
	if err := checkWidth(fields); err != nil {
		return D{}, err
	}
	var (
		v   D
		err error
	)
	for i, dst := range [Width]*time.Time{&v.Field0, &v.Field1, &v.Field2, &v.Field3} {
		if *dst, err = tabular.ParseTime([]byte(fields[i])); err != nil {
			return D{}, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	return v, nil
}

// AppendFields appends the four fields of v to dst.
func (v M) AppendFields(dst []string) ([]string, error) {
	ts, err := formatTime(v.Field3)
	if err != nil {
		return dst, fmt.Errorf("field 4: %w", err)
	}
	return append(dst, v.Field0, string(tabular.AppendBool(nil, v.Field1)), formatFloat(v.Field2), ts), nil
}

// ParseM builds an M from exactly four fields.
func ParseM(fields []string) (M, error) {
	if err := checkWidth(fields); err != nil {
		return M{}, err
	}
	b, err := tabular.ParseBool([]byte(fields[1]))
	if err != nil {
		return M{}, fmt.Errorf("field 2: %w", err)
	}
	f, err := tabular.ParseFloat64([]byte(fields[2]))
	if err != nil {
		return M{}, fmt.Errorf("field 3: %w", err)
	}
	t, err := tabular.ParseTime([]byte(fields[3]))
	if err != nil {
		return M{}, fmt.Errorf("field 4: %w", err)
	}
	return M{Field0: fields[0], Field1: b, Field2: f, Field3: t}, nil
}

func checkWidth(fields []string) error {
	if len(fields) != Width {
		return fmt.Errorf("%w: got %d, want %d", tabular.ErrFieldCount, len(fields), Width)
	}
	return nil
}

func formatFloat(v float64) string {
	var buf [32]byte
	return string(tabular.AppendFloat64(buf[:0], v))
}

func formatTime(t time.Time) (string, error) {
	var buf [40]byte
	b, err := tabular.AppendTime(buf[:0], t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
