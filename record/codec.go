package record

import (
	"fmt"
	"time"

	"github.com/oleg578/tabular"
)

// SCodec reads and writes S records.
type SCodec struct{}

// DecodeRecord reads the four fields of one S record and rejects any extra field.
func (SCodec) DecodeRecord(r *tabular.Reader) (S, error) {
	var (
		v   S
		err error
	)
	if v.Field0, err = text(r); err != nil {
		return S{}, err
	}
	if v.Field1, err = text(r); err != nil {
		return S{}, err
	}
	if v.Field2, err = text(r); err != nil {
		return S{}, err
	}
	if v.Field3, err = text(r); err != nil {
		return S{}, err
	}
	return v, end(r)
}

// EncodeRecord writes the fields of v without finishing the record.
func (SCodec) EncodeRecord(w *tabular.Writer, v S) error {
	if err := w.WriteText(v.Field0); err != nil {
		return err
	}
	if err := w.WriteText(v.Field1); err != nil {
		return err
	}
	if err := w.WriteText(v.Field2); err != nil {
		return err
	}
	return w.WriteText(v.Field3)
}

// NCodec reads and writes N records.
type NCodec struct{}

// DecodeRecord reads the four fields of one N record and rejects any extra field.
func (NCodec) DecodeRecord(r *tabular.Reader) (N, error) {
	var (
		v   N
		err error
	)
	if v.Field0, err = number(r); err != nil {
		return N{}, err
	}
	if v.Field1, err = number(r); err != nil {
		return N{}, err
	}
	if v.Field2, err = number(r); err != nil {
		return N{}, err
	}
	if v.Field3, err = number(r); err != nil {
		return N{}, err
	}
	return v, end(r)
}

// EncodeRecord writes the fields of v without finishing the record.
func (NCodec) EncodeRecord(w *tabular.Writer, v N) error {
	if err := w.WriteFloat64(v.Field0); err != nil {
		return err
	}
	if err := w.WriteFloat64(v.Field1); err != nil {
		return err
	}
	if err := w.WriteFloat64(v.Field2); err != nil {
		return err
	}
	return w.WriteFloat64(v.Field3)
}

// DCodec reads and writes D records.
type DCodec struct{}

// DecodeRecord reads the four fields of one D record and rejects any extra field.
func (DCodec) DecodeRecord(r *tabular.Reader) (D, error) {
	var (
		v   D
		err error
	)
	if v.Field0, err = timestamp(r); err != nil {
		return D{}, err
	}
	if v.Field1, err = timestamp(r); err != nil {
		return D{}, err
	}
	if v.Field2, err = timestamp(r); err != nil {
		return D{}, err
	}
	if v.Field3, err = timestamp(r); err != nil {
		return D{}, err
	}
	return v, end(r)
}

// EncodeRecord writes the fields of v without finishing the record.
func (DCodec) EncodeRecord(w *tabular.Writer, v D) error {
	if err := w.WriteTime(v.Field0); err != nil {
		return err
	}
	if err := w.WriteTime(v.Field1); err != nil {
		return err
	}
	if err := w.WriteTime(v.Field2); err != nil {
		return err
	}
	return w.WriteTime(v.Field3)
}

// MCodec reads and writes M records.
type MCodec struct{}

// DecodeRecord reads the four fields of one M record and rejects any extra field.
func (MCodec) DecodeRecord(r *tabular.Reader) (M, error) {
	var (
		v   M
		err error
	)
	if v.Field0, err = text(r); err != nil {
		return M{}, err
	}
	if v.Field1, err = boolean(r); err != nil {
		return M{}, err
	}
	if v.Field2, err = number(r); err != nil {
		return M{}, err
	}
	if v.Field3, err = timestamp(r); err != nil {
		return M{}, err
	}
	return v, end(r)
}

// EncodeRecord writes the fields of v without finishing the record.
func (MCodec) EncodeRecord(w *tabular.Writer, v M) error {
	if err := w.WriteText(v.Field0); err != nil {
		return err
	}
	if err := w.WriteBool(v.Field1); err != nil {
		return err
	}
	if err := w.WriteFloat64(v.Field2); err != nil {
		return err
	}
	return w.WriteTime(v.Field3)
}

// next advances to the next field and treats a short record as an error.
func next(r *tabular.Reader) error {
	ok, err := r.NextField()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: fewer than %d", tabular.ErrFieldCount, Width)
	}
	return nil
}

// end verifies that the record has no fields beyond the four consumed.
func end(r *tabular.Reader) error {
	ok, err := r.NextField()
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: more than %d", tabular.ErrFieldCount, Width)
	}
	return nil
}

func text(r *tabular.Reader) (string, error) {
	if err := next(r); err != nil {
		return "", err
	}
	return r.Text()
}

func number(r *tabular.Reader) (float64, error) {
	if err := next(r); err != nil {
		return 0, err
	}
	v, err := r.Float64()
	if err != nil {
		return 0, fmt.Errorf("field %d: %w", r.FieldIndex(), err)
	}
	return v, nil
}

func boolean(r *tabular.Reader) (bool, error) {
	if err := next(r); err != nil {
		return false, err
	}
	v, err := r.Bool()
	if err != nil {
		return false, fmt.Errorf("field %d: %w", r.FieldIndex(), err)
	}
	return v, nil
}

func timestamp(r *tabular.Reader) (time.Time, error) {
	if err := next(r); err != nil {
		return time.Time{}, err
	}
	v, err := r.Time()
	if err != nil {
		return time.Time{}, fmt.Errorf("field %d: %w", r.FieldIndex(), err)
	}
	return v, nil
}
