package tabular

import (
	"fmt"
	"io"
)

// RecordCodec maps one record shape to and from fields. DecodeRecord is called
// after NextRecord returned true and pulls the fields it needs; EncodeRecord
// writes the fields of v without finishing the record.
type RecordCodec[T any] interface {
	DecodeRecord(r *Reader) (T, error)
	EncodeRecord(w *Writer, v T) error
}

// ReadRecords reads every record from src until the end of the stream. Any
// error aborts the whole call and no records are returned.
func ReadRecords[T any](src io.Reader, d Dialect, codec RecordCodec[T], opts ...Option) ([]T, error) {
	return AppendRecords[T](nil, src, d, codec, opts...)
}

// AppendRecords is like ReadRecords but appends to dst. On error it returns dst
// as it was passed in.
func AppendRecords[T any](dst []T, src io.Reader, d Dialect, codec RecordCodec[T], opts ...Option) (_ []T, err error) {
	r := NewReader(src, d, opts...)
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	out := dst
	for {
		ok, err := r.NextRecord()
		if err != nil {
			return dst, err
		}
		if !ok {
			return out, nil
		}
		v, err := codec.DecodeRecord(r)
		if err != nil {
			return dst, fmt.Errorf("record %d: %w", r.RecordIndex(), err)
		}
		out = append(out, v)
	}
}

// WriteRecords writes every record in order and flushes. On failure the
// destination holds the records finished before the failing one; nothing is
// retried.
func WriteRecords[T any](dst io.Writer, d Dialect, codec RecordCodec[T], records []T, opts ...Option) (err error) {
	w := NewWriter(dst, d, opts...)
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	for i := range records {
		if err := codec.EncodeRecord(w, records[i]); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err := w.FinishRecord(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return w.Flush()
}
