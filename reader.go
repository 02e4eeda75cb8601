package tabular

import (
	"fmt"
	"io"
	"time"
)

// Position tracks which Reader operations are legal next.
type Position uint8

const (
	// BeforeRecords is the position of a new Reader.
	BeforeRecords Position = iota
	// WithinRecord means a record has been entered and may have more fields.
	WithinRecord
	// EndOfRecord means NextField reported that the current record has no more fields.
	EndOfRecord
	// EndOfStream means the input is exhausted.
	EndOfStream
)

// String returns the name of the position.
func (p Position) String() string {
	switch p {
	case BeforeRecords:
		return "BeforeRecords"
	case WithinRecord:
		return "WithinRecord"
	case EndOfRecord:
		return "EndOfRecord"
	case EndOfStream:
		return "EndOfStream"
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// Reader pulls records and fields from a delimited stream. Field text is only
// interpreted when one of the typed accessors is called. A Reader is not safe
// for concurrent use.
type Reader struct {
	src       io.Reader
	tok       tokenizer
	strings   StringFactory
	leaveOpen bool

	pos        Position
	hasField   bool
	recordDone bool
	closed     bool
}

// NewReader creates a Reader that consumes src using dialect d, panicking if src
// is nil. A zero Dialect selects DefaultDialect.
func NewReader(src io.Reader, d Dialect, opts ...Option) *Reader {
	if src == nil {
		panic("tabular: reader source cannot be nil")
	}
	cfg := newConfig(opts)

	var factory StringFactory = allocFactory{}
	if cfg.factory != nil {
		factory = cfg.factory()
	}

	return &Reader{
		src:       src,
		tok:       newTokenizer(src, orDefault(d), cfg.bufferSize),
		strings:   factory,
		leaveOpen: cfg.leaveOpen,
	}
}

// Reset makes r read from src from the beginning, keeping its dialect, options
// and buffers. The string pool, if any, keeps its contents.
func (r *Reader) Reset(src io.Reader) {
	if src == nil {
		panic("tabular: reader source cannot be nil")
	}
	r.src = src
	r.tok.reset(src)
	r.pos = BeforeRecords
	r.hasField = false
	r.recordDone = false
	r.closed = false
}

// NextRecord advances to the next record, discarding any unread fields of the
// current one. It returns false at the end of the stream. Framing errors are
// returned as *ParseError and are sticky.
func (r *Reader) NextRecord() (bool, error) {
	if r.closed {
		return false, fmt.Errorf("%w: reader is closed", ErrInvalidOperation)
	}
	if r.pos == EndOfStream {
		return false, nil
	}
	r.hasField = false
	if r.pos == WithinRecord && !r.recordDone {
		if err := r.tok.skipRecord(); err != nil {
			return false, err
		}
	}

	ok, err := r.tok.startRecord()
	if err != nil {
		return false, err
	}
	if !ok {
		r.pos = EndOfStream
		return false, nil
	}
	r.pos = WithinRecord
	r.recordDone = false
	return true, nil
}

// NextField advances to the next field of the current record. It returns false
// once the record has no more fields.
func (r *Reader) NextField() (bool, error) {
	switch {
	case r.closed:
		return false, fmt.Errorf("%w: reader is closed", ErrInvalidOperation)
	case r.pos == BeforeRecords || r.pos == EndOfStream:
		return false, fmt.Errorf("%w: NextField called at %s", ErrInvalidOperation, r.pos)
	case r.pos == EndOfRecord:
		return false, nil
	}

	if r.recordDone {
		r.endRecord()
		return false, nil
	}
	produced, last, err := r.tok.readField()
	if err != nil {
		r.hasField = false
		return false, err
	}
	r.recordDone = last
	if !produced {
		r.endRecord()
		return false, nil
	}
	r.hasField = true
	return true, nil
}

func (r *Reader) endRecord() {
	r.pos = EndOfRecord
	r.hasField = false
}

// Position reports the current stream position.
func (r *Reader) Position() Position { return r.pos }

// RecordIndex returns the 1-based index of the current record, or 0 before the first.
func (r *Reader) RecordIndex() int64 { return r.tok.record }

// FieldIndex returns the 1-based index of the current field, or 0 before the first.
func (r *Reader) FieldIndex() int {
	if !r.hasField {
		return 0
	}
	return r.tok.fieldN
}

func (r *Reader) current() ([]byte, error) {
	if r.closed {
		return nil, fmt.Errorf("%w: reader is closed", ErrInvalidOperation)
	}
	if !r.hasField {
		return nil, fmt.Errorf("%w: no current field at %s", ErrInvalidOperation, r.pos)
	}
	return r.tok.field, nil
}

// Bytes returns the raw text of the current field. The slice is only valid
// until the next call to NextField or NextRecord.
func (r *Reader) Bytes() ([]byte, error) {
	return r.current()
}

// Text returns the current field as a string, going through the configured
// string factory.
func (r *Reader) Text() (string, error) {
	b, err := r.current()
	if err != nil {
		return "", err
	}
	return r.strings.String(b), nil
}

// Bool decodes the current field as "true" or "false".
func (r *Reader) Bool() (bool, error) {
	b, err := r.current()
	if err != nil {
		return false, err
	}
	return ParseBool(b)
}

// Float64 decodes the current field as a float64.
func (r *Reader) Float64() (float64, error) {
	b, err := r.current()
	if err != nil {
		return 0, err
	}
	return ParseFloat64(b)
}

// Time decodes the current field as a TimeLayout timestamp, keeping its offset.
func (r *Reader) Time() (time.Time, error) {
	b, err := r.current()
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(b)
}

// ReadFields returns the remaining fields of the current record as strings,
// appending them to dst. It is a convenience for untyped consumers.
func (r *Reader) ReadFields(dst []string) ([]string, error) {
	for {
		ok, err := r.NextField()
		if err != nil {
			return dst, err
		}
		if !ok {
			return dst, nil
		}
		s, err := r.Text()
		if err != nil {
			return dst, err
		}
		dst = append(dst, s)
	}
}

// Close releases the Reader's buffers and closes the source if it implements
// io.Closer, unless the Reader was created with LeaveOpen.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.hasField = false
	r.tok.buf = nil
	r.tok.field = nil
	if r.leaveOpen {
		return nil
	}
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
