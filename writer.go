package tabular

import (
	"bufio"
	"errors"
	"io"
	"time"
)

var (
	errNilWriter      = errors.New("tabular: writer is nil")
	errWriterNoTarget = errors.New("tabular: writer destination cannot be nil")
	errWriterClosed   = errors.New("tabular: writer is closed")
)

// Writer emits delimited records. Fields are staged until FinishRecord
// commits the record to the output buffer, so only whole records ever reach
// the destination. Nothing is guaranteed to reach it before Flush or Close.
// A Writer is not safe for concurrent use.
type Writer struct {
	dst       *bufio.Writer
	target    io.Writer
	dialect   Dialect
	special   *byteClass
	leaveOpen bool

	scratch   []byte
	record    []byte
	fields    int
	lastEmpty bool
	closed    bool
	err       error
}

// NewWriter creates a Writer for dst using dialect d, panicking if dst is nil.
// A zero Dialect selects DefaultDialect.
func NewWriter(dst io.Writer, d Dialect, opts ...Option) *Writer {
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	cfg := newConfig(opts)
	d = orDefault(d)
	return &Writer{
		dst:       bufio.NewWriterSize(dst, cfg.bufferSize),
		target:    dst,
		dialect:   d,
		special:   d.specials(),
		leaveOpen: cfg.leaveOpen,
		scratch:   make([]byte, 0, 64),
		record:    make([]byte, 0, 256),
	}
}

// Reset discards unflushed output, any unfinished record and the stored error,
// then makes w write to dst keeping its dialect and options.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.special == nil {
		w.dialect = orDefault(w.dialect)
		w.special = w.dialect.specials()
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.target = dst
	w.record = w.record[:0]
	w.fields = 0
	w.lastEmpty = false
	w.closed = false
	w.err = nil
}

// WriteText writes s as the next field of the current record.
func (w *Writer) WriteText(s string) error {
	if err := w.ready(); err != nil {
		return err
	}
	return w.field(s, nil)
}

// WriteBytes writes b as the next field of the current record.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.ready(); err != nil {
		return err
	}
	return w.field("", b)
}

// WriteBool writes v as "true" or "false".
func (w *Writer) WriteBool(v bool) error {
	if err := w.ready(); err != nil {
		return err
	}
	w.scratch = AppendBool(w.scratch[:0], v)
	return w.field("", w.scratch)
}

// WriteFloat64 writes v in its shortest round-trip form.
func (w *Writer) WriteFloat64(v float64) error {
	if err := w.ready(); err != nil {
		return err
	}
	w.scratch = AppendFloat64(w.scratch[:0], v)
	return w.field("", w.scratch)
}

// WriteTime writes t in TimeLayout. A value the layout cannot represent is
// rejected with a *FieldError; the Writer stays usable and nothing is written.
func (w *Writer) WriteTime(t time.Time) error {
	if err := w.ready(); err != nil {
		return err
	}
	b, err := AppendTime(w.scratch[:0], t)
	if err != nil {
		return err
	}
	w.scratch = b
	return w.field("", w.scratch)
}

// FinishRecord terminates the current record and commits it to the output
// buffer.
func (w *Writer) FinishRecord() error {
	if err := w.ready(); err != nil {
		return err
	}
	// A lone empty field would otherwise read back as a record without fields.
	if w.fields == 1 && w.lastEmpty {
		w.record = append(w.record, w.dialect.quote, w.dialect.quote)
	}
	d := &w.dialect
	w.record = append(w.record, d.term[:d.termLen]...)
	_, err := w.dst.Write(w.record)
	w.record = w.record[:0]
	w.fields = 0
	w.lastEmpty = false
	if err != nil {
		w.err = err
	}
	return err
}

// WriteRecord writes fields as text and finishes the record.
func (w *Writer) WriteRecord(fields []string) error {
	for _, field := range fields {
		if err := w.WriteText(field); err != nil {
			return err
		}
	}
	return w.FinishRecord()
}

// Flush writes the finished records to the underlying writer. An unfinished
// record stays staged.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

// Close flushes finished records and closes the destination if it implements
// io.Closer, unless the Writer was created with LeaveOpen. An unfinished record
// is discarded.
func (w *Writer) Close() error {
	if w == nil {
		return errNilWriter
	}
	if w.closed {
		return nil
	}
	err := w.Flush()
	w.closed = true
	if !w.leaveOpen {
		if c, ok := w.target.(io.Closer); ok {
			if cerr := c.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}

func (w *Writer) ready() error {
	switch {
	case w == nil:
		return errNilWriter
	case w.dst == nil:
		return errWriterNoTarget
	case w.closed:
		return errWriterClosed
	}
	return w.err
}

// field stages one encoded field, taken from s or, when s is empty, from b.
func (w *Writer) field(s string, b []byte) error {
	if w.fields > 0 {
		w.record = append(w.record, w.dialect.delimiter)
	}
	w.fields++

	if s != "" {
		w.lastEmpty = false
		w.appendField(s)
	} else {
		w.lastEmpty = len(b) == 0
		w.appendField(bytesToString(b))
	}
	return nil
}

func (w *Writer) appendField(field string) {
	if !w.needsQuote(field) {
		w.record = append(w.record, field...)
		return
	}

	quote := w.dialect.quote
	w.record = append(w.record, quote)
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			// Write through the quote, then the quote again.
			w.record = append(w.record, field[start:i+1]...)
			w.record = append(w.record, quote)
			start = i + 1
		}
	}
	w.record = append(w.record, field[start:]...)
	w.record = append(w.record, quote)
}

func (w *Writer) needsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		if w.special[field[i]] {
			return true
		}
	}
	return false
}
