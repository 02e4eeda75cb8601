package tabular

import (
	"bytes"
	"io"
)

const maxEmptyReads = 100

// tokenizer frames raw input into fields and records. Field bytes are unescaped
// into field, which is overwritten by every call to readField.
type tokenizer struct {
	src     io.Reader
	dialect Dialect
	special *byteClass

	buf    []byte
	size   int
	bufPos int
	bufLen int
	bufErr error
	// base is the stream offset of buf[0].
	base int64

	field  []byte
	record int64
	fieldN int
	err    error
}

func newTokenizer(src io.Reader, d Dialect, bufferSize int) tokenizer {
	return tokenizer{
		src:     src,
		dialect: d,
		special: d.specials(),
		buf:     make([]byte, bufferSize),
		size:    bufferSize,
		field:   make([]byte, 0, 256),
	}
}

func (t *tokenizer) reset(src io.Reader) {
	t.src = src
	if t.buf == nil {
		t.buf = make([]byte, t.size)
	}
	t.bufPos, t.bufLen = 0, 0
	t.bufErr = nil
	t.base = 0
	t.field = t.field[:0]
	t.record, t.fieldN = 0, 0
	t.err = nil
}

// startRecord reports whether another record begins at the current position.
// End of input at a record start ends the stream.
func (t *tokenizer) startRecord() (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	if _, err := t.peekByte(); err != nil {
		if err == io.EOF {
			return false, nil
		}
		t.err = err
		return false, err
	}
	t.record++
	t.fieldN = 0
	return true, nil
}

// readField frames the next field of the current record. produced is false
// only for a blank line, which is a record without fields; last reports that
// the record ended after this field.
func (t *tokenizer) readField() (produced, last bool, err error) {
	if t.err != nil {
		return false, true, t.err
	}
	produced, last, err = t.frame()
	if err != nil {
		t.err = err
		return false, true, err
	}
	return produced, last, nil
}

func (t *tokenizer) frame() (produced, last bool, err error) {
	d := &t.dialect
	t.fieldN++
	t.field = t.field[:0]

	// fieldStart
	c, err := t.peekByte()
	if err != nil {
		if err == io.EOF {
			// Input ended right after a delimiter: one trailing empty field.
			return true, true, nil
		}
		return false, true, err
	}
	switch {
	case c == d.quote:
		t.bufPos++
		return t.quoted()
	case c == d.delimiter:
		t.bufPos++
		return true, false, nil
	case c == d.term[0]:
		t.bufPos++
		ended, err := t.finishTerminator()
		if err != nil {
			return false, true, err
		}
		if ended {
			return t.fieldN > 1, true, nil
		}
		t.field = append(t.field, c)
	}
	return t.unquoted()
}

// unquoted accumulates bytes until a delimiter, a terminator or end of input.
func (t *tokenizer) unquoted() (bool, bool, error) {
	d := &t.dialect
	for {
		if t.bufPos >= t.bufLen {
			if err := t.fill(); err != nil {
				if err == io.EOF {
					return true, true, nil
				}
				return false, true, err
			}
		}

		// Fast-path plain bytes until a byte of interest.
		data := t.buf[t.bufPos:t.bufLen]
		i := 0
		for i < len(data) && !t.special[data[i]] {
			i++
		}
		t.field = append(t.field, data[:i]...)
		t.bufPos += i
		if i == len(data) {
			continue
		}

		c := data[i]
		t.bufPos++
		switch {
		case c == d.delimiter:
			return true, false, nil
		case c == d.quote:
			return false, true, t.errorAt(t.offset()-1, ErrBareQuote)
		case c == d.term[0]:
			ended, err := t.finishTerminator()
			if err != nil {
				return false, true, err
			}
			if ended {
				return true, true, nil
			}
			t.field = append(t.field, c)
		default:
			// Second terminator byte without the first one.
			t.field = append(t.field, c)
		}
	}
}

// quoted accumulates bytes after an opening quote, collapsing doubled quotes.
func (t *tokenizer) quoted() (bool, bool, error) {
	d := &t.dialect
	for {
		if t.bufPos >= t.bufLen {
			if err := t.fill(); err != nil {
				if err == io.EOF {
					return false, true, t.errorAt(t.offset(), ErrUnterminatedQuote)
				}
				return false, true, err
			}
		}

		data := t.buf[t.bufPos:t.bufLen]
		i := bytes.IndexByte(data, d.quote)
		if i < 0 {
			t.field = append(t.field, data...)
			t.bufPos = t.bufLen
			continue
		}
		t.field = append(t.field, data[:i]...)
		t.bufPos += i + 1

		// quoteInQuoted: escaped quote or end of the field.
		next, err := t.peekByte()
		if err != nil {
			if err == io.EOF {
				return true, true, nil
			}
			return false, true, err
		}
		switch {
		case next == d.quote:
			t.field = append(t.field, d.quote)
			t.bufPos++
		case next == d.delimiter:
			t.bufPos++
			return true, false, nil
		case next == d.term[0]:
			t.bufPos++
			ended, err := t.finishTerminator()
			if err != nil {
				return false, true, err
			}
			if !ended {
				return false, true, t.errorAt(t.offset()-1, ErrExtraneousQuote)
			}
			return true, true, nil
		default:
			return false, true, t.errorAt(t.offset(), ErrExtraneousQuote)
		}
	}
}

// finishTerminator is called after the first terminator byte was consumed and
// reports whether the rest of the terminator follows, consuming it if so.
func (t *tokenizer) finishTerminator() (bool, error) {
	d := &t.dialect
	if d.termLen == 1 {
		return true, nil
	}
	next, err := t.peekByte()
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	if next != d.term[1] {
		return false, nil
	}
	t.bufPos++
	return true, nil
}

// skipRecord discards the remaining fields of the current record.
func (t *tokenizer) skipRecord() error {
	for {
		_, last, err := t.readField()
		if err != nil {
			return err
		}
		if last {
			return nil
		}
	}
}

// peekByte returns the next buffered byte, refilling from src as needed.
func (t *tokenizer) peekByte() (byte, error) {
	if t.bufPos >= t.bufLen {
		if err := t.fill(); err != nil {
			return 0, err
		}
	}
	return t.buf[t.bufPos], nil
}

// fill replaces the consumed buffer with the next chunk of src. Read errors,
// including io.EOF, are sticky.
func (t *tokenizer) fill() error {
	if t.bufErr != nil {
		return t.bufErr
	}
	t.base += int64(t.bufLen)
	t.bufPos, t.bufLen = 0, 0
	for empty := 0; empty < maxEmptyReads; empty++ {
		n, err := t.src.Read(t.buf)
		if n < 0 || n > len(t.buf) {
			n = 0
			err = io.ErrShortBuffer
		}
		t.bufLen = n
		if err != nil {
			t.bufErr = err
		}
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
	t.bufErr = io.ErrNoProgress
	return t.bufErr
}

func (t *tokenizer) offset() int64 {
	return t.base + int64(t.bufPos)
}

func (t *tokenizer) errorAt(offset int64, err error) error {
	return &ParseError{Record: t.record, Field: t.fieldN, Offset: offset, Err: err}
}
