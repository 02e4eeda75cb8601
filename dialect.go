package tabular

import "fmt"

// Dialect describes the textual conventions of one tabular format: the record
// terminator, the field delimiter and the quote character. A Dialect is an
// immutable value and may be shared freely between goroutines.
type Dialect struct {
	term      [2]byte
	termLen   int
	delimiter byte
	quote     byte
}

// DefaultDialect is RFC 4180: CRLF terminated records, comma delimited, double-quote quoted.
var DefaultDialect = MustDialect("\r\n", ',', '"')

// NewDialect validates and returns a Dialect. The terminator must be one or two
// bytes; all three components must be ASCII and pairwise distinct.
func NewDialect(terminator string, delimiter, quote byte) (Dialect, error) {
	if len(terminator) == 0 || len(terminator) > 2 {
		return Dialect{}, fmt.Errorf("%w: terminator must be 1 or 2 bytes, got %d", ErrInvalidDialect, len(terminator))
	}
	if delimiter >= 0x80 || quote >= 0x80 {
		return Dialect{}, fmt.Errorf("%w: delimiter and quote must be ASCII", ErrInvalidDialect)
	}
	if delimiter == quote {
		return Dialect{}, fmt.Errorf("%w: delimiter and quote are both %q", ErrInvalidDialect, delimiter)
	}
	for i := 0; i < len(terminator); i++ {
		c := terminator[i]
		switch {
		case c >= 0x80:
			return Dialect{}, fmt.Errorf("%w: terminator must be ASCII", ErrInvalidDialect)
		case c == delimiter:
			return Dialect{}, fmt.Errorf("%w: terminator contains the delimiter %q", ErrInvalidDialect, delimiter)
		case c == quote:
			return Dialect{}, fmt.Errorf("%w: terminator contains the quote %q", ErrInvalidDialect, quote)
		}
	}
	// "\n\n" would make a lone first byte ambiguous with the start of the terminator.
	if len(terminator) == 2 && terminator[0] == terminator[1] {
		return Dialect{}, fmt.Errorf("%w: terminator %q repeats its first byte", ErrInvalidDialect, terminator)
	}

	d := Dialect{
		termLen:   len(terminator),
		delimiter: delimiter,
		quote:     quote,
	}
	copy(d.term[:], terminator)
	return d, nil
}

// MustDialect is like NewDialect but panics on an invalid combination.
func MustDialect(terminator string, delimiter, quote byte) Dialect {
	d, err := NewDialect(terminator, delimiter, quote)
	if err != nil {
		panic(err)
	}
	return d
}

// Terminator returns the record terminator.
func (d Dialect) Terminator() string { return string(d.term[:d.termLen]) }

// Delimiter returns the field delimiter.
func (d Dialect) Delimiter() byte { return d.delimiter }

// Quote returns the quote character.
func (d Dialect) Quote() byte { return d.quote }

// IsZero reports whether d is the zero Dialect, which is not usable.
func (d Dialect) IsZero() bool { return d.termLen == 0 }

// String describes the dialect for logs and error messages.
func (d Dialect) String() string {
	return fmt.Sprintf("Dialect{terminator: %q, delimiter: %q, quote: %q}", d.Terminator(), d.delimiter, d.quote)
}

// byteClass marks bytes that end a plain run: delimiter, quote and terminator bytes.
type byteClass [256]bool

func (d Dialect) specials() *byteClass {
	var c byteClass
	c[d.delimiter] = true
	c[d.quote] = true
	for i := 0; i < d.termLen; i++ {
		c[d.term[i]] = true
	}
	return &c
}

func orDefault(d Dialect) Dialect {
	if d.IsZero() {
		return DefaultDialect
	}
	return d
}
