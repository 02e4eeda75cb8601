package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func FuzzReaderConsistency(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\r\n",
		"a,\"b,b\",c\r\n",
		"a,\"b\r\nc\",d\r\n",
		"\"unterminated\r\n",
		"a\"b,c\r\n",
		"one\rtwo\r\n\r\n",
		"\"a\"\rb",
		"trailing,delimiter,",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		records, err := readAll(NewReader(strings.NewReader(input), DefaultDialect))
		small, errSmall := readAll(NewReader(strings.NewReader(input), DefaultDialect, BufferSize(minBufferSize)))
		oneByte, errOneByte := readAll(NewReader(iotest.OneByteReader(strings.NewReader(input)), DefaultDialect))

		if !sameReaderError(err, errSmall) {
			t.Fatalf("small buffer mismatch: err=%v errSmall=%v input=%q", err, errSmall, truncateForMessage(input))
		}
		if !sameReaderError(err, errOneByte) {
			t.Fatalf("one byte reader mismatch: err=%v errOneByte=%v input=%q", err, errOneByte, truncateForMessage(input))
		}
		if err != nil {
			return
		}
		if diff := cmp.Diff(records, small); diff != "" {
			t.Fatalf("records mismatch with small buffer (-default +small):\n%s\ninput=%q", diff, truncateForMessage(input))
		}
		if diff := cmp.Diff(records, oneByte); diff != "" {
			t.Fatalf("records mismatch with one byte reader (-default +oneByte):\n%s\ninput=%q", diff, truncateForMessage(input))
		}

		// Whatever was read must survive a write and a second read unchanged.
		var buf bytes.Buffer
		w := NewWriter(&buf, DefaultDialect)
		for _, rec := range records {
			if err := w.WriteRecord(rec); err != nil {
				t.Fatalf("WriteRecord() error = %v", err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush() error = %v", err)
		}
		again, err := readAll(NewReader(&buf, DefaultDialect))
		if err != nil {
			t.Fatalf("re-read error = %v, written=%q", err, truncateForMessage(buf.String()))
		}
		if diff := cmp.Diff(records, again); diff != "" {
			t.Fatalf("round trip mismatch (-read +reread):\n%s\ninput=%q", diff, truncateForMessage(input))
		}
	})
}

func sameReaderError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	sigA, locA := readerErrorSignature(a)
	sigB, locB := readerErrorSignature(b)
	return sigA == sigB && locA == locB
}

type errorLocation struct {
	record int64
	field  int
	offset int64
}

func readerErrorSignature(err error) (string, errorLocation) {
	var perr *ParseError
	if errors.As(err, &perr) {
		loc := errorLocation{record: perr.Record, field: perr.Field, offset: perr.Offset}
		switch {
		case errors.Is(perr.Err, ErrBareQuote):
			return "bare_quote", loc
		case errors.Is(perr.Err, ErrUnterminatedQuote):
			return "unterminated_quote", loc
		case errors.Is(perr.Err, ErrExtraneousQuote):
			return "extraneous_quote", loc
		default:
			return perr.Err.Error(), loc
		}
	}
	return err.Error(), errorLocation{}
}

func truncateForMessage(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
