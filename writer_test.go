package tabular

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestWriterText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		dialect Dialect
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\r\n",
		},
		{
			name: "multipleRecords",
			records: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: "alpha,beta\r\ngamma,delta\r\n",
		},
		{
			name:    "emptyField",
			records: [][]string{{"", "b"}},
			want:    ",b\r\n",
		},
		{
			name:    "loneEmptyField",
			records: [][]string{{""}},
			want:    "\"\"\r\n",
		},
		{
			name:    "noFields",
			records: [][]string{{}},
			want:    "\r\n",
		},
		{
			name:    "delimiterForcesQuote",
			records: [][]string{{"alpha,beta"}},
			want:    "\"alpha,beta\"\r\n",
		},
		{
			name: "quoteEscaping",
			records: [][]string{
				{"he said \"hello\"", "plain"},
			},
			want: "\"he said \"\"hello\"\"\",plain\r\n",
		},
		{
			name: "terminatorBytesForceQuote",
			records: [][]string{
				{"multi\nline", "carriage\rreturn", "z"},
			},
			want: "\"multi\nline\",\"carriage\rreturn\",z\r\n",
		},
		{
			name: "customDialect",
			records: [][]string{
				{"a;b", "c'd", "e,f"},
			},
			dialect: MustDialect("\n", ';', '\''),
			want:    "'a;b';'c''d';e,f\n",
		},
		{
			name: "lineFeedKeepsCarriageReturnPlain",
			records: [][]string{
				{"a\rb"},
			},
			dialect: lfDialect,
			want:    "a\rb\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf, tc.dialect)
			for _, rec := range tc.records {
				if err := w.WriteRecord(rec); err != nil {
					t.Fatalf("WriteRecord() error = %v", err)
				}
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestWriterTypedFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultDialect)

	steps := []func() error{
		func() error { return w.WriteBool(true) },
		func() error { return w.WriteBool(false) },
		func() error { return w.WriteFloat64(math.Pi) },
		func() error { return w.WriteFloat64(math.Inf(-1)) },
		func() error { return w.WriteTime(time.Date(1969, 7, 24, 16, 50, 35, 0, time.UTC)) },
		func() error { return w.WriteBytes([]byte("x,y")) },
		w.FinishRecord,
		w.Flush,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	want := "true,false,3.141592653589793,-Infinity,1969-07-24T16:50:35Z,\"x,y\"\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriterTimeOutOfRange(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultDialect)

	err := w.WriteTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrInvalidFieldFormat) {
		t.Fatalf("WriteTime() error = %v, want ErrInvalidFieldFormat", err)
	}
	// The rejected value leaves no trace and the writer stays usable.
	if err := w.WriteText("ok"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := w.FinishRecord(); err != nil {
		t.Fatalf("FinishRecord() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf.String(); got != "ok\r\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWriterReset(t *testing.T) {
	t.Parallel()

	var buf1 bytes.Buffer
	var buf2 bytes.Buffer

	var w Writer
	w.Reset(&buf1)

	if err := w.WriteText("a"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := w.FinishRecord(); err != nil {
		t.Fatalf("FinishRecord() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf1.String(); got != "a\r\n" {
		t.Fatalf("unexpected buf1 contents %q", got)
	}

	// Reset drops the unflushed partial record.
	if err := w.WriteText("lost"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	w.Reset(&buf2)
	for _, f := range []string{"x", "y"} {
		if err := w.WriteText(f); err != nil {
			t.Fatalf("WriteText() error = %v", err)
		}
	}
	if err := w.FinishRecord(); err != nil {
		t.Fatalf("FinishRecord() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf2.String(); got != "x,y\r\n" {
		t.Fatalf("unexpected buf2 contents %q", got)
	}
	if got := buf1.String(); got != "a\r\n" {
		t.Fatalf("buf1 changed after Reset: %q", got)
	}
}

type flushFailWriter struct {
	fail error
}

func (f *flushFailWriter) Write([]byte) (int, error) {
	return 0, f.fail
}

func TestWriterFlushError(t *testing.T) {
	t.Parallel()

	exp := errors.New("flush failed")
	w := NewWriter(&flushFailWriter{fail: exp}, DefaultDialect)

	if err := w.WriteText("a"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := w.FinishRecord(); err != nil {
		t.Fatalf("FinishRecord() error = %v", err)
	}
	if err := w.Flush(); !errors.Is(err, exp) {
		t.Fatalf("expected flush error %v, got %v", exp, err)
	}
	if err := w.WriteText("b"); !errors.Is(err, exp) {
		t.Fatalf("WriteText() should return stored error %v, got %v", exp, err)
	}
	if err := w.Error(); !errors.Is(err, exp) {
		t.Fatalf("Error() should return %v, got %v", exp, err)
	}
}

func TestWriterErrorMethod(t *testing.T) {
	t.Parallel()

	w := NewWriter(&strings.Builder{}, DefaultDialect)
	if err := w.Error(); err != nil {
		t.Fatalf("expected nil error from fresh writer, got %v", err)
	}

	var nilWriter *Writer
	if err := nilWriter.Error(); !errors.Is(err, errNilWriter) {
		t.Fatalf("nil Writer Error() = %v, want errNilWriter", err)
	}
	if err := nilWriter.WriteText("a"); !errors.Is(err, errNilWriter) {
		t.Fatalf("nil Writer WriteText() = %v, want errNilWriter", err)
	}
}

type closeCounter struct {
	bytes.Buffer
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestWriterClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []Option
		wantClosed int
	}{
		{name: "closesDestination", wantClosed: 1},
		{name: "leaveOpen", opts: []Option{LeaveOpen()}, wantClosed: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dst := &closeCounter{}
			w := NewWriter(dst, DefaultDialect, tc.opts...)
			if err := w.WriteRecord([]string{"whole"}); err != nil {
				t.Fatalf("WriteRecord() error = %v", err)
			}
			if err := w.WriteText("partial"); err != nil {
				t.Fatalf("WriteText() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("second Close() error = %v", err)
			}
			// The unfinished record never reaches the destination.
			if got := dst.String(); got != "whole\r\n" {
				t.Fatalf("Close() flushed %q, want %q", got, "whole\r\n")
			}
			if dst.closed != tc.wantClosed {
				t.Fatalf("destination closed %d times, want %d", dst.closed, tc.wantClosed)
			}
			if err := w.WriteText("late"); !errors.Is(err, errWriterClosed) {
				t.Fatalf("WriteText() after Close = %v, want errWriterClosed", err)
			}
		})
	}
}

func TestNewWriterNilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("NewWriter should panic on nil writer")
		}
	}()
	NewWriter(nil, DefaultDialect)
}
