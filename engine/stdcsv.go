package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/record"
)

// newEncodingCSV adapts the standard library codec. It only speaks
// double-quoted dialects terminated by CRLF or LF.
func newEncodingCSV(cfg Config) (*Engine, error) {
	d := cfg.Dialect
	if d.Quote() != '"' {
		return nil, fmt.Errorf("%w: quote %q", ErrUnsupportedDialect, d.Quote())
	}
	var crlf bool
	switch d.Terminator() {
	case "\r\n":
		crlf = true
	case "\n":
	default:
		return nil, fmt.Errorf("%w: terminator %q", ErrUnsupportedDialect, d.Terminator())
	}
	switch d.Delimiter() {
	case '\r', '\n':
		return nil, fmt.Errorf("%w: delimiter %q", ErrUnsupportedDialect, d.Delimiter())
	}

	comma := rune(d.Delimiter())
	log := cfg.Logger.With("engine", "encoding/csv")
	return &Engine{
		Name: "encoding/csv",
		S:    csvShape[record.S]{comma: comma, crlf: crlf, format: record.S.AppendFields, parse: record.ParseS, log: log.With("shape", "S")},
		N:    csvShape[record.N]{comma: comma, crlf: crlf, format: record.N.AppendFields, parse: record.ParseN, log: log.With("shape", "N")},
		D:    csvShape[record.D]{comma: comma, crlf: crlf, format: record.D.AppendFields, parse: record.ParseD, log: log.With("shape", "D")},
		M:    csvShape[record.M]{comma: comma, crlf: crlf, format: record.M.AppendFields, parse: record.ParseM, log: log.With("shape", "M")},
	}, nil
}

type csvShape[T any] struct {
	comma  rune
	crlf   bool
	format func(T, []string) ([]string, error)
	parse  func([]string) (T, error)
	log    *slog.Logger
}

func (s csvShape[T]) ReadRecords(src io.Reader, dst []T) ([]T, error) {
	r := csv.NewReader(src)
	r.Comma = s.comma
	r.FieldsPerRecord = record.Width
	r.ReuseRecord = true

	out := dst
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				err = fmt.Errorf("%w: %w", tabular.ErrFieldCount, err)
			}
			s.log.Debug("read failed", "error", err)
			return dst, fmt.Errorf("csv.Reader.Read: %w", err)
		}
		v, err := s.parse(fields)
		if err != nil {
			line, _ := r.FieldPos(0)
			return dst, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, v)
	}
	s.log.Debug("read records", "count", len(out)-len(dst))
	return out, nil
}

func (s csvShape[T]) WriteRecords(dst io.Writer, records []T) error {
	w := csv.NewWriter(dst)
	w.Comma = s.comma
	w.UseCRLF = s.crlf

	fields := make([]string, 0, record.Width)
	for i := range records {
		var err error
		if fields, err = s.format(records[i], fields[:0]); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err := w.Write(fields); err != nil {
			s.log.Debug("write failed", "error", err)
			return fmt.Errorf("csv.Writer.Write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.log.Debug("write failed", "error", err)
		return fmt.Errorf("csv.Writer.Flush: %w", err)
	}
	s.log.Debug("wrote records", "count", len(records))
	return nil
}
