package engine

import (
	"io"
	"log/slog"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/record"
)

func newTabular(cfg Config) (*Engine, error) {
	opts := []tabular.Option{tabular.LeaveOpen()}
	if cfg.PoolStrings {
		opts = append(opts, tabular.PoolStrings(cfg.MaxPooledLength))
	}
	log := cfg.Logger.With("engine", "tabular")
	return &Engine{
		Name: "tabular",
		S:    tabularShape[record.S]{dialect: cfg.Dialect, codec: record.SCodec{}, opts: opts, log: log.With("shape", "S")},
		N:    tabularShape[record.N]{dialect: cfg.Dialect, codec: record.NCodec{}, opts: opts, log: log.With("shape", "N")},
		D:    tabularShape[record.D]{dialect: cfg.Dialect, codec: record.DCodec{}, opts: opts, log: log.With("shape", "D")},
		M:    tabularShape[record.M]{dialect: cfg.Dialect, codec: record.MCodec{}, opts: opts, log: log.With("shape", "M")},
	}, nil
}

type tabularShape[T any] struct {
	dialect tabular.Dialect
	codec   tabular.RecordCodec[T]
	opts    []tabular.Option
	log     *slog.Logger
}

func (s tabularShape[T]) ReadRecords(src io.Reader, dst []T) ([]T, error) {
	n := len(dst)
	out, err := tabular.AppendRecords(dst, src, s.dialect, s.codec, s.opts...)
	if err != nil {
		s.log.Debug("read failed", "error", err)
		return dst, err
	}
	s.log.Debug("read records", "count", len(out)-n)
	return out, nil
}

func (s tabularShape[T]) WriteRecords(dst io.Writer, records []T) error {
	if err := tabular.WriteRecords(dst, s.dialect, s.codec, records, s.opts...); err != nil {
		s.log.Debug("write failed", "error", err)
		return err
	}
	s.log.Debug("wrote records", "count", len(records))
	return nil
}
