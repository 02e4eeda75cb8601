package main

import (
	"bytes"
	"fmt"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/engine"
	"github.com/oleg578/tabular/internal/report"
	"github.com/oleg578/tabular/internal/testdata"
	"github.com/oleg578/tabular/record"
)

type shape struct {
	name string
	help string
	run  func(e *engine.Engine, count, rounds int) ([]report.Result, error)
}

var shapes = []shape{
	{
		name: "S",
		help: "four strings, half of them quoted",
		run: func(e *engine.Engine, count, rounds int) ([]report.Result, error) {
			return measure(e.Name, "S", e.S, testdata.Strings(count), record.SCodec{}, rounds)
		},
	},
	{
		name: "N",
		help: "four float64 values",
		run: func(e *engine.Engine, count, rounds int) ([]report.Result, error) {
			return measure(e.Name, "N", e.N, testdata.Numbers(count), record.NCodec{}, rounds)
		},
	},
	{
		name: "D",
		help: "four timestamps with offsets",
		run: func(e *engine.Engine, count, rounds int) ([]report.Result, error) {
			return measure(e.Name, "D", e.D, testdata.Dates(count), record.DCodec{}, rounds)
		},
	},
	{
		name: "M",
		help: "string, bool, float64 and timestamp",
		run: func(e *engine.Engine, count, rounds int) ([]report.Result, error) {
			return measure(e.Name, "M", e.M, testdata.Mixed(count), record.MCodec{}, rounds)
		},
	},
}

func lookupShape(name string) (shape, error) {
	for _, s := range shapes {
		if s.name == name {
			return s, nil
		}
	}
	return shape{}, fmt.Errorf("unknown shape %q", name)
}

// measure times reading the reference encoding of records and writing
// records back out. Buffers are allocated once and reused across rounds.
func measure[T any](engineName, shapeName string, s engine.Shape[T], records []T, codec tabular.RecordCodec[T], rounds int) ([]report.Result, error) {
	stream, err := testdata.Stream(records, codec)
	if err != nil {
		return nil, err
	}

	dst := make([]T, 0, len(records))
	read, err := report.Best(rounds, engineName, shapeName, "read", len(records), int64(len(stream)), func() error {
		got, err := s.ReadRecords(bytes.NewReader(stream), dst[:0])
		if err != nil {
			return err
		}
		if len(got) != len(records) {
			return fmt.Errorf("read %d records, want %d", len(got), len(records))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(stream))
	write, err := report.Best(rounds, engineName, shapeName, "write", len(records), int64(len(stream)), func() error {
		out.Reset()
		return s.WriteRecords(&out, records)
	})
	if err != nil {
		return nil, err
	}
	// Report the bytes this engine actually produced.
	write.Bytes = int64(out.Len())

	return []report.Result{read, write}, nil
}
