// Package testdata builds the deterministic record sets used by tests, the
// engine benchmarks and the tabbench command.
package testdata

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/record"
)

const (
	// Plain is a string field that needs no quoting.
	Plain = "________________"
	// Quoted is a string field that must be quoted and have its quotes doubled.
	Quoted = `____"______"____`
)

var (
	// UTC is 1969-07-24 16:50:35 UTC.
	UTC = time.Date(1969, 7, 24, 16, 50, 35, 0, time.UTC)
	// Hawaii is the same instant as UTC expressed at -10:00.
	Hawaii = time.Date(1969, 7, 24, 6, 50, 35, 0, time.FixedZone("", -10*3600))
)

// Strings returns n copies of the S fixture.
func Strings(n int) []record.S {
	records := make([]record.S, n)
	for i := range records {
		records[i] = record.S{Field0: Plain, Field1: Plain, Field2: Quoted, Field3: Quoted}
	}
	return records
}

// Numbers returns n copies of the N fixture.
func Numbers(n int) []record.N {
	records := make([]record.N, n)
	for i := range records {
		records[i] = record.N{Field0: math.E, Field1: math.E, Field2: math.Pi, Field3: math.Pi}
	}
	return records
}

// Dates returns n copies of the D fixture.
func Dates(n int) []record.D {
	records := make([]record.D, n)
	for i := range records {
		records[i] = record.D{Field0: UTC, Field1: UTC, Field2: Hawaii, Field3: Hawaii}
	}
	return records
}

// Mixed returns n copies of the M fixture.
func Mixed(n int) []record.M {
	records := make([]record.M, n)
	for i := range records {
		records[i] = record.M{Field0: Quoted, Field1: true, Field2: math.Pi, Field3: Hawaii}
	}
	return records
}

// Stream encodes records with the tabular writer in the default dialect.
func Stream[T any](records []T, codec tabular.RecordCodec[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := tabular.WriteRecords(&buf, tabular.DefaultDialect, codec, records); err != nil {
		return nil, fmt.Errorf("tabular.WriteRecords: %w", err)
	}
	return buf.Bytes(), nil
}
