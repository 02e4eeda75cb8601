// Package report measures engine workloads and renders the results as a table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result is the outcome of one timed operation.
type Result struct {
	Engine  string
	Shape   string
	Op      string
	Records int
	Bytes   int64
	Elapsed time.Duration
}

// RecordsPerSec returns the record throughput, or 0 if nothing was timed.
func (r Result) RecordsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Records) / r.Elapsed.Seconds()
}

// MBPerSec returns the byte throughput in MB/s (10^6 bytes).
func (r Result) MBPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Bytes) / 1e6 / r.Elapsed.Seconds()
}

// Measure times fn once. bytes is the stream size processed by fn.
func Measure(engine, shape, op string, records int, bytes int64, fn func() error) (Result, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return Result{}, fmt.Errorf("%s %s %s: %w", engine, op, shape, err)
	}
	return Result{
		Engine:  engine,
		Shape:   shape,
		Op:      op,
		Records: records,
		Bytes:   bytes,
		Elapsed: time.Since(start),
	}, nil
}

// Best runs Measure rounds times and keeps the fastest run.
func Best(rounds int, engine, shape, op string, records int, bytes int64, fn func() error) (Result, error) {
	var best Result
	for i := 0; i < max(rounds, 1); i++ {
		res, err := Measure(engine, shape, op, records, bytes, fn)
		if err != nil {
			return Result{}, err
		}
		if i == 0 || res.Elapsed < best.Elapsed {
			best = res
		}
	}
	return best, nil
}

// Render writes results as a table with grouped numbers.
func Render(w io.Writer, results []Result) {
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Engine", "Shape", "Op", "Records", "Bytes", "Elapsed", "Records/s", "MB/s"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range results {
		table.Append([]string{
			r.Engine,
			r.Shape,
			r.Op,
			p.Sprintf("%d", r.Records),
			p.Sprintf("%d", r.Bytes),
			r.Elapsed.Round(time.Microsecond).String(),
			p.Sprintf("%.0f", r.RecordsPerSec()),
			p.Sprintf("%.1f", r.MBPerSec()),
		})
	}
	table.Render()
}

const thousand = 1_000

// Unit returns a short label for a record count, e.g. 1048576 -> "1m".
// The largest unit is "g".
func Unit(number int) string {
	unit := ""
	units := []string{"k", "m", "g"}

	for i := 0; number >= thousand && i < len(units); number, i = number/thousand, i+1 {
		unit = units[i]
	}

	return strconv.Itoa(number) + unit
}
