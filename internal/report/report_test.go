package report_test

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oleg578/tabular/internal/report"
)

func TestThroughput(t *testing.T) {
	t.Parallel()

	r := report.Result{Records: 2_000, Bytes: 4_000_000, Elapsed: 2 * time.Second}
	require.InDelta(t, 1_000, r.RecordsPerSec(), 1e-9)
	require.InDelta(t, 2, r.MBPerSec(), 1e-9)

	var zero report.Result
	require.Zero(t, zero.RecordsPerSec())
	require.Zero(t, zero.MBPerSec())
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	res, err := report.Measure("tabular", "S", "read", 10, 100, func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, "tabular", res.Engine)
	require.Equal(t, 10, res.Records)
	require.EqualValues(t, 100, res.Bytes)

	exp := errors.New("boom")
	_, err = report.Measure("tabular", "S", "read", 10, 100, func() error { return exp })
	require.ErrorIs(t, err, exp)
	require.Contains(t, err.Error(), "tabular read S")
}

func TestBest(t *testing.T) {
	t.Parallel()

	calls := 0
	res, err := report.Best(3, "e", "N", "write", 1, 1, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, "write", res.Op)

	calls = 0
	_, err = report.Best(0, "e", "N", "write", 1, 1, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	report.Render(&buf, []report.Result{
		{Engine: "tabular", Shape: "S", Op: "read", Records: 1_048_576, Bytes: 75_497_472, Elapsed: time.Second},
	})
	out := buf.String()
	for _, want := range []string{"Engine", "Records/s", "tabular", "1,048,576", "75,497,472", "75.5"} {
		require.True(t, strings.Contains(out, want), "output %q should contain %q", out, want)
	}
}

func TestUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "0"},
		{n: 999, want: "999"},
		{n: 1_000, want: "1k"},
		{n: 1_048_576, want: "1m"},
		{n: 3_000_000_000, want: "3g"},
		{n: 5_000_000_000_000, want: "5000g"},
	}

	for _, tc := range tests {
		t.Run(strconv.Itoa(tc.n), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, report.Unit(tc.n))
		})
	}
}
