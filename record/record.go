// Package record defines the fixed four-field record shapes exchanged by the
// engines and their hand-written codecs.
//
// Every shape has a tabular.RecordCodec that pulls exactly four fields per
// record and fails with tabular.ErrFieldCount otherwise, plus string
// conversions used by engines that work on []string records.
package record

import "time"

// Width is the number of fields in every record shape.
const Width = 4

// S is a record of four strings.
type S struct {
	Field0 string
	Field1 string
	Field2 string
	Field3 string
}

// N is a record of four numbers.
type N struct {
	Field0 float64
	Field1 float64
	Field2 float64
	Field3 float64
}

// D is a record of four timestamps. Offsets are part of the value.
type D struct {
	Field0 time.Time
	Field1 time.Time
	Field2 time.Time
	Field3 time.Time
}

// M is a record of mixed field types.
type M struct {
	Field0 string
	Field1 bool
	Field2 float64
	Field3 time.Time
}
