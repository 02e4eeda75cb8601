// # Tabular: A Streaming Delimited Record Codec for Go
//
// Tabular reads and writes CSV-style records through an immutable Dialect (record terminator, field delimiter, quote character). It is built for benchmark workloads of millions of records: the tokenizer works on raw bytes with a byte-class fast path, field values are decoded lazily, and text decoding can go through a bounded per-reader string pool.
//
// # Features
//
// - Pull-based Reader: advance record by record and field by field, decode only the fields you need.
// - Typed field codec for text, booleans, float64 and time.Time, with round-trip exact encodings (shortest float form, timestamps that keep their UTC offset).
// - Buffered Writer that quotes a field only when its encoded text contains the delimiter, the quote or a terminator byte.
// - Structured errors: `ParseError` for framing failures (`ErrMalformedRecord`), `FieldError` for type mismatches (`ErrInvalidFieldFormat`), `ErrInvalidOperation` for API misuse and `ErrInvalidDialect` for bad dialects.
// - Generic `ReadRecords`/`WriteRecords` entry points driven by a per-shape `RecordCodec`.
//
// # Record boundaries
//
// Every record terminator closes exactly one record and end of input at the start of a record ends the stream, so a trailing terminator never produces an extra record. A blank line is a record with zero fields.
package tabular
