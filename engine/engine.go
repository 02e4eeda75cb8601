// Package engine registers the record codecs that tabbench compares. Every
// engine reads and writes the four record shapes of package record through
// the same narrow interface, so callers can swap implementations by name.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/record"
)

// ErrUnknownEngine is returned by New for a name that is not registered.
var ErrUnknownEngine = errors.New("engine: unknown engine")

// ErrUnsupportedDialect is returned by factories whose codec cannot express
// the configured dialect.
var ErrUnsupportedDialect = errors.New("engine: unsupported dialect")

// Shape reads and writes one record type.
type Shape[T any] interface {
	// ReadRecords appends every record of src to dst. On error dst is
	// returned unchanged.
	ReadRecords(src io.Reader, dst []T) ([]T, error)
	// WriteRecords writes records to dst in order. src and dst are never
	// closed.
	WriteRecords(dst io.Writer, records []T) error
}

// Engine bundles the shapes supported by one codec.
type Engine struct {
	Name string
	S    Shape[record.S]
	N    Shape[record.N]
	D    Shape[record.D]
	M    Shape[record.M]
}

// Config is shared by all factories. The zero value uses the default dialect
// without string pooling and discards log output.
type Config struct {
	Dialect tabular.Dialect
	// PoolStrings enables string pooling for engines that support it.
	PoolStrings bool
	// MaxPooledLength is the longest string that is pooled. Zero selects
	// DefaultMaxPooledLength.
	MaxPooledLength int
	Logger          *slog.Logger
}

// DefaultMaxPooledLength is used when pooling is on and no limit is set.
const DefaultMaxPooledLength = 128

func (c Config) withDefaults() Config {
	if c.Dialect.IsZero() {
		c.Dialect = tabular.DefaultDialect
	}
	if c.MaxPooledLength <= 0 {
		c.MaxPooledLength = DefaultMaxPooledLength
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Factory builds an engine for a configuration.
type Factory func(Config) (*Engine, error)

var registry = map[string]Factory{
	"tabular":      newTabular,
	"encoding/csv": newEncodingCSV,
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// New builds the engine registered under name.
func New(name string, cfg Config) (*Engine, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownEngine, name, Names())
	}
	cfg = cfg.withDefaults()
	e, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", name, err)
	}
	cfg.Logger.Debug("engine ready", "engine", name, "dialect", cfg.Dialect.String(), "pool_strings", cfg.PoolStrings)
	return e, nil
}

// All builds every registered engine in name order.
func All(cfg Config) ([]*Engine, error) {
	names := Names()
	engines := make([]*Engine, 0, len(names))
	for _, name := range names {
		e, err := New(name, cfg)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}
