package tabular

import (
	"github.com/cespare/xxhash/v2"
)

// StringFactory turns raw field bytes into strings. Implementations may reuse
// previously returned strings; they must never retain b.
type StringFactory interface {
	String(b []byte) string
}

const defaultPoolBuckets = 1 << 12

// StringPool is a bounded intern table. Each bucket holds one string and is
// overwritten on collision, so memory stays fixed however many distinct values
// pass through. A StringPool is not safe for concurrent use.
type StringPool struct {
	maxLength int
	mask      uint64
	buckets   []string
}

// NewStringPool returns a pool that interns strings of at most maxLength bytes.
func NewStringPool(maxLength int) *StringPool {
	return newStringPool(maxLength, defaultPoolBuckets)
}

func newStringPool(maxLength, buckets int) *StringPool {
	// Round up to a power of two so the hash can be masked.
	n := 1
	for n < buckets {
		n <<= 1
	}
	return &StringPool{
		maxLength: maxLength,
		mask:      uint64(n - 1),
		buckets:   make([]string, n),
	}
}

// String returns a string equal to b, reusing a pooled instance when one matches.
func (p *StringPool) String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if len(b) > p.maxLength {
		return string(b)
	}
	i := xxhash.Sum64(b) & p.mask
	// string(b) in a comparison does not allocate.
	if p.buckets[i] == string(b) {
		return p.buckets[i]
	}
	s := string(b)
	p.buckets[i] = s
	return s
}

// MaxLength reports the longest string the pool will intern.
func (p *StringPool) MaxLength() int { return p.maxLength }

type allocFactory struct{}

func (allocFactory) String(b []byte) string { return string(b) }
