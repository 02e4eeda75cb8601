package tabular

const (
	defaultBufferSize = 64 << 10 // 64 KiB
	minBufferSize     = 16
)

// config holds Reader and Writer configuration.
type config struct {
	leaveOpen  bool
	bufferSize int
	factory    func() StringFactory
}

// Option configures a Reader or Writer.
type Option func(*config)

func newConfig(opts []Option) config {
	c := config{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(&c)
	}
	if c.bufferSize < minBufferSize {
		c.bufferSize = minBufferSize
	}
	return c
}

// LeaveOpen keeps the underlying stream open when the Reader or Writer is closed.
// Without it, Close also closes the stream if it implements io.Closer.
func LeaveOpen() Option {
	return func(c *config) {
		c.leaveOpen = true
	}
}

// BufferSize sets the size of the internal I/O buffer in bytes.
//
// Default: 64 KiB. Values below 16 are raised to 16.
func BufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

// PoolStrings makes Reader.Text intern decoded strings through a bounded pool
// private to each Reader. Strings longer than maxLength bytes bypass the pool.
// A maxLength <= 0 disables pooling.
func PoolStrings(maxLength int) Option {
	return func(c *config) {
		if maxLength <= 0 {
			c.factory = nil
			return
		}
		c.factory = func() StringFactory {
			return NewStringPool(maxLength)
		}
	}
}

// WithStringFactory installs a custom string factory. newFactory is called once
// per Reader so that factories never need to be safe for concurrent use.
func WithStringFactory(newFactory func() StringFactory) Option {
	return func(c *config) {
		c.factory = newFactory
	}
}
