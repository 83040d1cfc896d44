package collect

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/ecsim/ecsim"
)

// FileCollector wraps another collector's collection step and periodically
// writes the accumulated records to a file, one JSON object per line. It
// flushes after every writeCount executions (0 flushes every execution)
// and by default clears the buffer after a successful write.
type FileCollector struct {
	BaseCollector
	collect      func() (Record, bool)
	path         string
	truncate     bool
	writeCount   int
	sinceWrite   int
	keepOnWrite  bool
	wroteAlready bool
	sysOpts      []ecsim.SystemOption
}

var _ Collector = (*FileCollector)(nil)

// FileOption adjusts a FileCollector.
type FileOption func(*FileCollector)

// Truncate makes the first write replace the file instead of appending.
func Truncate() FileOption {
	return func(c *FileCollector) { c.truncate = true }
}

// WithWriteCount sets how many executions pass between flushes.
func WithWriteCount(n int) FileOption {
	return func(c *FileCollector) { c.writeCount = n }
}

// KeepRecords retains flushed records in memory instead of clearing them.
// Combine with WithWriteCount carefully: retained records are written
// again on the next flush.
func KeepRecords() FileOption {
	return func(c *FileCollector) { c.keepOnWrite = true }
}

// WithFileSystemOptions forwards scheduling options to the underlying
// system.
func WithFileSystemOptions(opts ...ecsim.SystemOption) FileOption {
	return func(c *FileCollector) { c.sysOpts = append(c.sysOpts, opts...) }
}

// NewFileCollector creates a collector that gathers one record per
// execution via fn and streams the records to path. fn may return ok=false
// to skip a tick.
func NewFileCollector(id string, m *ecsim.Model, path string, fn func() (Record, bool), opts ...FileOption) *FileCollector {
	c := &FileCollector{collect: fn, path: path}
	for _, opt := range opts {
		opt(c)
	}
	c.BaseCollector = NewBaseCollector(id, m, c.sysOpts...)
	return c
}

// Execute collects a record and flushes when the write interval elapsed.
// Write failures are logged through the model's logger, not raised: a
// collector cannot abort the tick.
func (c *FileCollector) Execute() {
	if r, ok := c.collect(); ok {
		c.Append(r)
	}
	c.sinceWrite++
	if c.sinceWrite > c.writeCount {
		if err := c.Flush(); err != nil {
			c.Model().Logger().Error("file collector flush failed",
				zap.String("collector", c.ID()),
				zap.String("path", c.path),
				zap.Error(err))
		}
		c.sinceWrite = 0
	}
}

// Flush writes the buffered records to the file, one JSON line each.
func (c *FileCollector) Flush() error {
	mode := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if c.truncate && !c.wroteAlready {
		mode = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(c.path, mode, 0o644)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, r := range c.Records() {
		if err := enc.Encode(r); err != nil {
			f.Close()
			return err
		}
	}
	c.wroteAlready = true
	if !c.keepOnWrite {
		c.Clear()
	}
	return f.Close()
}
