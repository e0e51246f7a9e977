package beehive

import (
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"

	"github.com/beehive-go/beehive/core"
)

// Config holds construction options for a Pool. All fields are optional;
// zero values get defaults from normalize.
type Config struct {
	// Workers is the number of dedicated worker threads created at
	// construction. Defaults to runtime.NumCPU().
	Workers int

	// ID names the pool in logs and metrics labels. Defaults to
	// "pool-<random>" with a UUID-derived suffix.
	ID string

	// Logger receives pool and worker lifecycle events. Defaults to
	// core.DefaultLogger.
	Logger core.Logger

	// Metrics records execution metrics. Defaults to core.NilMetrics.
	Metrics core.Metrics

	// DumpSink receives diagnostic dump records from every worker.
	// Defaults to os.Stderr.
	DumpSink io.Writer
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// normalize fills zero values in place.
func (c *Config) normalize() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ID == "" {
		c.ID = "pool-" + uuid.NewString()[:8]
	}
	if c.Logger == nil {
		c.Logger = core.NewDefaultLogger()
	}
	if c.Metrics == nil {
		c.Metrics = &core.NilMetrics{}
	}
	if c.DumpSink == nil {
		c.DumpSink = os.Stderr
	}
}
