package retained

import (
	"fmt"
	"log/slog"
	"os"
)

// logLevel controls verbosity for every logger this package creates.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging. Call this from main() after
// parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ResourceFactory is the process-wide rendering backend state shared by all
// windows: font and drawing factories and the like.
type ResourceFactory interface {
	Init() error
	Shutdown()
}

// Context is the process-wide state windows share. It is created once and
// passed to NewWindow. The factory is initialised when the first window is
// created and shut down when the last one closes.
type Context struct {
	factory ResourceFactory
	refs    int
	logger  *slog.Logger
}

// NewContext returns a context over factory. Both arguments may be nil: a nil
// factory needs no setup, and a nil logger logs text to stderr.
func NewContext(factory ResourceFactory, logger *slog.Logger) *Context {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Context{factory: factory, logger: logger}
}

// Logger returns the context's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Refs returns the number of live acquisitions.
func (c *Context) Refs() int { return c.refs }

// Acquire takes a reference, initialising the factory on the first one.
func (c *Context) Acquire() error {
	if c.refs == 0 && c.factory != nil {
		if err := c.factory.Init(); err != nil {
			return fmt.Errorf("init resource factory: %w", err)
		}
		c.logger.Debug("resource factory initialised")
	}
	c.refs++
	return nil
}

// Release drops a reference, shutting the factory down on the last one.
// Extra releases are ignored.
func (c *Context) Release() {
	if c.refs == 0 {
		return
	}
	c.refs--
	if c.refs == 0 && c.factory != nil {
		c.factory.Shutdown()
		c.logger.Debug("resource factory shut down")
	}
}
