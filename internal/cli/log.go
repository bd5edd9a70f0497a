// Package cli implements the permrank command-line interface.
//
// This package provides commands for ranking and unranking permutations
// under several schemes, enumerating and rendering permutations, browsing
// ranks interactively and serving the HTTP API. The CLI is built using cobra
// and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - rank, unrank, count: convert between words and ranks
//   - interval, next: bijective length intervals and lexicographic neighbours
//   - enumerate, render, browse: list, draw or page through permutations
//   - serve: run the HTTP API
//   - schemes, cache, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The level can
// also be set in the config file.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 120 permutations (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
