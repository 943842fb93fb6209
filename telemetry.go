// Package telemetry reads recorded wheel-telemetry logs and assembles them
// into one immutable session of time series.
//
// A recording is a directory of binary segment files: numbered data segments
// holding per-wheel power, velocity and torque samples, plus an optional
// temperature segment. One schema version governs all files opened together
// and selects the binary record layout (see the schema package). On top of
// the decoded logs, the session derives one series per physical channel and
// evaluates user-defined formula channels (see the eval package).
//
// # Basic Usage
//
//	sess, err := telemetry.Open("/logs/run-14", schema.V2,
//	    telemetry.WithCustomChannel("front power", "power_fl + power_fr"),
//	)
//	if err != nil {
//	    // a segment could not be read or decoded; err names the file
//	}
//	for _, sample := range sess.Power.FL {
//	    fmt.Println(sample.T, sample.V)
//	}
//
// Custom channel failures are not fatal: they are reported per formula in
// sess.Custom, and the rest of the session stays valid.
//
// # Package Structure
//
// This package is a convenience wrapper over session (discovery and
// assembly); advanced callers can drive session.FindFiles and session.Build
// directly, e.g. to open an explicit file set.
package telemetry

import (
	"log/slog"

	"github.com/rennwerk/telemetry/schema"
	"github.com/rennwerk/telemetry/session"
)

type openConfig struct {
	customs []session.CustomDef
	logger  *slog.Logger
}

// Option configures Open.
type Option func(*openConfig)

// WithCustomChannel adds one user-defined channel to evaluate: a display
// name plus an arithmetic formula over built-in channel names. Options are
// evaluated in the order given.
func WithCustomChannel(name, formula string) Option {
	return func(c *openConfig) {
		c.customs = append(c.customs, session.CustomDef{Name: name, Formula: formula})
	}
}

// WithLogger attaches a logger for discovery and assembly progress. Without
// it, Open is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *openConfig) {
		c.logger = logger
	}
}

// Open discovers the segment files of one recording directory and builds the
// session: both logs decoded under version, every built-in channel series,
// and one result slot per custom channel.
//
// The call is synchronous and returns only when the session is fully built
// or the first fatal error is hit. The returned session is immutable;
// opening again yields a new one.
//
// Returns:
//   - *session.Session: The assembled session.
//   - error: Directory read failure, or *session.FileError naming the first
//     segment that could not be read or decoded.
func Open(dir string, version schema.Version, opts ...Option) (*session.Session, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	files, err := session.FindFiles(dir)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("discovered segments",
		slog.String("dir", dir),
		slog.Int("data", len(files.Data)),
		slog.Bool("temperature", files.Temp != ""),
	)

	sess, err := session.Build(files, version, cfg.customs)
	if err != nil {
		return nil, err
	}

	cfg.logger.Info("session built",
		slog.String("version", version.String()),
		slog.Int("dataEntries", sess.Data.Len()),
		slog.Int("tempEntries", sess.Temp.Len()),
		slog.Int("customChannels", len(sess.Custom)),
	)

	return sess, nil
}
