// Package app implements the telelog command: it opens one recording
// directory as a telemetry session, reports what was decoded, and optionally
// exports selected channel series to CSV.
package app

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/rennwerk/telemetry"
	"github.com/rennwerk/telemetry/data"
	"github.com/rennwerk/telemetry/session"
)

// Run opens the configured session and performs the configured actions. The
// session build is one synchronous call; a segment failure surfaces here
// with the failing path.
func Run(config *Config, logger *slog.Logger) error {
	opts := []telemetry.Option{telemetry.WithLogger(logger)}
	for _, ch := range config.Channels {
		opts = append(opts, telemetry.WithCustomChannel(ch.Name, ch.Formula))
	}

	sess, err := telemetry.Open(config.Session.Dir, config.SchemaVersion(), opts...)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	for _, custom := range sess.Custom {
		if custom.Err != nil {
			logger.Warn("custom channel failed",
				slog.String("name", custom.Name),
				slog.String("formula", custom.Formula),
				slog.String("reason", custom.Err.Error()),
			)
			continue
		}
		logger.Debug("custom channel evaluated",
			slog.String("name", custom.Name),
			slog.Int("samples", len(custom.Series)),
		)
	}

	if config.Export != nil {
		if err := exportCSV(sess, config.Export, logger); err != nil {
			return fmt.Errorf("exporting channels: %w", err)
		}
	}

	return nil
}

// exportCSV writes the selected channels in long form: one row per sample
// with the channel name, timestamp and value. Series of one session differ
// in length and timestamps, so a wide table would need a join the core does
// not define.
func exportCSV(sess *session.Session, config *ExportConfig, logger *slog.Logger) error {
	f, err := os.Create(config.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"channel", "time_s", "value"}); err != nil {
		return err
	}

	for _, name := range config.Channels {
		series, err := lookupSeries(sess, name)
		if err != nil {
			return err
		}

		for _, sample := range series {
			row := []string{
				name,
				strconv.FormatFloat(sample.T, 'f', -1, 64),
				strconv.FormatFloat(sample.V, 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}

		logger.Debug("exported channel", slog.String("channel", name), slog.Int("samples", len(series)))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	logger.Info("export written", slog.String("path", config.Path))

	return nil
}

// lookupSeries resolves a name against the built-in channels first, then the
// session's custom channels.
func lookupSeries(sess *session.Session, name string) (data.Series, error) {
	if series, ok := sess.Series(name); ok {
		return series, nil
	}

	for _, custom := range sess.Custom {
		if custom.Name != name {
			continue
		}
		if custom.Err != nil {
			return nil, fmt.Errorf("channel %q failed to evaluate: %w", name, custom.Err)
		}

		return custom.Series, nil
	}

	return nil, fmt.Errorf("no channel named %q", name)
}
