package session

import (
	"bufio"
	"io"
	"os"

	"github.com/rennwerk/telemetry/compress"
	"github.com/rennwerk/telemetry/data"
	"github.com/rennwerk/telemetry/eval"
	"github.com/rennwerk/telemetry/internal/hash"
	"github.com/rennwerk/telemetry/schema"
)

// CustomDef is one user-authored derived channel: a display name plus the
// formula text to evaluate.
type CustomDef struct {
	Name    string
	Formula string
}

// CustomChannel is the evaluated result of one CustomDef. Exactly one of
// Series and Err is set; a failing formula never affects the session or the
// other custom channels.
type CustomChannel struct {
	Name    string
	Formula string
	Series  data.Series
	Err     error
}

// Session is one fully assembled recording: the raw logs, every built-in
// channel series, and the custom channel results.
//
// A Session is immutable once built. Opening another directory produces a new
// Session; nothing ever mutates an existing one in place.
type Session struct {
	Version schema.Version

	Data data.DataLog
	Temp data.TempLog

	Power      data.WheelValues[data.Series]
	Velocity   data.WheelValues[data.Series]
	TorqueSet  data.WheelValues[data.Series]
	TorqueReal data.WheelValues[data.Series]

	Temps         data.WheelValues[data.Series]
	RoomTemps     data.WheelValues[data.Series]
	HeatsinkTemps data.WheelValues[data.Series]

	AmsTempMax         data.Series
	WaterTempConverter data.Series
	WaterTempMotor     data.Series

	Custom []CustomChannel

	byID map[uint64]data.Series
}

// Series returns the built-in series for a channel name, e.g. "power_fl".
// Lookup is by xxhash64 of the name. Custom channels are not included; they
// live in Custom under their user-chosen names.
func (s *Session) Series(name string) (data.Series, bool) {
	series, ok := s.byID[hash.ID(name)]

	return series, ok
}

// Build assembles one Session from a resolved file set.
//
// Data segments are decoded in order into one log, then the temperature
// segment if present; the first I/O or decode failure aborts the whole build
// with a *FileError naming the failing path, and segments after it are never
// opened. Every built-in series is then derived, and each custom formula is
// evaluated independently: formula failures land in the matching
// CustomChannel slot and never fail the build.
//
// Parameters:
//   - files: Resolved segment paths from FindFiles
//   - version: Schema version governing every file of the session
//   - customs: Custom channel definitions, evaluated in order
//
// Returns:
//   - *Session: The immutable assembled session.
//   - error: *FileError on the first segment that could not be read or decoded.
func Build(files Files, version schema.Version, customs []CustomDef) (*Session, error) {
	var d data.DataLog
	for _, path := range files.Data {
		if err := readSegment(&d, path, version); err != nil {
			return nil, err
		}
	}

	var t data.TempLog
	if files.Temp != "" {
		if err := readSegment(&t, files.Temp, version); err != nil {
			return nil, err
		}
	}

	s := &Session{
		Version: version,
		Data:    d,
		Temp:    t,

		Power: data.WheelValues[data.Series]{
			FL: data.MapOverTime(d.All(), data.DataEntry.PowerFL),
			FR: data.MapOverTime(d.All(), data.DataEntry.PowerFR),
			RL: data.MapOverTime(d.All(), data.DataEntry.PowerRL),
			RR: data.MapOverTime(d.All(), data.DataEntry.PowerRR),
		},
		Velocity: data.WheelValues[data.Series]{
			FL: data.MapOverTime(d.All(), data.DataEntry.VelocityFL),
			FR: data.MapOverTime(d.All(), data.DataEntry.VelocityFR),
			RL: data.MapOverTime(d.All(), data.DataEntry.VelocityRL),
			RR: data.MapOverTime(d.All(), data.DataEntry.VelocityRR),
		},
		TorqueSet: data.WheelValues[data.Series]{
			FL: data.MapOverTime(d.All(), data.DataEntry.TorqueSetFL),
			FR: data.MapOverTime(d.All(), data.DataEntry.TorqueSetFR),
			RL: data.MapOverTime(d.All(), data.DataEntry.TorqueSetRL),
			RR: data.MapOverTime(d.All(), data.DataEntry.TorqueSetRR),
		},
		TorqueReal: data.WheelValues[data.Series]{
			FL: data.MapOverTime(d.All(), data.DataEntry.TorqueRealFL),
			FR: data.MapOverTime(d.All(), data.DataEntry.TorqueRealFR),
			RL: data.MapOverTime(d.All(), data.DataEntry.TorqueRealRL),
			RR: data.MapOverTime(d.All(), data.DataEntry.TorqueRealRR),
		},
		Temps: data.WheelValues[data.Series]{
			FL: data.MapOverTime(t.All(), data.TempEntry.TempFL),
			FR: data.MapOverTime(t.All(), data.TempEntry.TempFR),
			RL: data.MapOverTime(t.All(), data.TempEntry.TempRL),
			RR: data.MapOverTime(t.All(), data.TempEntry.TempRR),
		},
		RoomTemps: data.WheelValues[data.Series]{
			FL: data.MapOverTime(t.All(), data.TempEntry.RoomTempFL),
			FR: data.MapOverTime(t.All(), data.TempEntry.RoomTempFR),
			RL: data.MapOverTime(t.All(), data.TempEntry.RoomTempRL),
			RR: data.MapOverTime(t.All(), data.TempEntry.RoomTempRR),
		},
		HeatsinkTemps: data.WheelValues[data.Series]{
			FL: data.MapOverTime(t.All(), data.TempEntry.HeatsinkTempFL),
			FR: data.MapOverTime(t.All(), data.TempEntry.HeatsinkTempFR),
			RL: data.MapOverTime(t.All(), data.TempEntry.HeatsinkTempRL),
			RR: data.MapOverTime(t.All(), data.TempEntry.HeatsinkTempRR),
		},
		AmsTempMax:         data.MapOverTime(t.All(), data.TempEntry.AmsTempMax),
		WaterTempConverter: data.MapOverTime(t.All(), data.TempEntry.WaterTempConverter),
		WaterTempMotor:     data.MapOverTime(t.All(), data.TempEntry.WaterTempMotor),
	}

	s.Custom = make([]CustomChannel, len(customs))
	for i, def := range customs {
		series, err := eval.Eval(def.Formula, &s.Data, &s.Temp)
		s.Custom[i] = CustomChannel{
			Name:    def.Name,
			Formula: def.Formula,
			Series:  series,
			Err:     err,
		}
	}

	s.index()

	return s, nil
}

// segmentLog is the decode surface shared by both log types.
type segmentLog interface {
	ReadExtend(r io.Reader, version schema.Version) error
}

// readSegment opens one segment, routes it through its compression codec,
// and appends its records to log. Any failure comes back as a *FileError so
// the caller can surface the offending path.
func readSegment(log segmentLog, path string, version schema.Version) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer f.Close()

	format, _ := compress.DetectPath(path)
	codec, err := compress.ForFormat(format)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	r, err := codec.NewReader(bufio.NewReader(f))
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer r.Close()

	if err := log.ReadExtend(r, version); err != nil {
		return &FileError{Path: path, Err: err}
	}

	return nil
}

// index builds the name-hash lookup over every built-in series.
func (s *Session) index() {
	wheels := func(c schema.Channel, w data.WheelValues[data.Series]) {
		s.byID[hash.ID(c.String())] = w.FL
		s.byID[hash.ID((c + 1).String())] = w.FR
		s.byID[hash.ID((c + 2).String())] = w.RL
		s.byID[hash.ID((c + 3).String())] = w.RR
	}

	s.byID = make(map[uint64]data.Series, 31)
	wheels(schema.PowerFL, s.Power)
	wheels(schema.VelocityFL, s.Velocity)
	wheels(schema.TorqueSetFL, s.TorqueSet)
	wheels(schema.TorqueRealFL, s.TorqueReal)
	wheels(schema.TempFL, s.Temps)
	wheels(schema.RoomTempFL, s.RoomTemps)
	wheels(schema.HeatsinkTempFL, s.HeatsinkTemps)
	s.byID[hash.ID(schema.AmsTempMax.String())] = s.AmsTempMax
	s.byID[hash.ID(schema.WaterTempConverter.String())] = s.WaterTempConverter
	s.byID[hash.ID(schema.WaterTempMotor.String())] = s.WaterTempMotor
}
