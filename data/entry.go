// Package data holds the decoded telemetry logs: the versioned binary decoder
// that turns raw segment streams into ordered entries, and the channel
// accessor layer projecting entries into (timestamp, value) series.
//
// Two entry kinds exist, mirroring the two recording sources. DataEntry is one
// sample of the primary telemetry record (per-wheel power, velocity and
// torque); TempEntry is one sample of the temperature record. Which channels
// an entry carries is decided entirely by the schema version its segment was
// decoded under; accessors therefore return an optional value instead of
// assuming presence.
package data

import "github.com/rennwerk/telemetry/schema"

// DataEntry is one immutable sample decoded from a primary telemetry record.
type DataEntry struct {
	t       float64
	values  [schema.DataChannelCount]float64
	present uint32
}

// NewDataEntry constructs a synthetic entry as if it had been decoded under
// version v at timestamp t (seconds). Channels that are not primary-source or
// not recorded under v are dropped. Decoded segments never pass through here;
// this exists for tools and tests that need logs without segment files.
func NewDataEntry(v schema.Version, t float64, values map[schema.Channel]float64) DataEntry {
	e := DataEntry{t: t}
	for c, val := range values {
		if c.Source() == schema.SourceData && v.Has(c) {
			e.set(c, val)
		}
	}

	return e
}

func (e *DataEntry) set(c schema.Channel, v float64) {
	e.values[int(c)] = v
	e.present |= 1 << uint32(c)
}

func (e DataEntry) channel(c schema.Channel) (float64, bool) {
	if e.present&(1<<uint32(c)) == 0 {
		return 0, false
	}

	return e.values[int(c)], true
}

// Time returns the sample timestamp in seconds since the recording started.
func (e DataEntry) Time() float64 { return e.t }

// Per-wheel electrical power in watts.
func (e DataEntry) PowerFL() (float64, bool) { return e.channel(schema.PowerFL) }
func (e DataEntry) PowerFR() (float64, bool) { return e.channel(schema.PowerFR) }
func (e DataEntry) PowerRL() (float64, bool) { return e.channel(schema.PowerRL) }
func (e DataEntry) PowerRR() (float64, bool) { return e.channel(schema.PowerRR) }

// Per-wheel velocity in meters per second.
func (e DataEntry) VelocityFL() (float64, bool) { return e.channel(schema.VelocityFL) }
func (e DataEntry) VelocityFR() (float64, bool) { return e.channel(schema.VelocityFR) }
func (e DataEntry) VelocityRL() (float64, bool) { return e.channel(schema.VelocityRL) }
func (e DataEntry) VelocityRR() (float64, bool) { return e.channel(schema.VelocityRR) }

// Per-wheel commanded torque in newton meters.
func (e DataEntry) TorqueSetFL() (float64, bool) { return e.channel(schema.TorqueSetFL) }
func (e DataEntry) TorqueSetFR() (float64, bool) { return e.channel(schema.TorqueSetFR) }
func (e DataEntry) TorqueSetRL() (float64, bool) { return e.channel(schema.TorqueSetRL) }
func (e DataEntry) TorqueSetRR() (float64, bool) { return e.channel(schema.TorqueSetRR) }

// Per-wheel realized torque in newton meters. Recorded from V2 on.
func (e DataEntry) TorqueRealFL() (float64, bool) { return e.channel(schema.TorqueRealFL) }
func (e DataEntry) TorqueRealFR() (float64, bool) { return e.channel(schema.TorqueRealFR) }
func (e DataEntry) TorqueRealRL() (float64, bool) { return e.channel(schema.TorqueRealRL) }
func (e DataEntry) TorqueRealRR() (float64, bool) { return e.channel(schema.TorqueRealRR) }

// TempEntry is one immutable sample decoded from a temperature record.
type TempEntry struct {
	t       float64
	values  [schema.TempChannelCount]float64
	present uint32
}

// NewTempEntry constructs a synthetic temperature entry; see NewDataEntry.
func NewTempEntry(v schema.Version, t float64, values map[schema.Channel]float64) TempEntry {
	e := TempEntry{t: t}
	for c, val := range values {
		if c.Source() == schema.SourceTemp && v.Has(c) {
			e.set(c, val)
		}
	}

	return e
}

func (e *TempEntry) set(c schema.Channel, v float64) {
	i := int(c) - int(schema.TempFL)
	e.values[i] = v
	e.present |= 1 << uint32(i)
}

func (e TempEntry) channel(c schema.Channel) (float64, bool) {
	i := int(c) - int(schema.TempFL)
	if i < 0 || e.present&(1<<uint32(i)) == 0 {
		return 0, false
	}

	return e.values[i], true
}

// Time returns the sample timestamp in seconds since the recording started.
func (e TempEntry) Time() float64 { return e.t }

// Per-wheel motor temperature in degrees Celsius.
func (e TempEntry) TempFL() (float64, bool) { return e.channel(schema.TempFL) }
func (e TempEntry) TempFR() (float64, bool) { return e.channel(schema.TempFR) }
func (e TempEntry) TempRL() (float64, bool) { return e.channel(schema.TempRL) }
func (e TempEntry) TempRR() (float64, bool) { return e.channel(schema.TempRR) }

// Per-wheel ambient temperature at the motor pod in degrees Celsius.
func (e TempEntry) RoomTempFL() (float64, bool) { return e.channel(schema.RoomTempFL) }
func (e TempEntry) RoomTempFR() (float64, bool) { return e.channel(schema.RoomTempFR) }
func (e TempEntry) RoomTempRL() (float64, bool) { return e.channel(schema.RoomTempRL) }
func (e TempEntry) RoomTempRR() (float64, bool) { return e.channel(schema.RoomTempRR) }

// Per-wheel inverter heatsink temperature in degrees Celsius. Recorded from V2 on.
func (e TempEntry) HeatsinkTempFL() (float64, bool) { return e.channel(schema.HeatsinkTempFL) }
func (e TempEntry) HeatsinkTempFR() (float64, bool) { return e.channel(schema.HeatsinkTempFR) }
func (e TempEntry) HeatsinkTempRL() (float64, bool) { return e.channel(schema.HeatsinkTempRL) }
func (e TempEntry) HeatsinkTempRR() (float64, bool) { return e.channel(schema.HeatsinkTempRR) }

// AmsTempMax is the hottest cell temperature reported by the battery
// management system, in degrees Celsius.
func (e TempEntry) AmsTempMax() (float64, bool) { return e.channel(schema.AmsTempMax) }

// WaterTempConverter is the coolant temperature at the converter, in degrees Celsius.
func (e TempEntry) WaterTempConverter() (float64, bool) {
	return e.channel(schema.WaterTempConverter)
}

// WaterTempMotor is the coolant temperature at the motors, in degrees Celsius.
func (e TempEntry) WaterTempMotor() (float64, bool) { return e.channel(schema.WaterTempMotor) }
