package eval

import (
	"github.com/rennwerk/telemetry/data"
	"github.com/rennwerk/telemetry/schema"
)

// The closed accessor registries. A formula identifier resolves to a channel
// at parse time and to one of these accessors at evaluation time; there is no
// other way a formula can reach data. Together they cover the whole channel
// vocabulary, which TestRegistry_CoversVocabulary pins down.

var dataAccessors = map[schema.Channel]data.Accessor[data.DataEntry]{
	schema.PowerFL:      data.DataEntry.PowerFL,
	schema.PowerFR:      data.DataEntry.PowerFR,
	schema.PowerRL:      data.DataEntry.PowerRL,
	schema.PowerRR:      data.DataEntry.PowerRR,
	schema.VelocityFL:   data.DataEntry.VelocityFL,
	schema.VelocityFR:   data.DataEntry.VelocityFR,
	schema.VelocityRL:   data.DataEntry.VelocityRL,
	schema.VelocityRR:   data.DataEntry.VelocityRR,
	schema.TorqueSetFL:  data.DataEntry.TorqueSetFL,
	schema.TorqueSetFR:  data.DataEntry.TorqueSetFR,
	schema.TorqueSetRL:  data.DataEntry.TorqueSetRL,
	schema.TorqueSetRR:  data.DataEntry.TorqueSetRR,
	schema.TorqueRealFL: data.DataEntry.TorqueRealFL,
	schema.TorqueRealFR: data.DataEntry.TorqueRealFR,
	schema.TorqueRealRL: data.DataEntry.TorqueRealRL,
	schema.TorqueRealRR: data.DataEntry.TorqueRealRR,
}

var tempAccessors = map[schema.Channel]data.Accessor[data.TempEntry]{
	schema.TempFL:             data.TempEntry.TempFL,
	schema.TempFR:             data.TempEntry.TempFR,
	schema.TempRL:             data.TempEntry.TempRL,
	schema.TempRR:             data.TempEntry.TempRR,
	schema.RoomTempFL:         data.TempEntry.RoomTempFL,
	schema.RoomTempFR:         data.TempEntry.RoomTempFR,
	schema.RoomTempRL:         data.TempEntry.RoomTempRL,
	schema.RoomTempRR:         data.TempEntry.RoomTempRR,
	schema.HeatsinkTempFL:     data.TempEntry.HeatsinkTempFL,
	schema.HeatsinkTempFR:     data.TempEntry.HeatsinkTempFR,
	schema.HeatsinkTempRL:     data.TempEntry.HeatsinkTempRL,
	schema.HeatsinkTempRR:     data.TempEntry.HeatsinkTempRR,
	schema.AmsTempMax:         data.TempEntry.AmsTempMax,
	schema.WaterTempConverter: data.TempEntry.WaterTempConverter,
	schema.WaterTempMotor:     data.TempEntry.WaterTempMotor,
}
