package data

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rennwerk/telemetry/errs"
	"github.com/rennwerk/telemetry/schema"
)

// dataRecord encodes one primary telemetry record. vals are the raw i16
// channel values in layout order: power[4], velocity[4], torque_set[4] and,
// for V2, torque_real[4].
func dataRecord(t *testing.T, version schema.Version, tsMs uint32, vals ...int16) []byte {
	t.Helper()

	layout, err := schema.DataLayout(version)
	require.NoError(t, err)
	require.Len(t, vals, len(layout.Fields))

	b := make([]byte, layout.RecordSize)
	binary.LittleEndian.PutUint32(b[0:4], tsMs)
	for i, f := range layout.Fields {
		binary.LittleEndian.PutUint16(b[f.Offset:f.Offset+2], uint16(vals[i]))
	}

	return b
}

// tempRecord encodes one temperature record. temps are the raw i16 values in
// layout order skipping the u8 room temperatures, which are passed separately.
func tempRecord(t *testing.T, version schema.Version, tsMs uint32, room [4]uint8, temps ...int16) []byte {
	t.Helper()

	layout, err := schema.TempLayout(version)
	require.NoError(t, err)

	b := make([]byte, layout.RecordSize)
	binary.LittleEndian.PutUint32(b[0:4], tsMs)

	i16s := 0
	u8s := 0
	for _, f := range layout.Fields {
		switch f.Kind {
		case schema.U8:
			b[f.Offset] = room[u8s]
			u8s++
		case schema.I16:
			binary.LittleEndian.PutUint16(b[f.Offset:f.Offset+2], uint16(temps[i16s]))
			i16s++
		}
	}
	require.Len(t, temps, i16s)

	return b
}

func TestDataLogReadExtend_V2(t *testing.T) {
	rec0 := dataRecord(t, schema.V2, 1000,
		1200, 1180, 1300, 1310, // power, W
		852, 850, 861, 860, // velocity, raw 0.01 m/s
		1500, 1500, 1800, 1800, // torque_set, raw 0.01 Nm
		1490, 1492, 1795, 1808) // torque_real, raw 0.01 Nm
	rec1 := dataRecord(t, schema.V2, 1010,
		1210, 1190, 1310, 1320,
		854, 852, 863, 862,
		1500, 1500, 1800, 1800,
		1495, 1497, 1799, 1810)

	var log DataLog
	err := log.ReadExtend(bytes.NewReader(append(rec0, rec1...)), schema.V2)
	require.NoError(t, err)
	require.Equal(t, 2, log.Len())

	e := log.At(0)
	require.Equal(t, 1.0, e.Time())

	power, ok := e.PowerFL()
	require.True(t, ok)
	require.Equal(t, 1200.0, power)

	vel, ok := e.VelocityRR()
	require.True(t, ok)
	require.InDelta(t, 8.60, vel, 1e-9)

	torque, ok := e.TorqueRealFR()
	require.True(t, ok)
	require.InDelta(t, 14.92, torque, 1e-9)

	require.Equal(t, 1.01, log.At(1).Time())
}

func TestDataLogReadExtend_V1OmitsRealizedTorque(t *testing.T) {
	rec := dataRecord(t, schema.V1, 500,
		100, 100, 100, 100,
		200, 200, 200, 200,
		300, 300, 300, 300)

	var log DataLog
	require.NoError(t, log.ReadExtend(bytes.NewReader(rec), schema.V1))
	require.Equal(t, 1, log.Len())

	e := log.At(0)
	_, ok := e.TorqueRealFL()
	require.False(t, ok)

	torque, ok := e.TorqueSetFL()
	require.True(t, ok)
	require.InDelta(t, 3.0, torque, 1e-9)
}

func TestDataLogReadExtend_NegativeValues(t *testing.T) {
	// Regen braking: power and torque go negative.
	rec := dataRecord(t, schema.V2, 0,
		-2500, -2480, -2600, -2610,
		500, 500, 510, 510,
		-900, -900, -950, -950,
		-880, -882, -940, -951)

	var log DataLog
	require.NoError(t, log.ReadExtend(bytes.NewReader(rec), schema.V2))

	power, ok := log.At(0).PowerRL()
	require.True(t, ok)
	require.Equal(t, -2600.0, power)

	torque, ok := log.At(0).TorqueRealRR()
	require.True(t, ok)
	require.InDelta(t, -9.51, torque, 1e-9)
}

func TestDataLogReadExtend_TruncatedRecord(t *testing.T) {
	rec := dataRecord(t, schema.V2, 1000,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)

	var log DataLog
	require.NoError(t, log.ReadExtend(bytes.NewReader(rec), schema.V2))
	require.Equal(t, 1, log.Len())

	// A full record followed by a partial one: the error must surface and the
	// log must keep only what it had before the failing call.
	err := log.ReadExtend(bytes.NewReader(append(rec, rec[:10]...)), schema.V2)
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)
	require.Equal(t, 1, log.Len())
}

func TestDataLogReadExtend_UnknownVersion(t *testing.T) {
	var log DataLog
	err := log.ReadExtend(bytes.NewReader(nil), schema.Version(99))
	require.ErrorIs(t, err, errs.ErrUnknownVersion)
}

func TestDataLogReadExtend_SegmentConcatenationEquivalence(t *testing.T) {
	seg0 := append(
		dataRecord(t, schema.V2, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4),
		dataRecord(t, schema.V2, 10, 5, 5, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7, 8, 8, 8, 8)...)
	seg1 := dataRecord(t, schema.V2, 20, 9, 9, 9, 9, 10, 10, 10, 10, 11, 11, 11, 11, 12, 12, 12, 12)

	var sequential DataLog
	require.NoError(t, sequential.ReadExtend(bytes.NewReader(seg0), schema.V2))
	require.NoError(t, sequential.ReadExtend(bytes.NewReader(seg1), schema.V2))

	var concatenated DataLog
	require.NoError(t, concatenated.ReadExtend(bytes.NewReader(append(seg0, seg1...)), schema.V2))

	require.Equal(t, concatenated, sequential)
}

func TestTempLogReadExtend_V2(t *testing.T) {
	rec := tempRecord(t, schema.V2, 2000,
		[4]uint8{100, 102, 104, 106}, // room temp raw, 0.5 °C steps from −40
		655, 650, 700, 702, // temp, raw 0.1 °C
		412, // ams_temp_max
		305, // water_temp_converter
		318, // water_temp_motor
		550, 552, 560, 561) // heatsink, raw 0.1 °C

	var log TempLog
	require.NoError(t, log.ReadExtend(bytes.NewReader(rec), schema.V2))
	require.Equal(t, 1, log.Len())

	e := log.At(0)
	require.Equal(t, 2.0, e.Time())

	temp, ok := e.TempFL()
	require.True(t, ok)
	require.InDelta(t, 65.5, temp, 1e-9)

	room, ok := e.RoomTempFR()
	require.True(t, ok)
	require.InDelta(t, 11.0, room, 1e-9) // 102*0.5 − 40

	heatsink, ok := e.HeatsinkTempRR()
	require.True(t, ok)
	require.InDelta(t, 56.1, heatsink, 1e-9)

	ams, ok := e.AmsTempMax()
	require.True(t, ok)
	require.InDelta(t, 41.2, ams, 1e-9)

	motor, ok := e.WaterTempMotor()
	require.True(t, ok)
	require.InDelta(t, 31.8, motor, 1e-9)
}

func TestTempLogReadExtend_V1OmitsHeatsink(t *testing.T) {
	rec := tempRecord(t, schema.V1, 0,
		[4]uint8{80, 80, 80, 80},
		655, 650, 700, 702,
		412, 305, 318)

	var log TempLog
	require.NoError(t, log.ReadExtend(bytes.NewReader(rec), schema.V1))

	_, ok := log.At(0).HeatsinkTempFL()
	require.False(t, ok)

	conv, ok := log.At(0).WaterTempConverter()
	require.True(t, ok)
	require.InDelta(t, 30.5, conv, 1e-9)
}

func TestTempLogReadExtend_TruncatedRecord(t *testing.T) {
	rec := tempRecord(t, schema.V1, 0,
		[4]uint8{80, 80, 80, 80},
		655, 650, 700, 702,
		412, 305, 318)

	var log TempLog
	err := log.ReadExtend(bytes.NewReader(rec[:len(rec)-1]), schema.V1)
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)
	require.Equal(t, 0, log.Len())
}
