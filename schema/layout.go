package schema

import (
	"fmt"

	"github.com/rennwerk/telemetry/errs"
)

// FieldKind is the raw on-wire representation of one field.
type FieldKind uint8

const (
	U8 FieldKind = iota + 1
	I16
	U16
	U32
)

// Size returns the field width in bytes.
func (k FieldKind) Size() int {
	switch k {
	case U8:
		return 1
	case I16, U16:
		return 2
	case U32:
		return 4
	default:
		return 0
	}
}

// FieldSpec describes how one channel is stored inside a fixed-size record:
// its byte offset, raw representation, and the affine transform to
// engineering units (value = raw*Scale + Bias).
type FieldSpec struct {
	Channel Channel
	Offset  int
	Kind    FieldKind
	Scale   float64
	Bias    float64
}

// Layout is the immutable decode table for one (version, source) pair.
//
// Every record starts with a uint32 timestamp in milliseconds since the start
// of the recording; Fields lists the channel fields that follow. The decoder
// iterates Fields without knowing which version it is decoding.
type Layout struct {
	// RecordSize is the total fixed record width in bytes, timestamp included.
	RecordSize int

	// Fields lists the channel fields in ascending offset order.
	Fields []FieldSpec
}

// TimestampScale converts the raw millisecond counter to seconds.
const TimestampScale = 1e-3

// wheelRun appends four consecutive FieldSpecs (FL, FR, RL, RR) of the same
// kind and scaling, starting at channel c and byte offset off.
func wheelRun(fields []FieldSpec, c Channel, off int, kind FieldKind, scale, bias float64) []FieldSpec {
	for i := 0; i < 4; i++ {
		fields = append(fields, FieldSpec{
			Channel: c + Channel(i),
			Offset:  off + i*kind.Size(),
			Kind:    kind,
			Scale:   scale,
			Bias:    bias,
		})
	}

	return fields
}

// Data record layouts.
//
// V1 (28 bytes): ts u32 ms | power[4] i16 W | velocity[4] i16 ×0.01 m/s |
// torque_set[4] i16 ×0.01 Nm.
// V2 (36 bytes): V1 followed by torque_real[4] i16 ×0.01 Nm.
var dataLayouts = map[Version]Layout{
	V1: {
		RecordSize: 28,
		Fields:     dataFieldsV1(),
	},
	V2: {
		RecordSize: 36,
		Fields:     wheelRun(dataFieldsV1(), TorqueRealFL, 28, I16, 0.01, 0),
	},
}

func dataFieldsV1() []FieldSpec {
	f := make([]FieldSpec, 0, 16)
	f = wheelRun(f, PowerFL, 4, I16, 1, 0)
	f = wheelRun(f, VelocityFL, 12, I16, 0.01, 0)
	f = wheelRun(f, TorqueSetFL, 20, I16, 0.01, 0)

	return f
}

// Temperature record layouts.
//
// V1 (22 bytes): ts u32 ms | temp[4] i16 ×0.1 °C | room_temp[4] u8 ×0.5 −40 °C |
// ams_temp_max i16 ×0.1 | water_temp_converter i16 ×0.1 | water_temp_motor i16 ×0.1.
// V2 (30 bytes): V1 followed by heatsink_temp[4] i16 ×0.1 °C.
var tempLayouts = map[Version]Layout{
	V1: {
		RecordSize: 22,
		Fields:     tempFieldsV1(),
	},
	V2: {
		RecordSize: 30,
		Fields:     wheelRun(tempFieldsV1(), HeatsinkTempFL, 22, I16, 0.1, 0),
	},
}

func tempFieldsV1() []FieldSpec {
	f := make([]FieldSpec, 0, 15)
	f = wheelRun(f, TempFL, 4, I16, 0.1, 0)
	f = wheelRun(f, RoomTempFL, 12, U8, 0.5, -40)
	f = append(f,
		FieldSpec{Channel: AmsTempMax, Offset: 16, Kind: I16, Scale: 0.1},
		FieldSpec{Channel: WaterTempConverter, Offset: 18, Kind: I16, Scale: 0.1},
		FieldSpec{Channel: WaterTempMotor, Offset: 20, Kind: I16, Scale: 0.1},
	)

	return f
}

// DataLayout returns the primary telemetry decode table for v.
func DataLayout(v Version) (Layout, error) {
	l, ok := dataLayouts[v]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %s", errs.ErrUnknownVersion, v)
	}

	return l, nil
}

// TempLayout returns the temperature decode table for v.
func TempLayout(v Version) (Layout, error) {
	l, ok := tempLayouts[v]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %s", errs.ErrUnknownVersion, v)
	}

	return l, nil
}

// presence maps a version to the bitmask of channels its layouts record.
var presence = func() map[Version]uint32 {
	m := make(map[Version]uint32, len(dataLayouts))
	for _, v := range []Version{V1, V2} {
		var mask uint32
		for _, f := range dataLayouts[v].Fields {
			mask |= 1 << uint32(f.Channel)
		}
		for _, f := range tempLayouts[v].Fields {
			mask |= 1 << uint32(f.Channel)
		}
		m[v] = mask
	}

	return m
}()
