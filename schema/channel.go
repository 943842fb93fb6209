package schema

import (
	"fmt"

	"github.com/rennwerk/telemetry/errs"
)

// Channel identifies one physical quantity in the fixed channel vocabulary.
// The vocabulary is closed: formulas and series lookups resolve identifiers
// against this set and nothing else.
type Channel uint8

// Data-record channels (wheel order is always FL, FR, RL, RR).
const (
	PowerFL Channel = iota
	PowerFR
	PowerRL
	PowerRR
	VelocityFL
	VelocityFR
	VelocityRL
	VelocityRR
	TorqueSetFL
	TorqueSetFR
	TorqueSetRL
	TorqueSetRR
	TorqueRealFL
	TorqueRealFR
	TorqueRealRL
	TorqueRealRR

	TempFL
	TempFR
	TempRL
	TempRR
	RoomTempFL
	RoomTempFR
	RoomTempRL
	RoomTempRR
	HeatsinkTempFL
	HeatsinkTempFR
	HeatsinkTempRL
	HeatsinkTempRR
	AmsTempMax
	WaterTempConverter
	WaterTempMotor

	numChannels
)

// DataChannelCount and TempChannelCount size per-entry channel storage in the
// decoded logs. They track the channel declaration blocks above.
const (
	DataChannelCount = int(TempFL)
	TempChannelCount = int(numChannels - TempFL)
)

// Source identifies which log a channel is sampled in.
type Source uint8

const (
	// SourceData marks channels sampled in the primary telemetry log.
	SourceData Source = iota
	// SourceTemp marks channels sampled in the temperature log.
	SourceTemp
)

func (s Source) String() string {
	switch s {
	case SourceData:
		return "data"
	case SourceTemp:
		return "temperature"
	default:
		return "unknown"
	}
}

var channelNames = [numChannels]string{
	PowerFL:            "power_fl",
	PowerFR:            "power_fr",
	PowerRL:            "power_rl",
	PowerRR:            "power_rr",
	VelocityFL:         "velocity_fl",
	VelocityFR:         "velocity_fr",
	VelocityRL:         "velocity_rl",
	VelocityRR:         "velocity_rr",
	TorqueSetFL:        "torque_set_fl",
	TorqueSetFR:        "torque_set_fr",
	TorqueSetRL:        "torque_set_rl",
	TorqueSetRR:        "torque_set_rr",
	TorqueRealFL:       "torque_real_fl",
	TorqueRealFR:       "torque_real_fr",
	TorqueRealRL:       "torque_real_rl",
	TorqueRealRR:       "torque_real_rr",
	TempFL:             "temp_fl",
	TempFR:             "temp_fr",
	TempRL:             "temp_rl",
	TempRR:             "temp_rr",
	RoomTempFL:         "room_temp_fl",
	RoomTempFR:         "room_temp_fr",
	RoomTempRL:         "room_temp_rl",
	RoomTempRR:         "room_temp_rr",
	HeatsinkTempFL:     "heatsink_temp_fl",
	HeatsinkTempFR:     "heatsink_temp_fr",
	HeatsinkTempRL:     "heatsink_temp_rl",
	HeatsinkTempRR:     "heatsink_temp_rr",
	AmsTempMax:         "ams_temp_max",
	WaterTempConverter: "water_temp_converter",
	WaterTempMotor:     "water_temp_motor",
}

var channelsByName = func() map[string]Channel {
	m := make(map[string]Channel, numChannels)
	for c := Channel(0); c < numChannels; c++ {
		m[channelNames[c]] = c
	}

	return m
}()

func (c Channel) String() string {
	if c >= numChannels {
		return fmt.Sprintf("channel(%d)", uint8(c))
	}

	return channelNames[c]
}

// Source reports which log the channel is sampled in.
func (c Channel) Source() Source {
	if c < TempFL {
		return SourceData
	}

	return SourceTemp
}

// Channels returns every channel in the vocabulary, in declaration order.
func Channels() []Channel {
	all := make([]Channel, numChannels)
	for c := Channel(0); c < numChannels; c++ {
		all[c] = c
	}

	return all
}

// ChannelByName resolves an identifier against the fixed vocabulary.
//
// Returns:
//   - Channel: The matching channel.
//   - error: errs.ErrUnknownChannel when the name is not in the vocabulary.
func ChannelByName(name string) (Channel, error) {
	c, ok := channelsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownChannel, name)
	}

	return c, nil
}
