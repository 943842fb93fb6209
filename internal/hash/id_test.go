package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"channel name", "power_fl", ID("power_fl")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestID_DistinctChannels(t *testing.T) {
	// The fixed vocabulary must not collide under xxhash64.
	names := []string{
		"power_fl", "power_fr", "power_rl", "power_rr",
		"velocity_fl", "velocity_fr", "velocity_rl", "velocity_rr",
		"torque_set_fl", "torque_real_fl",
		"temp_fl", "room_temp_fl", "heatsink_temp_fl",
		"ams_temp_max", "water_temp_converter", "water_temp_motor",
	}

	seen := make(map[uint64]string, len(names))
	for _, n := range names {
		id := ID(n)
		prev, dup := seen[id]
		assert.False(t, dup, "hash collision between %q and %q", n, prev)
		seen[id] = n
	}
}
