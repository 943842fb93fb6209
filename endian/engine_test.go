package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.NotNil(t, engine)

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.NotNil(t, engine)

	buf := make([]byte, 2)
	engine.PutUint16(buf, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, buf)
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
}

func TestCompareNativeEndian(t *testing.T) {
	native := CheckEndianness()

	if native == binary.LittleEndian {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}
