package record

import (
	"encoding/binary"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
)

// Gimbal is the periodic gimbal-attitude/status record.
type Gimbal struct {
	Pitch float32 // degrees
	Roll  float32 // degrees
	Yaw   float32 // degrees

	Mode  GimbalMode
	Reset byte

	RollAdjust float32 // degrees
	YawAngle   float32 // degrees

	IsPitchAtLimit         bool
	IsRollAtLimit          bool
	IsYawAtLimit           bool
	IsAutoCalibration      bool
	AutoCalibrationResult  bool
	InstallDirection       bool
	IsStuck                bool

	Version        byte // only set for version >= 2
	IsDoubleClick  bool
	IsTripleClick  bool
	IsSingleClick  bool
}

// ParseGimbal decodes one Gimbal payload.
func ParseGimbal(data []byte, version byte) Gimbal {
	var g Gimbal
	g.Pitch = float32(int16(binary.LittleEndian.Uint16(data[0:2]))) / 10.0
	g.Roll = float32(int16(binary.LittleEndian.Uint16(data[2:4]))) / 10.0
	g.Yaw = float32(int16(binary.LittleEndian.Uint16(data[4:6]))) / 10.0

	bitpack1 := data[6]
	g.Mode = newGimbalMode(bitfield.Extract(bitpack1, 0xC0))
	g.Reset = bitfield.Extract(bitpack1, 0x20)

	g.RollAdjust = float32(int8(data[7])) / 10.0
	g.YawAngle = float32(int16(binary.LittleEndian.Uint16(data[8:10]))) / 10.0

	bitpack2 := data[10]
	g.IsPitchAtLimit = bitfield.Bool(bitpack2, 0x01)
	g.IsRollAtLimit = bitfield.Bool(bitpack2, 0x02)
	g.IsYawAtLimit = bitfield.Bool(bitpack2, 0x04)
	g.IsAutoCalibration = bitfield.Bool(bitpack2, 0x08)
	g.AutoCalibrationResult = bitfield.Bool(bitpack2, 0x10)
	g.InstallDirection = bitfield.Bool(bitpack2, 0x20)
	g.IsStuck = bitfield.Bool(bitpack2, 0x40)

	if version >= 2 && len(data) > 11 {
		bitpack3 := data[11]
		g.Version = bitfield.Extract(bitpack3, 0x0F)
		g.IsDoubleClick = bitfield.Bool(bitpack3, 0x20)
		g.IsTripleClick = bitfield.Bool(bitpack3, 0x40)
		g.IsSingleClick = bitfield.Bool(bitpack3, 0x80)
	}

	return g
}
