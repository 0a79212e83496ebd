package record

import (
	"encoding/binary"
	"math"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
)

// VirtualStick is the SDK virtual-joystick command in effect, reported when
// an app is flying the aircraft via the mobile SDK rather than the physical
// remote.
type VirtualStick struct {
	VerticalControlMode  VirtualStickVerticalControlMode
	RollPitchControlMode VirtualStickRollPitchControlMode
	YawControlMode       VirtualStickYawControlMode
	CoordinateSystem     VirtualStickFlightCoordinateSystem
	// Roll is left/right panning, [-30, 30] degrees.
	Roll float32
	// Pitch is forward/reverse, [-30, 30] degrees.
	Pitch float32
	// Yaw is left/right rotation, [-180, 180] degrees.
	Yaw float32
	// Throttle is up/down, [-5, 5] m/s.
	Throttle float32
}

// ParseVirtualStick decodes one VirtualStick payload.
func ParseVirtualStick(data []byte) VirtualStick {
	bitpack1 := data[0]
	var v VirtualStick
	v.VerticalControlMode = newVirtualStickVerticalControlMode(bitfield.Extract(bitpack1, 0x30))
	v.RollPitchControlMode = newVirtualStickRollPitchControlMode(bitfield.Extract(bitpack1, 0xC0))
	v.YawControlMode = newVirtualStickYawControlMode(bitfield.Extract(bitpack1, 0x08))
	v.CoordinateSystem = newVirtualStickFlightCoordinateSystem(bitfield.Extract(bitpack1, 0x06))
	v.Roll = math.Float32frombits(binary.LittleEndian.Uint32(data[1:5]))
	v.Pitch = math.Float32frombits(binary.LittleEndian.Uint32(data[5:9]))
	v.Yaw = math.Float32frombits(binary.LittleEndian.Uint32(data[9:13]))
	v.Throttle = math.Float32frombits(binary.LittleEndian.Uint32(data[13:17]))
	return v
}
