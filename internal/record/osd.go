package record

import (
	"encoding/binary"
	"math"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
)

// OSD is the flight-telemetry record emitted at roughly the aircraft's
// control-loop rate: position, attitude, speed, and the dozens of
// bit-packed status flags the app surfaces as warnings/OSD overlays.
type OSD struct {
	Longitude float64 // degrees
	Latitude  float64 // degrees
	Altitude  float32 // meters
	SpeedX    float32 // meters/second
	SpeedY    float32 // meters/second
	SpeedZ    float32 // meters/second
	Pitch     float32 // degrees
	Roll      float32 // degrees
	Yaw       float32 // degrees

	FlightMode   FlightMode
	RcOutcontrol bool
	AppCommand   AppCommand

	CanIocWork   bool
	GroundOrSky  GroundOrSky
	IsMotorUp    bool
	IsSwaveWork  bool
	GoHomeStatus GoHomeStatus

	IsVisionUsed    bool
	VoltageWarning  byte
	IsImuPreheated  bool
	ModeChannel     byte
	IsGpsValid      bool

	IsCompassError bool
	WaveError      bool
	GpsLevel       byte
	BatteryType    BatteryType

	IsOutOfLimit            bool
	IsGoHomeHeightModified   bool
	IsPropellerCatapult      bool
	IsMotorBlocked           bool
	IsNotEnoughForce         bool
	IsBarometerDeadInAir     bool
	IsVibrating              bool
	IsAcceletorOverRange     bool

	GpsNum                 byte
	FlightAction           FlightAction
	MotorStartFailedCause  MotorStartFailedCause

	NonGpsCause      NonGPSCause
	WaypointLimitMode bool

	Battery            byte
	SWaveHeight        float32 // meters
	FlyTime            float32 // seconds
	MotorRevolution    byte
	VersionC           byte
	DroneType          DroneType
	ImuInitFailReason  ImuInitFailReason
}

// ParseOSD decodes one OSD payload. Fields gated behind version>=2/3 are
// left at their zero value on older files, matching the original's
// `#[br(if(version >= N))]` guards.
func ParseOSD(data []byte, version byte) OSD {
	var o OSD
	o.Longitude = radToDeg(math.Float64frombits(binary.LittleEndian.Uint64(data[0:8])))
	o.Latitude = radToDeg(math.Float64frombits(binary.LittleEndian.Uint64(data[8:16])))
	o.Altitude = float32(int16(binary.LittleEndian.Uint16(data[16:18]))) / 10.0
	o.SpeedX = float32(int16(binary.LittleEndian.Uint16(data[18:20]))) / 10.0
	o.SpeedY = float32(int16(binary.LittleEndian.Uint16(data[20:22]))) / 10.0
	o.SpeedZ = float32(int16(binary.LittleEndian.Uint16(data[22:24]))) / 10.0
	o.Pitch = float32(int16(binary.LittleEndian.Uint16(data[24:26]))) / 10.0
	o.Roll = float32(int16(binary.LittleEndian.Uint16(data[26:28]))) / 10.0
	o.Yaw = float32(int16(binary.LittleEndian.Uint16(data[28:30]))) / 10.0

	bitpack1 := data[30]
	o.FlightMode = newFlightMode(bitfield.Extract(bitpack1, 0x7F))
	o.RcOutcontrol = bitfield.Bool(bitpack1, 0x80)

	o.AppCommand = newAppCommand(data[31])

	bitpack2 := data[32]
	o.CanIocWork = bitfield.Bool(bitpack2, 0x01)
	o.GroundOrSky = newGroundOrSky(bitfield.Extract(bitpack2, 0x06))
	o.IsMotorUp = bitfield.Bool(bitpack2, 0x08)
	o.IsSwaveWork = bitfield.Bool(bitpack2, 0x10)
	o.GoHomeStatus = newGoHomeStatus(bitfield.Extract(bitpack2, 0xE0))

	bitpack3 := data[33]
	o.IsVisionUsed = bitfield.Bool(bitpack3, 0x01)
	o.VoltageWarning = bitfield.Extract(bitpack3, 0x06)
	o.IsImuPreheated = bitfield.Bool(bitpack3, 0x10)
	o.ModeChannel = bitfield.Extract(bitpack3, 0x60)
	o.IsGpsValid = bitfield.Bool(bitpack3, 0x80)

	bitpack4 := data[34]
	o.IsCompassError = bitfield.Bool(bitpack4, 0x01)
	o.WaveError = bitfield.Bool(bitpack4, 0x02)
	o.GpsLevel = bitfield.Extract(bitpack4, 0x3C)
	o.BatteryType = newBatteryType(bitfield.Extract(bitpack4, 0xC0))

	bitpack5 := data[35]
	o.IsOutOfLimit = bitfield.Bool(bitpack5, 0x01)
	o.IsGoHomeHeightModified = bitfield.Bool(bitpack5, 0x02)
	o.IsPropellerCatapult = bitfield.Bool(bitpack5, 0x04)
	o.IsMotorBlocked = bitfield.Bool(bitpack5, 0x08)
	o.IsNotEnoughForce = bitfield.Bool(bitpack5, 0x10)
	o.IsBarometerDeadInAir = bitfield.Bool(bitpack5, 0x20)
	o.IsVibrating = bitfield.Bool(bitpack5, 0x40)
	o.IsAcceletorOverRange = bitfield.Bool(bitpack5, 0x80)

	o.GpsNum = data[36]
	o.FlightAction = newFlightAction(data[37])
	o.MotorStartFailedCause = newMotorStartFailedCause(data[38])

	bitpack6 := data[39]
	o.NonGpsCause = newNonGPSCause(bitfield.Extract(bitpack6, 0x0F))
	o.WaypointLimitMode = bitfield.Bool(bitpack6, 0x10)

	o.Battery = data[40]
	o.SWaveHeight = float32(data[41]) / 10.0
	o.FlyTime = float32(binary.LittleEndian.Uint16(data[42:44])) / 10.0
	o.MotorRevolution = data[44]
	// data[45:47] is an unused u16
	o.VersionC = data[47]

	pos := 48
	if version >= 2 && pos < len(data) {
		o.DroneType = newDroneType(data[pos])
		pos++
	}
	if version >= 3 && pos < len(data) {
		o.ImuInitFailReason = newImuInitFailReason(data[pos])
	}

	return o
}
