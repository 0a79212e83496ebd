package record

import (
	"encoding/binary"
	"math"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
)

// Home is the periodic home-point/RTH-configuration record: where the
// aircraft considers "home", its current go-home settings, and the SD card
// state of the flight recorder itself.
type Home struct {
	Longitude float64 // degrees
	Latitude  float64 // degrees
	Altitude  float32 // meters

	IsHomeRecord               bool
	GoHomeMode                 GoHomeMode
	AircraftHeadDirection      byte
	IsDynamicHomePointEnabled  bool
	IsNearDistanceLimit        bool
	IsNearHeightLimit          bool
	IsMultipleModeOpen         bool
	HasGoHome                  bool

	CompassState     CompassCalibrationState
	IsCompassAdjust  bool
	IsBeginnerMode   bool
	IsIocOpen        bool
	IocMode          IOCMode

	GoHomeHeight               uint16
	IocCourseLockAngle         int16
	FlightRecordSdState        byte
	RecordSdCapacityPercent    byte
	RecordSdLeftTime           uint16
	CurrentFlightRecordIndex   uint16
	MaxAllowedHeight           float32 // only set for version >= 8
}

// ParseHome decodes one Home payload.
func ParseHome(data []byte, version byte) Home {
	var h Home
	h.Longitude = radToDeg(math.Float64frombits(binary.LittleEndian.Uint64(data[0:8])))
	h.Latitude = radToDeg(math.Float64frombits(binary.LittleEndian.Uint64(data[8:16])))
	h.Altitude = math.Float32frombits(binary.LittleEndian.Uint32(data[16:20])) / 10.0

	bitpack1 := data[20]
	h.IsHomeRecord = bitfield.Bool(bitpack1, 0x01)
	h.GoHomeMode = newGoHomeMode(bitfield.Bool(bitpack1, 0x02))
	h.AircraftHeadDirection = bitfield.Extract(bitpack1, 0x04)
	h.IsDynamicHomePointEnabled = bitfield.Bool(bitpack1, 0x08)
	h.IsNearDistanceLimit = bitfield.Bool(bitpack1, 0x10)
	h.IsNearHeightLimit = bitfield.Bool(bitpack1, 0x20)
	h.IsMultipleModeOpen = bitfield.Bool(bitpack1, 0x40)
	h.HasGoHome = bitfield.Bool(bitpack1, 0x80)

	bitpack2 := data[21]
	h.CompassState = newCompassCalibrationState(bitfield.Extract(bitpack2, 0x03))
	h.IsCompassAdjust = bitfield.Bool(bitpack2, 0x04)
	h.IsBeginnerMode = bitfield.Bool(bitpack2, 0x08)
	h.IsIocOpen = bitfield.Bool(bitpack2, 0x10)
	h.IocMode = newIOCMode(bitfield.Extract(bitpack2, 0xE0))

	h.GoHomeHeight = binary.LittleEndian.Uint16(data[22:24])
	h.IocCourseLockAngle = int16(binary.LittleEndian.Uint16(data[24:26]))
	h.FlightRecordSdState = data[26]
	h.RecordSdCapacityPercent = data[27]
	h.RecordSdLeftTime = binary.LittleEndian.Uint16(data[28:30])
	h.CurrentFlightRecordIndex = binary.LittleEndian.Uint16(data[30:32])

	if version >= 8 && len(data) >= 32+5+4 {
		// data[32:37] is an unused 5-byte gap
		h.MaxAllowedHeight = math.Float32frombits(binary.LittleEndian.Uint32(data[37:41]))
	}

	return h
}
