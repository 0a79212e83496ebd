package record

import (
	"encoding/binary"

	"github.com/kevincowleys/dji-log-parser/internal/bitfield"
	"github.com/kevincowleys/dji-log-parser/internal/layout"
)

// RC is the remote-control stick/button-state record.
type RC struct {
	Aileron uint16 // right stick, horizontal
	Elevator uint16 // right stick, vertical
	Throttle uint16 // left stick, vertical
	Rudder   uint16 // left stick, horizontal
	Gimbal   uint16

	WheelBtnDown    bool
	WheelOffset     byte
	WheelPolarity   byte
	WheelChange     byte

	TransformBtnReserve byte
	ReturnBtn           bool
	FlightModeSwitch    FlightModeSwitch
	TransformSwitch     byte

	CustomFunctionBtn4Down bool
	CustomFunctionBtn3Down bool
	CustomFunctionBtn2Down bool
	CustomFunctionBtn1Down bool
	PlaybackBtnDown        bool
	ShutterBtnDown         bool
	RecordBtnDown          bool

	Bandwidth           byte // only set for version >= 6
	GimbalControlEnable byte // only set for version >= 7
}

// ParseRC decodes one RC payload. productType selects the Mavic Pro's
// inverted flight-mode-switch mapping.
func ParseRC(data []byte, version byte, productType layout.ProductType) RC {
	var r RC
	r.Aileron = binary.LittleEndian.Uint16(data[0:2])
	r.Elevator = binary.LittleEndian.Uint16(data[2:4])
	r.Throttle = binary.LittleEndian.Uint16(data[4:6])
	r.Rudder = binary.LittleEndian.Uint16(data[6:8])
	r.Gimbal = binary.LittleEndian.Uint16(data[8:10])

	bitpack1 := data[10]
	r.WheelBtnDown = bitfield.Bool(bitpack1, 0x01)
	r.WheelOffset = bitfield.Extract(bitpack1, 0x3E)
	r.WheelPolarity = bitfield.Extract(bitpack1, 0x40)
	r.WheelChange = bitfield.Extract(bitpack1, 0x80)

	bitpack2 := data[11]
	r.TransformBtnReserve = bitfield.Extract(bitpack2, 0x07)
	r.ReturnBtn = bitfield.Bool(bitpack2, 0x08)
	r.FlightModeSwitch = newFlightModeSwitch(bitfield.Extract(bitpack2, 0x30), productType.String())
	r.TransformSwitch = bitfield.Extract(bitpack2, 0xC0)

	bitpack3 := data[12]
	r.CustomFunctionBtn4Down = bitfield.Bool(bitpack3, 0x02)
	r.CustomFunctionBtn3Down = bitfield.Bool(bitpack3, 0x04)
	r.CustomFunctionBtn2Down = bitfield.Bool(bitpack3, 0x08)
	r.CustomFunctionBtn1Down = bitfield.Bool(bitpack3, 0x10)
	r.PlaybackBtnDown = bitfield.Bool(bitpack3, 0x20)
	r.ShutterBtnDown = bitfield.Bool(bitpack3, 0x40)
	r.RecordBtnDown = bitfield.Bool(bitpack3, 0x80)

	pos := 13
	if version >= 6 && pos < len(data) {
		r.Bandwidth = data[pos]
		pos++
	}
	if version >= 7 && pos < len(data) {
		r.GimbalControlEnable = data[pos]
	}

	return r
}

// RCDisplayField is a reduced RC stick-state layout: five u16 values after a
// 7-byte leading gap. Reader dispatches no record type to it.
type RCDisplayField struct {
	Aileron  uint16
	Elevator uint16
	Throttle uint16
	Rudder   uint16
	Gimbal   uint16
}

// ParseRCDisplayField decodes one RCDisplayField payload.
func ParseRCDisplayField(data []byte) RCDisplayField {
	var r RCDisplayField
	r.Aileron = binary.LittleEndian.Uint16(data[7:9])
	r.Elevator = binary.LittleEndian.Uint16(data[9:11])
	r.Throttle = binary.LittleEndian.Uint16(data[11:13])
	r.Rudder = binary.LittleEndian.Uint16(data[13:15])
	r.Gimbal = binary.LittleEndian.Uint16(data[15:17])
	return r
}
