package record

import (
	"encoding/binary"
	"math"
)

// RCGPS is the remote controller's own GPS fix and fix-time, independent of
// the aircraft's OSD position.
type RCGPS struct {
	Hour      byte
	Minute    byte
	Second    byte
	Year      uint16
	Month     byte
	Day       byte
	Latitude  int32
	Longitude int32
	SpeedX    int32
	SpeedY    int32
	GPSNum    byte
	Accuracy  float32
	ValidData uint16
}

// ParseRCGPS decodes one RCGPS payload.
func ParseRCGPS(data []byte) RCGPS {
	var r RCGPS
	r.Hour = data[0]
	r.Minute = data[1]
	r.Second = data[2]
	r.Year = binary.LittleEndian.Uint16(data[3:5])
	r.Month = data[5]
	r.Day = data[6]
	r.Latitude = int32(binary.LittleEndian.Uint32(data[7:11]))
	r.Longitude = int32(binary.LittleEndian.Uint32(data[11:15]))
	r.SpeedX = int32(binary.LittleEndian.Uint32(data[15:19]))
	r.SpeedY = int32(binary.LittleEndian.Uint32(data[19:23]))
	r.GPSNum = data[23]
	r.Accuracy = math.Float32frombits(binary.LittleEndian.Uint32(data[24:28]))
	r.ValidData = binary.LittleEndian.Uint16(data[28:30])
	return r
}
