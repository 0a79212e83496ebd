package record

import (
	"encoding/binary"
	"math"
	"time"
)

// Custom carries the app-computed horizontal speed/distance/timestamp shown
// in the flight-summary overlay; the two leading camera/video shutter flags
// aren't surfaced (the original marks them temp/unused too).
type Custom struct {
	HSpeed         float32
	Distance       float32
	UpdateTimeStamp time.Time
}

// ParseCustom decodes one Custom payload.
func ParseCustom(data []byte) Custom {
	var c Custom
	c.HSpeed = math.Float32frombits(binary.LittleEndian.Uint32(data[2:6]))
	c.Distance = math.Float32frombits(binary.LittleEndian.Uint32(data[6:10]))
	ms := int64(binary.LittleEndian.Uint64(data[10:18]))
	c.UpdateTimeStamp = timeFromMillisRecord(ms)
	return c
}

func timeFromMillisRecord(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*1_000_000).UTC()
}
