package record

import (
	"encoding/binary"
	"math"
)

// radToDeg converts the radian longitude/latitude fields several record
// types store on disk into degrees.
func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func float64FromLE(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
