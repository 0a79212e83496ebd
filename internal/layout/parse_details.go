package layout

import (
	"encoding/binary"
	"math"
	"strconv"
)

// detailsCursor is a simple absolute-position reader over the in-memory
// Details block. The legacy (version<=5) layout reads several fields from
// fixed absolute file offsets rather than sequentially, so plain io.Reader
// sequencing doesn't fit; a byte-slice cursor with an explicit seekAbs lets
// ParseDetails follow the original's SeekFrom::Start/Current branches
// directly. Reads past the end of data are zero-filled rather than erroring,
// matching the tolerance the rest of the parser gives short/legacy files.
type detailsCursor struct {
	data []byte
	pos  int
}

func (c *detailsCursor) seekAbs(pos int) {
	c.pos = pos
}

func (c *detailsCursor) read(n int) []byte {
	buf := make([]byte, n)
	if c.pos >= 0 && c.pos < len(c.data) {
		end := c.pos + n
		if end > len(c.data) {
			end = len(c.data)
		}
		copy(buf, c.data[c.pos:end])
	}
	c.pos += n
	return buf
}

func (c *detailsCursor) u8() byte     { return c.read(1)[0] }
func (c *detailsCursor) i32() int32   { return int32(binary.LittleEndian.Uint32(c.read(4))) }
func (c *detailsCursor) i64() int64   { return int64(binary.LittleEndian.Uint64(c.read(8))) }
func (c *detailsCursor) f32() float32 { return math.Float32frombits(binary.LittleEndian.Uint32(c.read(4))) }
func (c *detailsCursor) f64() float64 { return math.Float64frombits(binary.LittleEndian.Uint64(c.read(8))) }

// ParseDetails decodes the Details block beginning at byte offset start
// within the whole log file (data). The legacy absolute-offset fields
// (take_off_altitude, product_type, aircraft_name/sn, camera_sn) only apply
// for version <= 5; later versions read everything sequentially from start.
func ParseDetails(data []byte, start int, version byte) Details {
	c := &detailsCursor{data: data, pos: start}

	var d Details
	d.SubStreet = trimCString(c.read(20))
	d.Street = trimCString(c.read(20))
	d.City = trimCString(c.read(20))
	d.Area = trimCString(c.read(20))
	d.IsFavorite = c.u8() != 0
	d.IsNew = c.u8() != 0
	d.NeedsUpload = c.u8() != 0
	d.RecordLineCount = c.i32()
	d.DetailInfoChecksum = c.i32()
	d.StartTime = timeFromMillis(c.i64())
	d.Longitude = c.f64()
	d.Latitude = c.f64()
	d.TotalDistance = c.f32()
	d.TotalTime = float64(c.i32()) / 1000.0
	d.MaxHeight = c.f32()
	d.MaxHorizontalSpeed = c.f32()
	d.MaxVerticalSpeed = c.f32()
	d.CaptureNum = c.i32()
	d.VideoTime = c.i64()
	for i := range d.MomentPicImageBufferLen {
		d.MomentPicImageBufferLen[i] = c.i32()
	}
	for i := range d.MomentPicShrinkImageBufferLen {
		d.MomentPicShrinkImageBufferLen[i] = c.i32()
	}
	for i := range d.MomentPicLongitude {
		d.MomentPicLongitude[i] = radToDeg(c.f64())
	}
	for i := range d.MomentPicLatitude {
		d.MomentPicLatitude[i] = radToDeg(c.f64())
	}
	c.i64()     // _analysis_offset, unused
	c.read(16)  // _user_api_center_id_md5, unused

	legacy := version <= 5

	if legacy {
		c.seekAbs(352)
	}
	d.TakeOffAltitude = c.f32()

	if legacy {
		c.seekAbs(277)
	}
	productTypeByte := c.u8()
	d.ProductType = ParseProductType(productTypeByte)

	c.i64() // _activation_timestamp, unused

	nameLen := 32
	if legacy {
		c.seekAbs(278)
		nameLen = 24
	}
	d.AircraftName = trimCString(c.read(nameLen))

	snLen := 16
	if legacy {
		c.seekAbs(267)
		snLen = 10
	}
	d.AircraftSN = trimCString(c.read(snLen))

	if legacy {
		c.seekAbs(318)
	}
	d.CameraSN = trimCString(c.read(snLen))

	d.RcSN = trimCString(c.read(snLen))

	batteryBuf := c.read(snLen)
	d.BatterySN = ParseBatterySN(d.ProductType, batteryBuf)

	d.AppPlatform = ParsePlatform(c.u8())

	ver := c.read(3)
	d.AppVersion = formatAppVersion(ver)

	return d
}

func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func formatAppVersion(b []byte) string {
	return strconv.Itoa(int(b[0])) + "." + strconv.Itoa(int(b[1])) + "." + strconv.Itoa(int(b[2]))
}
