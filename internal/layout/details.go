package layout

import (
	"strings"
	"time"
)

// Details carries the human-readable flight summary embedded in the log
// (location, distances, aircraft/battery/camera/RC serials). Field widths
// and byte offsets for the string fields shift between the pre- and
// post-version-6 layouts; ParseDetails reads both.
type Details struct {
	SubStreet           string
	Street               string
	City                 string
	Area                 string
	IsFavorite           bool
	IsNew                bool
	NeedsUpload          bool
	RecordLineCount      int32
	DetailInfoChecksum   int32
	StartTime            time.Time
	Longitude            float64 // degrees
	Latitude             float64 // degrees
	TotalDistance        float32 // meters
	TotalTime            float64 // seconds
	MaxHeight            float32 // meters
	MaxHorizontalSpeed   float32 // meters/second
	MaxVerticalSpeed     float32 // meters/second
	CaptureNum           int32
	VideoTime            int64
	MomentPicImageBufferLen       [4]int32
	MomentPicShrinkImageBufferLen [4]int32
	MomentPicLongitude   [4]float64 // degrees
	MomentPicLatitude    [4]float64 // degrees
	TakeOffAltitude      float32
	ProductType          ProductType
	AircraftName         string
	AircraftSN           string
	CameraSN             string
	RcSN                 string
	BatterySN            string
	AppPlatform          Platform
	AppVersion           string
}

// trimCString trims a fixed-width, NUL-padded byte field down to its
// printable prefix.
func trimCString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

// timeFromMillis converts a signed millisecond Unix timestamp, as stored in
// the log, to a UTC time.Time.
func timeFromMillis(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*1_000_000).UTC()
}

// ProductType identifies the aircraft model that produced the log. Values
// not recognized below decode with an empty name (String reports "Unknown")
// while preserving the
// raw byte for round-tripping and diagnostics.
type ProductType struct {
	name string
	raw  byte
}

func (p ProductType) String() string {
	if p.name == "" {
		return "Unknown"
	}
	return p.name
}

// Raw returns the on-disk product type byte.
func (p ProductType) Raw() byte { return p.raw }

var productTypeNames = map[byte]string{
	0:   "None",
	1:   "Inspire1",
	2:   "Phantom3Standard",
	3:   "Phantom3Advanced",
	4:   "Phantom3Pro",
	5:   "OSMO",
	6:   "Matrice100",
	7:   "Phantom4",
	8:   "LB2",
	9:   "Inspire1Pro",
	10:  "A3",
	11:  "Matrice600",
	12:  "Phantom34K",
	13:  "MavicPro",
	14:  "ZenmuseXT",
	15:  "Inspire1RAW",
	16:  "A2",
	17:  "Inspire2",
	18:  "OSMOPro",
	19:  "OSMORaw",
	20:  "OSMOPlus",
	21:  "Mavic",
	22:  "OSMOMobile",
	23:  "OrangeCV600",
	24:  "Phantom4Pro",
	25:  "N3FC",
	26:  "Spark",
	27:  "Matrice600Pro",
	28:  "Phantom4Advanced",
	29:  "Phantom3SE",
	30:  "AG405",
	31:  "Matrice200",
	33:  "Matrice210",
	34:  "Matrice210RTK",
	38:  "MavicAir",
	42:  "Mavic2",
	44:  "Phantom4ProV2",
	46:  "Phantom4RTK",
	57:  "Phantom4Multispectral",
	58:  "Mavic2Enterprise",
	59:  "MavicMini",
	60:  "Matrice200V2",
	61:  "Matrice210V2",
	62:  "Matrice210RTKV2",
	67:  "MavicAir2",
	70:  "Matrice300RTK",
	73:  "FPV",
	75:  "MavicAir2S",
	76:  "Mini2",
	77:  "Mavic3",
	96:  "MiniSE",
	103: "Mini3Pro",
	111: "Mavic3Pro",
	113: "Mini2SE",
	116: "Matrice30",
	118: "Mavic3Enterprise",
	121: "Avata",
	126: "Mini4Pro",
	152: "Avata2",
	170: "Matrice350RTK",
}

// ParseProductType decodes the on-disk product type byte.
func ParseProductType(b byte) ProductType {
	return ProductType{name: productTypeNames[b], raw: b}
}

var batteryCellNum = map[string]byte{
	"Inspire1": 6, "Phantom3Standard": 4, "Phantom3Advanced": 4, "Phantom3Pro": 4,
	"Matrice100": 6, "Phantom4": 4, "Inspire1Pro": 6, "Matrice600": 6,
	"Phantom34K": 4, "MavicPro": 3, "Inspire1RAW": 6, "Inspire2": 6,
	"Mavic": 3, "Phantom4Pro": 4, "Spark": 3, "Matrice600Pro": 6,
	"Phantom4Advanced": 4, "Phantom3SE": 4, "Matrice200": 6, "Matrice210": 6,
	"Matrice210RTK": 6, "MavicAir": 3, "Mavic2": 4, "Phantom4ProV2": 4,
	"Phantom4RTK": 4, "Phantom4Multispectral": 4, "Mavic2Enterprise": 4,
	"MavicMini": 2, "Matrice200V2": 6, "Matrice210V2": 6, "Matrice210RTKV2": 6,
	"MavicAir2": 3, "Matrice300RTK": 12, "FPV": 6, "MavicAir2S": 3,
	"Mini2": 2, "Mavic3": 4, "MiniSE": 2, "Mini3Pro": 2, "Mavic3Pro": 4,
	"Mini2SE": 2, "Matrice30": 6, "Mavic3Enterprise": 4, "Avata": 5,
	"Mini4Pro": 2, "Avata2": 4, "Matrice350RTK": 12,
}

var batteryNum = map[string]byte{
	"Inspire1": 2, "Phantom3Standard": 1, "Phantom3Advanced": 1, "Phantom3Pro": 1,
	"Matrice100": 2, "Phantom4": 1, "Inspire1Pro": 2, "Matrice600": 6,
	"Phantom34K": 1, "MavicPro": 1, "Inspire1RAW": 2, "Inspire2": 2,
	"Mavic": 1, "Phantom4Pro": 1, "Spark": 1, "Matrice600Pro": 6,
	"Phantom4Advanced": 1, "Phantom3SE": 1, "Matrice200": 2, "Matrice210": 2,
	"Matrice210RTK": 2, "MavicAir": 1, "Mavic2": 1, "Phantom4ProV2": 1,
	"Phantom4RTK": 1, "Phantom4Multispectral": 1, "Mavic2Enterprise": 1,
	"MavicMini": 1, "Matrice200V2": 2, "Matrice210V2": 2, "Matrice210RTKV2": 2,
	"MavicAir2": 1, "Matrice300RTK": 2, "FPV": 1, "MavicAir2S": 1,
	"Mini2": 1, "Mavic3": 1, "MiniSE": 1, "Mini3Pro": 1, "Mavic3Pro": 1,
	"Mini2SE": 1, "Matrice30": 2, "Mavic3Enterprise": 1, "Avata": 1,
	"Mini4Pro": 1, "Avata2": 1, "Matrice350RTK": 2,
}

// BatteryCellNum returns the number of series cells in the aircraft's
// battery pack, defaulting to 4 for unrecognized or unlisted product types.
func (p ProductType) BatteryCellNum() byte {
	if n, ok := batteryCellNum[p.name]; ok {
		return n
	}
	return 4
}

// BatteryNum returns the number of battery packs the aircraft carries,
// defaulting to 1 for unrecognized or unlisted product types.
func (p ProductType) BatteryNum() byte {
	if n, ok := batteryNum[p.name]; ok {
		return n
	}
	return 1
}

// Platform identifies the controlling app's host OS.
type Platform struct {
	name string
	raw  byte
}

func (p Platform) String() string {
	if p.name == "" {
		return "Unknown"
	}
	return p.name
}

func (p Platform) Raw() byte { return p.raw }

var platformNames = map[byte]string{
	1: "IOS", 2: "Android", 6: "DJIFly", 10: "Windows", 11: "Mac", 12: "Linux",
}

// ParsePlatform decodes the on-disk app-platform byte.
func ParsePlatform(b byte) Platform {
	return Platform{name: platformNames[b], raw: b}
}

// ParseBatterySN decodes the battery serial number, choosing the method by
// product type: Inspire1 variants store it as reversed BCD nibbles, every
// other product stores it as a plain NUL-terminated string.
func ParseBatterySN(pt ProductType, buf []byte) string {
	switch pt.name {
	case "Inspire1", "Inspire1Pro", "Inspire1RAW":
		return decodeReversedBCDBatterySN(buf)
	default:
		return trimCString(buf)
	}
}

// decodeReversedBCDBatterySN takes each byte's low nibble as a decimal
// digit, reverses the digit sequence, and drops leading zero digits.
func decodeReversedBCDBatterySN(buf []byte) string {
	digits := make([]byte, len(buf))
	for i, b := range buf {
		digits[i] = (b & 0xF) + '0'
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return strings.TrimLeft(string(digits), "0")
}
