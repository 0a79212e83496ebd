package record

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/kevincowleys/dji-log-parser/internal/layout"
)

// RecoverInfo is the aircraft/component identity snapshot written once per
// log: serials, names, and firmware versions as they stood when the file
// was recovered/finalized.
type RecoverInfo struct {
	ProductType layout.ProductType
	AppVersion  string
	AircraftSN  string
	AircraftName string
	Timestamp    time.Time
	CameraSN     string
	RcSN         string
	BatterySN    string
}

// ParseRecoverInfo decodes one RecoverInfo payload.
func ParseRecoverInfo(data []byte, version byte) RecoverInfo {
	var r RecoverInfo
	r.ProductType = layout.ParseProductType(data[0])
	r.AppVersion = strings.Join([]string{
		strconv.Itoa(int(data[1])), strconv.Itoa(int(data[2])),
		strconv.Itoa(int(data[3])), strconv.Itoa(int(data[4])),
	}, ".")

	snLen := 16
	if version <= 7 {
		snLen = 10
	}

	pos := 5
	r.AircraftSN = trimNulString(data[pos : pos+snLen])
	pos += snLen
	r.AircraftName = trimNulString(data[pos : pos+32])
	pos += 32
	ts := int64(binary.LittleEndian.Uint64(data[pos : pos+8]))
	r.Timestamp = time.Unix(ts, 0).UTC()
	pos += 8
	r.CameraSN = trimNulString(data[pos : pos+snLen])
	pos += snLen
	r.RcSN = trimNulString(data[pos : pos+snLen])
	pos += snLen
	r.BatterySN = trimNulString(data[pos : pos+snLen])

	return r
}

func trimNulString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

// RecoverMarker is the magic=50 raw-byte record that delimits keychain
// groups: its content is ignored, only its position in the record stream
// matters (pass 1 closes the current ciphertext group on each occurrence,
// pass 2 advances the keychain queue on each occurrence).
type RecoverMarker struct {
	Data []byte
}
