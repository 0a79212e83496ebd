package layout

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kevincowleys/dji-log-parser/internal/streamdecoder"
)

// Auxiliary is one of the two small blocks (Info, then Version) that follow
// the Prefix in version >= 13 containers, discriminated by a leading magic
// byte. Only one variant is populated; check Kind to see which.
type Auxiliary struct {
	Kind    AuxiliaryKind
	Info    AuxiliaryInfo
	Version AuxiliaryVersion
}

type AuxiliaryKind int

const (
	AuxiliaryKindInfo AuxiliaryKind = iota
	AuxiliaryKindVersion
)

// AuxiliaryInfo carries the XOR-obfuscated info/signature payload (record
// type 0, seeded by the payload's first byte) embedded in the first
// Auxiliary block.
type AuxiliaryInfo struct {
	VersionData   byte
	InfoData      []byte
	SignatureData []byte
}

// AuxiliaryVersion carries the plaintext version/department pair used to
// seed the keychain request.
type AuxiliaryVersion struct {
	Version    uint16
	Department Department
}

// Department identifies the app family that produced the log, as reported
// in the second Auxiliary block.
type Department struct {
	name string
	raw  byte
}

func (d Department) String() string {
	if d.name == "" {
		return "Unknown"
	}
	return d.name
}

func (d Department) Raw() byte { return d.raw }

var departmentNames = map[byte]string{
	1: "SDK", 2: "DJIGO", 3: "DJIFly", 4: "AgriculturalMachinery",
	5: "Terra", 6: "DJIGlasses", 7: "DJIPilot", 8: "GSPro",
}

func ParseDepartment(b byte) Department {
	return Department{name: departmentNames[b], raw: b}
}

// ParseAuxiliary reads one magic-tagged, length-prefixed Auxiliary block
// from r: a 1-byte discriminant, a little-endian u16 byte length, then the
// payload itself (XOR-decoded for the Info variant, plain for Version).
func ParseAuxiliary(r io.Reader) (Auxiliary, error) {
	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Auxiliary{}, fmt.Errorf("layout: read auxiliary header: %w", err)
	}

	magic := header[0]
	size := binary.LittleEndian.Uint16(header[1:3])

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Auxiliary{}, fmt.Errorf("layout: read auxiliary payload: %w", err)
	}

	switch magic {
	case 0:
		info, err := parseAuxiliaryInfo(payload)
		if err != nil {
			return Auxiliary{}, err
		}
		return Auxiliary{Kind: AuxiliaryKindInfo, Info: info}, nil
	case 1:
		if len(payload) < 3 {
			return Auxiliary{}, fmt.Errorf("layout: auxiliary version payload too short")
		}
		return Auxiliary{
			Kind: AuxiliaryKindVersion,
			Version: AuxiliaryVersion{
				Version:    binary.LittleEndian.Uint16(payload[0:2]),
				Department: ParseDepartment(payload[2]),
			},
		}, nil
	default:
		return Auxiliary{}, fmt.Errorf("layout: unknown auxiliary magic %d", magic)
	}
}

func parseAuxiliaryInfo(payload []byte) (AuxiliaryInfo, error) {
	seekReader := bytes.NewReader(payload)
	xr, err := streamdecoder.NewXorDecoder(seekReader, 0)
	if err != nil {
		return AuxiliaryInfo{}, fmt.Errorf("layout: auxiliary info xor setup: %w", err)
	}

	decoded, err := io.ReadAll(xr)
	if err != nil {
		return AuxiliaryInfo{}, fmt.Errorf("layout: auxiliary info xor read: %w", err)
	}

	if len(decoded) < 1 {
		return AuxiliaryInfo{}, fmt.Errorf("layout: auxiliary info payload empty")
	}

	cur := 0
	versionData := decoded[cur]
	cur++

	if cur+2 > len(decoded) {
		return AuxiliaryInfo{VersionData: versionData}, nil
	}
	infoLen := int(binary.LittleEndian.Uint16(decoded[cur : cur+2]))
	cur += 2
	end := cur + infoLen
	if end > len(decoded) {
		end = len(decoded)
	}
	infoData := decoded[cur:end]
	cur = end

	if cur+2 > len(decoded) {
		return AuxiliaryInfo{VersionData: versionData, InfoData: infoData}, nil
	}
	sigLen := int(binary.LittleEndian.Uint16(decoded[cur : cur+2]))
	cur += 2
	end = cur + sigLen
	if end > len(decoded) {
		end = len(decoded)
	}
	signatureData := decoded[cur:end]

	return AuxiliaryInfo{
		VersionData:   versionData,
		InfoData:      infoData,
		SignatureData: signatureData,
	}, nil
}
