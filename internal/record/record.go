// Package record decodes the DJI flight-log record stream: the repeating
// magic-byte/length/payload/terminator frames that make up the bulk of a
// log file. Payloads are raw up to version 6, XOR-obfuscated from version 7
// onward and, from version 13 onward, optionally feature-encrypted
// (AES-256-CBC) on top of that.
package record

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kevincowleys/dji-log-parser/internal/keychain"
	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/logger"
	"github.com/kevincowleys/dji-log-parser/internal/streamdecoder"
)

const endByte = 0xFF

// Kind identifies which of Record's type-specific fields is populated.
type Kind int

const (
	KindOSD Kind = iota + 1
	KindHome
	KindGimbal
	KindRC
	KindCustom
	KindDeform
	KindCenterBattery
	KindSmartBattery
	KindAppTip
	KindAppWarn
	KindRCGPS
	KindRecoverInfo
	KindAppGPS
	KindFirmware
	KindMCParams
	KindSmartBatteryGroup
	KindAppSeriousWarn
	KindCamera
	KindVirtualStick
	KindOFDM
	KindKeyStorage
	KindRecoverMarker
	KindComponentSerial
	KindJPEG
	KindUnknown
	KindInvalid
)

// Record is one decoded entry from the record stream. Exactly one
// type-specific field is populated, selected by Kind; this mirrors the
// magic-byte-tagged union the container format itself uses.
type Record struct {
	Kind Kind
	// RawType is the record's magic byte. Zero for JPEG and Invalid, which
	// carry no type byte of their own.
	RawType byte

	OSD               *OSD
	Home              *Home
	Gimbal            *Gimbal
	RC                *RC
	Custom            *Custom
	Deform            *Deform
	CenterBattery     *CenterBattery
	SmartBattery      *SmartBattery
	AppTip            *AppTip
	AppWarn           *AppWarn
	RCGPS             *RCGPS
	RecoverInfo       *RecoverInfo
	AppGPS            *AppGPS
	Firmware          *Firmware
	MCParams          *MCParams
	SmartBatteryGroup *SmartBatteryGroup
	AppSeriousWarn    *AppSeriousWarn
	Camera            *Camera
	VirtualStick      *VirtualStick
	OFDM              *OFDM
	KeyStorage        *KeyStorage
	RecoverMarker     *RecoverMarker
	ComponentSerial   *ComponentSerial

	JPEG    []byte
	Unknown []byte
	Invalid []byte
}

// IsKeychainBoundary reports whether this record closes the current
// keychain group (the magic=50 marker). Pass 1 closes the ciphertext group
// on it; pass 2 advances the keychain queue on it.
func (r Record) IsKeychainBoundary() bool {
	return r.Kind == KindRecoverMarker
}

// Reader decodes a stream of records starting at the caller's chosen offset
// and running up to end, using productType to resolve the Mavic Pro RC
// stick-remap quirk and keychain to decrypt feature-encrypted records.
// keychain is mutated in place as CBC IVs chain forward across records.
type Reader struct {
	r           io.ReadSeeker
	version     byte
	productType layout.ProductType
	keychain    keychain.Keychain
	end         int64
}

// NewReader builds a Reader over r, which must currently be positioned at
// the start of the record stream. end is the absolute offset (from the
// start of the underlying file) the stream ends at.
func NewReader(r io.ReadSeeker, version byte, productType layout.ProductType, kc keychain.Keychain, end int64) *Reader {
	if kc == nil {
		kc = keychain.New()
	}
	return &Reader{r: r, version: version, productType: productType, keychain: kc, end: end}
}

// Next decodes the next record, or returns io.EOF once the stream has
// reached end. A malformed record stream does not panic or hard-fail: the
// original implementation breaks out of the stream on the first read error,
// and Next mirrors that by returning io.EOF instead of propagating the error,
// leaving the caller with every record successfully decoded so far.
func (rr *Reader) Next() (Record, error) {
	pos, err := rr.r.Seek(0, io.SeekCurrent)
	if err != nil || pos >= rr.end {
		return Record{}, io.EOF
	}

	var magic [1]byte
	if _, err := io.ReadFull(rr.r, magic[:]); err != nil {
		return Record{}, io.EOF
	}
	recordType := magic[0]

	if recordType == 0xFF || recordType == 0xD8 {
		// Not a record magic byte at all: either an end marker or the start
		// of a JPEG thumbnail (0xFFD8 spans the preceding byte too, already
		// consumed) — rewind and hand off to the resync/JPEG path.
		if _, err := rr.r.Seek(pos, io.SeekStart); err != nil {
			return Record{}, io.EOF
		}
		return rr.readJPEGOrResync()
	}

	length, err := readRecordLength(rr.r, rr.version)
	if err != nil {
		return Record{}, io.EOF
	}
	if isKnownRecordType(recordType) && length == 0 {
		if _, err := rr.r.Seek(pos, io.SeekStart); err != nil {
			return Record{}, io.EOF
		}
		return rr.readJPEGOrResync()
	}

	payload := make([]byte, int(length))
	if _, err := io.ReadFull(rr.r, payload); err != nil {
		return Record{}, io.EOF
	}

	var terminator [1]byte
	if _, err := io.ReadFull(rr.r, terminator[:]); err != nil {
		return Record{}, io.EOF
	}
	if terminator[0] != endByte {
		if _, err := rr.r.Seek(pos, io.SeekStart); err != nil {
			return Record{}, io.EOF
		}
		return rr.readJPEGOrResync()
	}

	plaintext, err := decodePayload(payload, recordType, rr.version, rr.keychain)
	if err != nil {
		plaintext = payload
	}

	return rr.parseRecord(recordType, plaintext), nil
}

func (rr *Reader) parseRecord(recordType byte, data []byte) Record {
	switch recordType {
	case 1:
		v := ParseOSD(data, rr.version)
		return Record{Kind: KindOSD, RawType: recordType, OSD: &v}
	case 2:
		v := ParseHome(data, rr.version)
		return Record{Kind: KindHome, RawType: recordType, Home: &v}
	case 3:
		v := ParseGimbal(data, rr.version)
		return Record{Kind: KindGimbal, RawType: recordType, Gimbal: &v}
	case 4:
		v := ParseRC(data, rr.version, rr.productType)
		return Record{Kind: KindRC, RawType: recordType, RC: &v}
	case 5:
		v := ParseCustom(data)
		return Record{Kind: KindCustom, RawType: recordType, Custom: &v}
	case 6:
		v := ParseDeform(data)
		return Record{Kind: KindDeform, RawType: recordType, Deform: &v}
	case 7:
		v := ParseCenterBattery(data, rr.version)
		return Record{Kind: KindCenterBattery, RawType: recordType, CenterBattery: &v}
	case 8:
		v := ParseSmartBattery(data)
		return Record{Kind: KindSmartBattery, RawType: recordType, SmartBattery: &v}
	case 9:
		v := ParseAppTip(data)
		return Record{Kind: KindAppTip, RawType: recordType, AppTip: &v}
	case 10:
		v := ParseAppWarn(data)
		return Record{Kind: KindAppWarn, RawType: recordType, AppWarn: &v}
	case 11:
		v := ParseRCGPS(data)
		return Record{Kind: KindRCGPS, RawType: recordType, RCGPS: &v}
	case 13:
		v := ParseRecoverInfo(data, rr.version)
		return Record{Kind: KindRecoverInfo, RawType: recordType, RecoverInfo: &v}
	case 14:
		v := ParseAppGPS(data)
		return Record{Kind: KindAppGPS, RawType: recordType, AppGPS: &v}
	case 15:
		v := ParseFirmware(data)
		return Record{Kind: KindFirmware, RawType: recordType, Firmware: &v}
	case 19:
		v := ParseMCParams(data)
		return Record{Kind: KindMCParams, RawType: recordType, MCParams: &v}
	case 22:
		v := ParseSmartBatteryGroup(data)
		return Record{Kind: KindSmartBatteryGroup, RawType: recordType, SmartBatteryGroup: &v}
	case 24:
		v := ParseAppSeriousWarn(data)
		return Record{Kind: KindAppSeriousWarn, RawType: recordType, AppSeriousWarn: &v}
	case 25:
		v := ParseCamera(data)
		return Record{Kind: KindCamera, RawType: recordType, Camera: &v}
	case 33:
		v := ParseVirtualStick(data)
		return Record{Kind: KindVirtualStick, RawType: recordType, VirtualStick: &v}
	case 40:
		v := ParseComponentSerial(data)
		return Record{Kind: KindComponentSerial, RawType: recordType, ComponentSerial: &v}
	case 49:
		v := ParseOFDM(data)
		return Record{Kind: KindOFDM, RawType: recordType, OFDM: &v}
	case 50:
		v := RecoverMarker{Data: data}
		return Record{Kind: KindRecoverMarker, RawType: recordType, RecoverMarker: &v}
	case 56:
		v := ParseKeyStorage(data)
		return Record{Kind: KindKeyStorage, RawType: recordType, KeyStorage: &v}
	default:
		logger.Debug("record: unrecognized record type %d, carried as opaque Unknown", recordType)
		return Record{Kind: KindUnknown, RawType: recordType, Unknown: data}
	}
}

// readJPEGOrResync handles the two non-framed cases the record stream can
// hit: an embedded JPEG thumbnail (0xFFD8 ... 0xFFD9) or corrupt data, which
// is skipped byte by byte until the next recognizable record boundary.
func (rr *Reader) readJPEGOrResync() (Record, error) {
	var header [2]byte
	if _, err := io.ReadFull(rr.r, header[:]); err != nil {
		return Record{}, io.EOF
	}

	if header == [2]byte{0xFF, 0xD8} {
		var buf bytes.Buffer
		buf.Write(header[:])
		var b [1]byte
		for {
			if _, err := io.ReadFull(rr.r, b[:]); err != nil {
				return Record{}, io.EOF
			}
			buf.WriteByte(b[0])
			if buf.Len() >= 2 {
				tail := buf.Bytes()[buf.Len()-2:]
				if tail[0] == 0xFF && tail[1] == 0xD9 {
					break
				}
			}
		}
		return Record{Kind: KindJPEG, JPEG: buf.Bytes()}, nil
	}

	// Not a JPEG start: skip forward one byte at a time until the next 0xFF
	// (a record magic or an end marker), matching seek_to_next_record.
	skipped := []byte{header[0]}
	if _, err := rr.r.Seek(-1, io.SeekCurrent); err != nil {
		return Record{}, io.EOF
	}
	var b [1]byte
	for {
		if _, err := io.ReadFull(rr.r, b[:]); err != nil {
			return Record{}, io.EOF
		}
		if b[0] == 0xFF {
			if _, err := rr.r.Seek(-1, io.SeekCurrent); err != nil {
				return Record{}, io.EOF
			}
			break
		}
		skipped = append(skipped, b[0])
	}
	if len(skipped) == 0 {
		return Record{}, io.EOF
	}
	return Record{Kind: KindInvalid, Invalid: skipped}, nil
}

func isKnownRecordType(recordType byte) bool {
	switch recordType {
	case 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 14, 15, 19, 22, 24, 25, 33, 40, 49, 50, 56:
		return true
	default:
		return false
	}
}

func readRecordLength(r io.Reader, version byte) (uint16, error) {
	if version <= 6 {
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return uint16(b[0]), nil
	}
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// decodePayload reverses the per-record obfuscation/encryption layer: raw
// passthrough for version<=6, XOR-only for 7<=version<=12, and XOR followed
// by keychain-resolved AES-256-CBC for version>=13 records whose
// FeaturePoint isn't PlaintextFeature. A missing keychain entry for a
// feature-encrypted record falls back to XOR-only output rather than
// failing the whole stream, matching the original decoder's behavior.
func decodePayload(payload []byte, recordType byte, version byte, kc keychain.Keychain) ([]byte, error) {
	switch {
	case version <= 6:
		return payload, nil
	case version <= 12:
		return xorDecodeAll(payload, recordType)
	default:
		fp := keychain.FromRecordType(recordType, version)
		if fp == keychain.PlaintextFeature {
			return xorDecodeAll(payload, recordType)
		}
		entry, ok := kc.Get(fp)
		if !ok {
			return xorDecodeAll(payload, recordType)
		}
		return decodeFeatureEncrypted(payload, recordType, fp, entry, kc)
	}
}

func xorDecodeAll(payload []byte, recordType byte) ([]byte, error) {
	xr, err := streamdecoder.NewXorDecoder(bytes.NewReader(payload), recordType)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	out := make([]byte, len(payload)-1)
	n, _ := xr.Read(out)
	return out[:n], nil
}

func decodeFeatureEncrypted(payload []byte, recordType byte, fp keychain.FeaturePoint, entry keychain.Entry, kc keychain.Keychain) ([]byte, error) {
	xr, err := streamdecoder.NewXorDecoder(bytes.NewReader(payload), recordType)
	if err != nil {
		return xorDecodeAll(payload, recordType)
	}
	size := len(payload) - 2
	if size < 0 {
		size = 0
	}
	aes, err := streamdecoder.NewAesDecoder(xr, entry.IV, entry.Key, size)
	if err != nil {
		return xorDecodeAll(payload, recordType)
	}
	kc.Set(fp, keychain.Entry{IV: aes.NextIV, Key: entry.Key})

	plaintext := make([]byte, size)
	_, _ = aes.Read(plaintext)
	return plaintext, nil
}

// ReadAll decodes every record between the reader's current position and
// end, stopping (without error) at the first malformed record, matching
// the original implementation's tolerant stream handling.
func ReadAll(r io.ReadSeeker, version byte, productType layout.ProductType, kc keychain.Keychain, end int64) ([]Record, error) {
	rr := NewReader(r, version, productType, kc, end)
	var records []Record
	for {
		rec, err := rr.Next()
		if err != nil {
			if err == io.EOF {
				return records, nil
			}
			return records, fmt.Errorf("record: %w", err)
		}
		records = append(records, rec)
	}
}
