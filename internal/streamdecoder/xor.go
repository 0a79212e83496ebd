// Package streamdecoder implements the two layered byte-source adapters used
// to read record payloads: an XOR stream cipher keyed from a per-record seed
// byte, and an AES-256-CBC block cipher layered on top of it for
// feature-encrypted records (version >= 13).
package streamdecoder

import (
	"encoding/binary"
	"hash/crc64"
	"io"
)

// magic is the multiplier used to derive the CRC64 seed value from the
// record's first byte. Matches the original implementation bit for bit.
const magic uint64 = 0x123456789ABCDEF0

var crc64Table = crc64.MakeTable(crc64.ISO)

// SeekReader is the capability every decoder layer both consumes and
// exposes: a readable, seekable byte source. Layers are stacked without any
// layer knowing how many others wrap the underlying buffer.
type SeekReader interface {
	io.Reader
	io.Seeker
}

// XorDecoder un-obfuscates record payloads encoded with the internal XOR
// scheme used from version 7 onward. It requires no external key material.
type XorDecoder struct {
	reader         SeekReader
	key            [8]byte
	startPosition  int64
	decodePosition int64
}

// NewXorDecoder consumes exactly one byte (the seed) from reader, derives the
// 8-byte XOR key from it and recordType, and returns a decoder ready to read
// the remaining obfuscated payload.
func NewXorDecoder(reader SeekReader, recordType byte) (*XorDecoder, error) {
	var seedBuf [1]byte
	if _, err := io.ReadFull(reader, seedBuf[:]); err != nil {
		return nil, err
	}
	seed := seedBuf[0]

	startPosition, err := reader.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	seedValue := seed + recordType // mod 256 via byte overflow
	var magicBytes [8]byte
	binary.LittleEndian.PutUint64(magicBytes[:], magic*uint64(seed))

	keyValue := crc64.Update(uint64(seedValue), crc64Table, magicBytes[:])
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], keyValue)

	return &XorDecoder{
		reader:        reader,
		key:           key,
		startPosition: startPosition,
	}, nil
}

// Read implements io.Reader, XOR-ing each byte read from the inner source
// with the key byte selected by the running decode position.
func (d *XorDecoder) Read(buf []byte) (int, error) {
	n, err := d.reader.Read(buf)
	for i := 0; i < n; i++ {
		buf[i] ^= d.key[(int(d.decodePosition)+i)%8]
	}
	d.decodePosition += int64(n)
	return n, err
}

// Seek implements io.Seeker. Only SeekStart (used by fixed-offset legacy
// Details fields) and SeekCurrent are supported, matching the original
// implementation.
func (d *XorDecoder) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		d.decodePosition = offset - d.startPosition
		return d.reader.Seek(offset, whence)
	case io.SeekCurrent:
		return d.reader.Seek(offset, whence)
	default:
		return 0, errUnsupportedSeek
	}
}

var errUnsupportedSeek = &unsupportedSeekError{}

type unsupportedSeekError struct{}

func (*unsupportedSeekError) Error() string { return "streamdecoder: unsupported seek whence" }
