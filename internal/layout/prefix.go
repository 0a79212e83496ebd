// Package layout implements the container header types: Prefix, Details, and
// Auxiliary, plus the version-gated offset arithmetic that locates the
// Details block and the records stream within a log file.
package layout

import (
	"encoding/binary"
	"io"
)

// Size constants for the two historical Prefix layouts: the header is
// OldPrefixSize bytes for version < 6 logs (whose records stream begins right
// after it) and PrefixSize bytes otherwise. ParsePrefix always reads
// PrefixSize bytes (the caller pads short buffers with zeros) and uses only
// bytes 0..10, which both layouts share.
const (
	OldPrefixSize = 12
	PrefixSize    = 100
)

// Prefix is the fixed-size container header. DetailOffset is the raw
// detail_offset field: for version < 12 it is the absolute byte offset of the
// Details block, which also ends the records stream. From version 12 on the
// Details block (12) or the first Auxiliary block (>= 13) sits at PrefixSize,
// and for version >= 13 DetailOffset is the records-stream offset (recovered
// past the second Auxiliary block when it is zero).
type Prefix struct {
	DetailOffset uint64
	Version      byte
}

// ParsePrefix reads the 100-byte Prefix header from r. Callers must ensure r
// is padded to at least PrefixSize bytes (short/legacy files may be shorter
// on disk; pad with zeros first).
func ParsePrefix(r io.Reader) (Prefix, error) {
	var buf [PrefixSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Prefix{}, err
	}

	return Prefix{
		DetailOffset: binary.LittleEndian.Uint64(buf[0:8]),
		// buf[8:10] is detail_length, which is not used.
		Version: buf[10],
		// buf[11] is an unknown reserved byte; buf[12:20] is the encrypt
		// magic version; buf[20:100] is reserved padding. None are surfaced.
	}, nil
}

// RecoverDetailOffset overrides DetailOffset once the real offset has been
// discovered by scanning past the second Auxiliary block (version >= 13,
// when the container doesn't carry an explicit records offset).
func (p *Prefix) RecoverDetailOffset(offset uint64) {
	p.DetailOffset = offset
}

// ResolvedDetailOffset returns the offset at which Details (or the first
// Auxiliary) begins: the raw field for version < 12, else the fixed
// PrefixSize boundary.
func (p Prefix) ResolvedDetailOffset() uint64 {
	if p.Version < 12 {
		return p.DetailOffset
	}
	return PrefixSize
}

// RecordsOffset returns the absolute byte offset at which the records stream
// begins, per the version-banded policy in spec.md §4.7.
func (p Prefix) RecordsOffset() uint64 {
	switch {
	case p.Version < 6:
		return OldPrefixSize
	case p.Version < 12:
		return PrefixSize
	case p.Version == 12:
		return PrefixSize + 436 // inline Details size for this one version
	default:
		return p.DetailOffset
	}
}

// RecordsEndOffset returns the absolute byte offset at which the records
// stream ends, given the total file size.
func (p Prefix) RecordsEndOffset(fileSize uint64) uint64 {
	if p.Version < 12 {
		return p.DetailOffset
	}
	return fileSize
}
