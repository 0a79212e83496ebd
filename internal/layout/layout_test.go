package layout

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kevincowleys/dji-log-parser/internal/streamdecoder"
)

func TestParsePrefixOffsets(t *testing.T) {
	buf := make([]byte, PrefixSize)
	binary.LittleEndian.PutUint64(buf[0:8], 5000)
	buf[10] = 14 // version

	p, err := ParsePrefix(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ParsePrefix: %v", err)
	}
	if p.Version != 14 || p.DetailOffset != 5000 {
		t.Fatalf("unexpected prefix: %+v", p)
	}
	if got := p.RecordsOffset(); got != 5000 {
		t.Errorf("RecordsOffset() = %d, want 5000", got)
	}
	if got := p.RecordsEndOffset(9000); got != 9000 {
		t.Errorf("RecordsEndOffset() = %d, want 9000", got)
	}
}

func TestPrefixRecordsOffsetBands(t *testing.T) {
	cases := []struct {
		version byte
		detail  uint64
		want    uint64
	}{
		{5, 999, OldPrefixSize},
		{8, 999, PrefixSize},
		{12, 999, PrefixSize + 436},
		{14, 777, 777},
	}
	for _, c := range cases {
		p := Prefix{Version: c.version, DetailOffset: c.detail}
		if got := p.RecordsOffset(); got != c.want {
			t.Errorf("version %d: RecordsOffset() = %d, want %d", c.version, got, c.want)
		}
	}
}

func TestProductTypeBatteryTables(t *testing.T) {
	m3 := ParseProductType(77) // Mavic3
	if m3.String() != "Mavic3" {
		t.Fatalf("unexpected name: %s", m3.String())
	}
	if got := m3.BatteryCellNum(); got != 4 {
		t.Errorf("BatteryCellNum() = %d, want 4", got)
	}
	if got := m3.BatteryNum(); got != 1 {
		t.Errorf("BatteryNum() = %d, want 1", got)
	}

	unknown := ParseProductType(200)
	if unknown.String() != "Unknown" {
		t.Errorf("expected Unknown, got %s", unknown.String())
	}
	if got := unknown.BatteryCellNum(); got != 4 {
		t.Errorf("default BatteryCellNum() = %d, want 4", got)
	}
}

func TestParseBatterySNBCD(t *testing.T) {
	inspire1 := ParseProductType(1)
	// low nibbles 1,2,3 reversed -> "321", no leading zeros to trim
	sn := ParseBatterySN(inspire1, []byte{0x01, 0x02, 0x03})
	if sn != "321" {
		t.Errorf("ParseBatterySN() = %q, want %q", sn, "321")
	}

	mavic := ParseProductType(13)
	plain := ParseBatterySN(mavic, append([]byte("ABC123"), 0, 0))
	if plain != "ABC123" {
		t.Errorf("ParseBatterySN() = %q, want %q", plain, "ABC123")
	}
}

func TestParseDetailsSequentialLayout(t *testing.T) {
	buf := make([]byte, 1024)

	// Only spot-check that the two leading string fields decode from their
	// sequential offsets for a >5 version.
	putString(buf, 0, "sub")
	putString(buf, 20, "street")
	d := ParseDetails(buf, 0, 14)
	if d.SubStreet != "sub" || d.Street != "street" {
		t.Fatalf("unexpected prefix strings: %+v", d)
	}
}

func putString(buf []byte, offset int, s string) {
	copy(buf[offset:], s)
}

func TestParseAuxiliaryVersion(t *testing.T) {
	var payload bytes.Buffer
	payload.WriteByte(1) // magic: version
	body := make([]byte, 3)
	binary.LittleEndian.PutUint16(body[0:2], 14)
	body[2] = 3 // DJIFly
	size := make([]byte, 2)
	binary.LittleEndian.PutUint16(size, uint16(len(body)))
	payload.Write(size)
	payload.Write(body)

	aux, err := ParseAuxiliary(bytes.NewReader(payload.Bytes()))
	if err != nil {
		t.Fatalf("ParseAuxiliary: %v", err)
	}
	if aux.Kind != AuxiliaryKindVersion {
		t.Fatalf("expected version kind, got %v", aux.Kind)
	}
	if aux.Version.Version != 14 || aux.Version.Department.String() != "DJIFly" {
		t.Errorf("unexpected version auxiliary: %+v", aux.Version)
	}
}

func TestParseAuxiliaryInfoRoundTrip(t *testing.T) {
	// Build an Info payload: version_data, info_length+info_data, sig_length+sig_data,
	// then XOR-encode it with the same key construction NewXorDecoder uses (seed 0,
	// record type 0) so ParseAuxiliary's decode path recovers the plaintext.
	plain := []byte{9}
	plain = append(plain, le16(2)...)
	plain = append(plain, []byte("hi")...)
	plain = append(plain, le16(3)...)
	plain = append(plain, []byte("sig")...)

	encoded := xorEncodeLikeDecoder(t, plain)

	var payload bytes.Buffer
	payload.WriteByte(0)
	size := le16(uint16(len(encoded)))
	payload.Write(size)
	payload.Write(encoded)

	aux, err := ParseAuxiliary(bytes.NewReader(payload.Bytes()))
	if err != nil {
		t.Fatalf("ParseAuxiliary: %v", err)
	}
	if aux.Kind != AuxiliaryKindInfo {
		t.Fatalf("expected info kind, got %v", aux.Kind)
	}
	if aux.Info.VersionData != 9 {
		t.Errorf("VersionData = %d, want 9", aux.Info.VersionData)
	}
	if string(aux.Info.InfoData) != "hi" {
		t.Errorf("InfoData = %q, want %q", aux.Info.InfoData, "hi")
	}
	if string(aux.Info.SignatureData) != "sig" {
		t.Errorf("SignatureData = %q, want %q", aux.Info.SignatureData, "sig")
	}
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// xorEncodeLikeDecoder produces a seed-prefixed buffer that, when run through
// streamdecoder.NewXorDecoder with the same record type (0), decodes back to
// plain. Since the XOR cipher is its own inverse, encoding and decoding use
// the identical key-stream derivation.
func xorEncodeLikeDecoder(t *testing.T, plain []byte) []byte {
	t.Helper()

	const seed = 0
	prefixed := append([]byte{seed}, plain...)

	// Run the plaintext itself through the decoder; its output is the
	// ciphertext (see below).
	xr, err := streamdecoder.NewXorDecoder(bytes.NewReader(prefixed), 0)
	if err != nil {
		t.Fatalf("NewXorDecoder: %v", err)
	}
	out := make([]byte, len(plain))
	if _, err := xr.Read(out); err != nil {
		t.Fatalf("xor read: %v", err)
	}

	// XOR is symmetric: decoding plaintext through the same key stream
	// yields ciphertext, and decoding that ciphertext again yields plaintext
	// back. So "out" here is already the ciphertext for "plain" since the
	// keystream only depends on position and record type, not on content.
	return append([]byte{seed}, out...)
}
