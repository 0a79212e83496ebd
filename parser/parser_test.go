package parser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/kevincowleys/dji-log-parser/internal/dlperrors"
	"github.com/kevincowleys/dji-log-parser/internal/keychain"
	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/streamdecoder"
)

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// xorEncode produces the on-disk (seed-prefixed) ciphertext that
// layout.ParseAuxiliary's Info-variant decode path will recover back to
// plain. XOR is symmetric and content-independent (the key stream only
// depends on position and record type), so running plain through the
// decoder once yields the matching ciphertext.
func xorEncode(t *testing.T, plain []byte) []byte {
	t.Helper()
	const seed = 0
	prefixed := append([]byte{seed}, plain...)
	xr, err := streamdecoder.NewXorDecoder(bytes.NewReader(prefixed), 0)
	if err != nil {
		t.Fatalf("NewXorDecoder: %v", err)
	}
	out := make([]byte, len(plain))
	if _, err := xr.Read(out); err != nil {
		t.Fatalf("xor read: %v", err)
	}
	return append([]byte{seed}, out...)
}

// buildAuxiliaryInfoBlock wraps a short, XOR-obfuscated AuxiliaryInfo
// payload (a version byte and two empty length-prefixed fields) in its
// magic/size header.
func buildAuxiliaryInfoBlock(t *testing.T) []byte {
	t.Helper()
	plain := append([]byte{9}, le16(0)...)
	plain = append(plain, le16(0)...)
	encoded := xorEncode(t, plain)

	var block bytes.Buffer
	block.WriteByte(0) // magic: Info
	block.Write(le16(uint16(len(encoded))))
	block.Write(encoded)
	return block.Bytes()
}

// buildAuxiliaryVersionBlock wraps a plaintext (version, department) pair in
// its magic/size header.
func buildAuxiliaryVersionBlock(version uint16, department byte) []byte {
	payload := append(le16(version), department)
	var block bytes.Buffer
	block.WriteByte(1) // magic: Version
	block.Write(le16(uint16(len(payload))))
	block.Write(payload)
	return block.Bytes()
}

// buildVersion13Log assembles a minimal version>=13 container: a 100-byte
// Prefix, an Auxiliary Info block, an Auxiliary Version block, and no
// records (the raw detail_offset field points exactly past the two
// Auxiliary blocks, so no offset-recovery pass is triggered).
func buildVersion13Log(t *testing.T) []byte {
	t.Helper()
	info := buildAuxiliaryInfoBlock(t)
	ver := buildAuxiliaryVersionBlock(14, 3) // DJIFly

	prefix := make([]byte, layout.PrefixSize)
	binary.LittleEndian.PutUint64(prefix[0:8], uint64(layout.PrefixSize+len(info)+len(ver)))
	prefix[10] = 14 // version

	data := append([]byte{}, prefix...)
	data = append(data, info...)
	data = append(data, ver...)
	return data
}

// buildLegacyLog assembles a minimal version<13 container (records then
// Details, no Auxiliary wrapper, no records): a 100-byte Prefix whose
// detail_offset points directly at the end of the Prefix.
func buildLegacyLog(version byte) []byte {
	prefix := make([]byte, layout.PrefixSize)
	binary.LittleEndian.PutUint64(prefix[0:8], uint64(layout.PrefixSize))
	prefix[10] = version
	return prefix
}

func TestOpenLegacyVersionNoRecords(t *testing.T) {
	p, err := Open(buildLegacyLog(10))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Version != 10 {
		t.Fatalf("Version = %d, want 10", p.Version)
	}

	records, err := p.Records(nil)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Records() = %d entries, want 0", len(records))
	}

	frames, err := p.Frames(nil)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("Frames() = %d entries, want 0", len(frames))
	}
}

func TestOpenVersion13ParsesAuxiliaryHeader(t *testing.T) {
	p, err := Open(buildVersion13Log(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Version != 14 {
		t.Fatalf("Version = %d, want 14", p.Version)
	}
}

func TestRecordsRequiresKeychainAtVersion13(t *testing.T) {
	p, err := Open(buildVersion13Log(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := p.Records(nil); !errors.Is(err, dlperrors.ErrKeychainRequired) {
		t.Fatalf("Records(nil) error = %v, want ErrKeychainRequired", err)
	}

	records, err := p.Records([]keychain.Keychain{})
	if err != nil {
		t.Fatalf("Records with empty keychains: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Records() = %d entries, want 0", len(records))
	}
}

func TestKeychainsRequestReadsVersionAndDepartment(t *testing.T) {
	p, err := Open(buildVersion13Log(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	req, err := p.KeychainsRequest()
	if err != nil {
		t.Fatalf("KeychainsRequest: %v", err)
	}
	if req.Version != 14 {
		t.Errorf("Version = %d, want 14", req.Version)
	}
	if req.Department != 3 {
		t.Errorf("Department = %d, want 3 (DJIFly)", req.Department)
	}
	// No KeyStorage/Recover records in this fixture: the builder still
	// emits the trailing (empty) group it always keeps open.
	if len(req.KeychainArray) != 1 || len(req.KeychainArray[0]) != 0 {
		t.Errorf("KeychainArray = %+v, want one empty group", req.KeychainArray)
	}
}

func TestKeychainsRequestCustomParamsOverride(t *testing.T) {
	p, err := Open(buildVersion13Log(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	customVersion := uint16(99)
	customDept := layout.ParseDepartment(7) // DJIPilot
	req, err := p.KeychainsRequestWithCustomParams(&customDept, &customVersion)
	if err != nil {
		t.Fatalf("KeychainsRequestWithCustomParams: %v", err)
	}
	if req.Version != 99 {
		t.Errorf("Version = %d, want 99", req.Version)
	}
	if req.Department != 7 {
		t.Errorf("Department = %d, want 7 (DJIPilot)", req.Department)
	}
}

func TestKeychainsRequestBelowVersion13IsEmpty(t *testing.T) {
	p, err := Open(buildLegacyLog(10))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	req, err := p.KeychainsRequest()
	if err != nil {
		t.Fatalf("KeychainsRequest: %v", err)
	}
	if req.Version != 0 || req.Department != 0 || req.KeychainArray != nil {
		t.Errorf("expected zero-value Request for version<13, got %+v", req)
	}
}

func TestFetchKeychainsBelowVersion13SkipsNetwork(t *testing.T) {
	p, err := Open(buildLegacyLog(10))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	groups, err := p.FetchKeychains("unused-key")
	if err != nil {
		t.Fatalf("FetchKeychains: %v", err)
	}
	if groups != nil {
		t.Errorf("FetchKeychains() = %+v, want nil", groups)
	}
}
