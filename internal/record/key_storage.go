package record

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/kevincowleys/dji-log-parser/internal/keychain"
)

// KeyStorage carries one ciphertext blob awaiting keychain resolution,
// tagged with the FeaturePoint it belongs to. Pass 1 collects these (base64
// encoded) into the keychain HTTP request; they carry no directly usable
// plaintext on their own.
type KeyStorage struct {
	FeaturePoint keychain.FeaturePoint
	Data         []byte
}

// ParseKeyStorage decodes one KeyStorage payload: a FeaturePoint byte, a
// u16 data length, then the ciphertext itself.
func ParseKeyStorage(data []byte) KeyStorage {
	fp := keychain.FeaturePoint(data[0])
	length := binary.LittleEndian.Uint16(data[1:3])
	end := 3 + int(length)
	if end > len(data) {
		end = len(data)
	}
	return KeyStorage{FeaturePoint: fp, Data: data[3:end]}
}

// Base64Ciphertext returns the data field base64-encoded, the form the
// keychain HTTP request body expects.
func (k KeyStorage) Base64Ciphertext() string {
	return base64.StdEncoding.EncodeToString(k.Data)
}
