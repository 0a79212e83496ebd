package streamdecoder

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"io"
)

const aesBlockSize = aes.BlockSize // 16

// AesDecoder decrypts a buffered, length-bounded AES-256-CBC chunk with
// PKCS7 padding. It reads its entire ciphertext eagerly on construction (the
// size is always known up front — the caller derives it from the record's
// declared payload length) and
// serves the plaintext from an in-memory buffer thereafter.
//
// NextIV exposes the ciphertext's trailing block so the keychain store can
// chain it into the IV for the next record sharing the same FeaturePoint.
type AesDecoder struct {
	plaintext []byte
	position  int
	NextIV    []byte
}

// NewAesDecoder reads exactly size bytes from reader, decrypts them with
// AES-256-CBC/PKCS7 using key and iv, and returns a decoder over the
// resulting plaintext. If the ciphertext doesn't unpad cleanly (corrupt or
// misaligned data) the plaintext is treated as empty rather than failing —
// callers still get fixed-size zero reads past the end of the buffer.
func NewAesDecoder(reader io.Reader, iv, key []byte, size int) (*AesDecoder, error) {
	buffer := make([]byte, size)
	if _, err := io.ReadFull(reader, buffer); err != nil {
		return nil, err
	}

	nextIV := make([]byte, aesBlockSize)
	if len(buffer) >= aesBlockSize {
		copy(nextIV, buffer[len(buffer)-aesBlockSize:])
	}

	plaintext := decryptCBCPkcs7(buffer, key, iv)

	return &AesDecoder{
		plaintext: plaintext,
		NextIV:    nextIV,
	}, nil
}

// decryptCBCPkcs7 decrypts data in place (on a copy) with AES-256-CBC and
// strips PKCS7 padding. Any failure (bad key size, non-block-aligned data,
// invalid padding) yields an empty slice rather than an error: the original
// decoder tolerates undecryptable records by producing garbage-free empty
// content instead of aborting the whole stream.
func decryptCBCPkcs7(data, key, iv []byte) []byte {
	if len(data) == 0 || len(data)%aesBlockSize != 0 {
		return nil
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil
	}
	if len(iv) != aesBlockSize {
		return nil
	}

	out := make([]byte, len(data))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(out, data)

	return pkcs7Unpad(out)
}

// pkcs7Unpad removes PKCS7 padding from a decrypted buffer, returning nil if
// the padding is malformed.
func pkcs7Unpad(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aesBlockSize || padLen > len(data) {
		return nil
	}
	if !bytes.Equal(data[len(data)-padLen:], bytes.Repeat([]byte{byte(padLen)}, padLen)) {
		return nil
	}
	return data[:len(data)-padLen]
}

// Read serves bytes from the decrypted plaintext buffer. Reads past the end
// of the buffer yield zeros rather than io.EOF, matching the original
// implementation's behavior of always filling buf completely so fixed-size
// structured field reads never fail merely because padding removed bytes.
func (d *AesDecoder) Read(buf []byte) (int, error) {
	for i := range buf {
		if d.position < len(d.plaintext) {
			buf[i] = d.plaintext[d.position]
			d.position++
		} else {
			buf[i] = 0
		}
	}
	return len(buf), nil
}

// Seek implements io.Seeker over the in-memory plaintext buffer.
func (d *AesDecoder) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(d.position) + offset
	case io.SeekEnd:
		newPos = int64(len(d.plaintext)) + offset
	default:
		return 0, errUnsupportedSeek
	}
	if newPos < 0 {
		return 0, errUnsupportedSeek
	}
	d.position = int(newPos)
	return newPos, nil
}
