package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// SessionKeySize is the length of an AES-256 session key in bytes.
const SessionKeySize = 32

// ErrDecrypt is returned for every failure to open a sealed payload.
var ErrDecrypt = errors.New("cryptox: unable to decrypt payload")

// Sealed is an AES-256-CBC encrypted payload. Both fields are lowercase hex.
type Sealed struct {
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

// Seal serializes v to JSON and encrypts it under key with a fresh random IV.
func Seal(v any, key []byte) (Sealed, error) {
	if len(key) != SessionKeySize {
		return Sealed{}, fmt.Errorf("cryptox: session key must be %d bytes, got %d", SessionKeySize, len(key))
	}

	plain, err := json.Marshal(v)
	if err != nil {
		return Sealed{}, fmt.Errorf("cryptox: failed to marshal payload: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return Sealed{}, fmt.Errorf("cryptox: failed to create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return Sealed{}, fmt.Errorf("cryptox: failed to generate IV: %w", err)
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return Sealed{
		IV:         hex.EncodeToString(iv),
		Ciphertext: hex.EncodeToString(out),
	}, nil
}

// Open decrypts s under key and unmarshals the JSON payload into out.
// Any failure, including a JSON decoding error, is reported as ErrDecrypt.
func Open(s Sealed, key []byte, out any) error {
	plain, err := OpenRaw(s, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plain, out); err != nil {
		return ErrDecrypt
	}
	return nil
}

// OpenRaw decrypts s under key and returns the plaintext bytes.
func OpenRaw(s Sealed, key []byte) ([]byte, error) {
	if len(key) != SessionKeySize {
		return nil, ErrDecrypt
	}

	iv, err := hex.DecodeString(s.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, ErrDecrypt
	}
	data, err := hex.DecodeString(s.Ciphertext)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, ErrDecrypt
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecrypt
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	unpadded, ok := pkcs7Unpad(plain, aes.BlockSize)
	if !ok {
		return nil, ErrDecrypt
	}
	return unpadded, nil
}

// pkcs7Pad returns a new slice; b is never written to.
func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
