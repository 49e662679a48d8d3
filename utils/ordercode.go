package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateCode returns a secure random upper-case code of the given length,
// drawn from the base32 alphabet (A-Z, 2-7).
func GenerateCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := codeEncoding.EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// PartnerOrderID is prefix followed by a 10 character random code.
func PartnerOrderID(prefix string) (string, error) {
	code, err := GenerateCode(10)
	if err != nil {
		return "", err
	}
	return prefix + code, nil
}
