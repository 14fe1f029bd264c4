package helpers

import (
	"crypto/rand"
	"fmt"
)

// GenOTPCode generates a secure random 6-digit recovery code as a
// zero-padded string. Digits only; the code is typed by end users.
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
