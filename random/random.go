// Package random produces codes meant to be typed by people, such as
// coupon codes.
package random

import (
	crand "crypto/rand"
	"math/big"
)

// Ambiguous glyphs (0/O, 1/I) are left out.
const charset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Code returns length characters drawn uniformly from the charset.
func Code(length int) (string, error) {
	l := big.NewInt(int64(len(charset)))

	b := make([]byte, length)
	for i := range b {
		num, err := crand.Int(crand.Reader, l)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
