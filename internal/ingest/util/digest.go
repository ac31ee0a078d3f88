package util

import (
	"crypto/md5"
	"encoding/hex"
)

// Digest produces the deterministic hex digest used to mint stable IDs for
// providers whose feeds carry no usable native ID.
func Digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
