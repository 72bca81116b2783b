// Package digest computes content fingerprints for files under a locked
// specification. Digests are computed over raw bytes, never decoded text,
// so line-ending differences between platforms change the digest.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Algorithm is the tag for the current digest algorithm.
const Algorithm = "sha256"

// ErrNotFound is returned when a file required for hashing does not exist.
var ErrNotFound = errors.New("file not found")

// Digest is an immutable content fingerprint in "<algorithm>:<hex>" form.
type Digest struct {
	Algorithm string // e.g. "sha256"
	Hex       string // lowercase hex, 64 chars for sha256
}

// String renders the digest in its canonical "<algorithm>:<hex>" form.
func (d Digest) String() string {
	return d.Algorithm + ":" + d.Hex
}

// HashFile computes the digest of a file's raw bytes.
// Returns ErrNotFound (wrapped with the path) if the file does not exist.
func HashFile(path string) (Digest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Digest{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Digest{}, err
	}
	return HashBytes(content), nil
}

// HashBytes computes the digest of a byte slice.
func HashBytes(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest{Algorithm: Algorithm, Hex: hex.EncodeToString(sum[:])}
}

// HashString computes the digest of a string's bytes.
func HashString(s string) Digest {
	return HashBytes([]byte(s))
}

// Parse splits a "<algorithm>:<hex>" string into a Digest.
func Parse(s string) (Digest, error) {
	algo, hexPart, ok := strings.Cut(s, ":")
	if !ok || algo == "" || hexPart == "" {
		return Digest{}, fmt.Errorf("malformed digest %q", s)
	}
	if _, err := hex.DecodeString(hexPart); err != nil {
		return Digest{}, fmt.Errorf("malformed digest %q: %w", s, err)
	}
	return Digest{Algorithm: algo, Hex: hexPart}, nil
}
