package vsix

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// DigestUnknown is returned by FileDigest when the target cannot be hashed.
const DigestUnknown = "unknown"

// digestChunkSize bounds memory use while hashing arbitrarily large files.
const digestChunkSize = 1 << 20

// SHA256File streams the file through SHA-256 and returns the lowercase hex
// digest.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for digest: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileDigest is the lenient form of SHA256File used while assembling
// reports: a missing or unreadable file yields DigestUnknown instead of an
// error.
func FileDigest(path string) string {
	sum, err := SHA256File(path)
	if err != nil {
		return DigestUnknown
	}
	return sum
}
