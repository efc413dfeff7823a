package vsix

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSHA256File(t *testing.T) {
	content := []byte("fake vsix content")
	path := writeTempFile(t, content)

	got, err := SHA256File(path)
	if err != nil {
		t.Fatalf("SHA256File failed: %v", err)
	}

	want := sha256.Sum256(content)
	if got != hex.EncodeToString(want[:]) {
		t.Errorf("digest = %s, want %s", got, hex.EncodeToString(want[:]))
	}
	if !hexDigest.MatchString(got) {
		t.Errorf("digest %q is not 64 lowercase hex characters", got)
	}
}

func TestSHA256FileDeterministic(t *testing.T) {
	path := writeTempFile(t, []byte("same content"))

	first, err := SHA256File(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := SHA256File(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("digests differ for identical content: %s vs %s", first, second)
	}
}

func TestSHA256FileSensitivity(t *testing.T) {
	a := writeTempFile(t, []byte("content A"))
	b := writeTempFile(t, []byte("content B"))

	da, err := SHA256File(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := SHA256File(b)
	if err != nil {
		t.Fatal(err)
	}
	if da == db {
		t.Error("single-byte change produced an identical digest")
	}
}

func TestSHA256FileMissing(t *testing.T) {
	if _, err := SHA256File(filepath.Join(t.TempDir(), "nope.vsix")); err == nil {
		t.Error("SHA256File succeeded on a missing file")
	}
}

func TestFileDigest(t *testing.T) {
	path := writeTempFile(t, []byte("exists"))

	if got := FileDigest(path); !hexDigest.MatchString(got) {
		t.Errorf("FileDigest = %q, want 64 lowercase hex characters", got)
	}
	if got := FileDigest(filepath.Join(t.TempDir(), "nope.vsix")); got != DigestUnknown {
		t.Errorf("FileDigest on missing file = %q, want %q", got, DigestUnknown)
	}
}
