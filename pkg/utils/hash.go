package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// HashChunkSize is the read size used when streaming file contents through
// the digest. 8 KiB bounds memory per worker regardless of file size.
const HashChunkSize = 8192

// HashFile computes the SHA-256 digest of a file's full byte content,
// reading in HashChunkSize chunks. The file handle is closed on all exit
// paths. Identical bytes produce identical digests regardless of path.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return HashReader(file)
}

// HashReader computes the SHA-256 digest of everything readable from r.
func HashReader(r io.Reader) (string, error) {
	hash := sha256.New()
	buf := make([]byte, HashChunkSize)
	if _, err := io.CopyBuffer(hash, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashBytes computes the SHA-256 digest of b. Used by tests and the
// synthetic generator to predict on-disk digests.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
