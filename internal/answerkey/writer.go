package answerkey

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

// WriteLines writes one line per entry to path, replacing any existing file.
// The content goes to a temporary sibling first and is renamed into place,
// so a failed write never leaves a truncated answer key behind.
// It returns the hex SHA-256 of the bytes written.
func WriteLines(path string, lines []string) (digest string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", writeError(path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	hash := sha256.New()
	w := bufio.NewWriter(io.MultiWriter(tmp, hash))
	for _, line := range lines {
		if _, err = w.WriteString(line); err != nil {
			return "", writeError(path, err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return "", writeError(path, err)
		}
	}
	if err = w.Flush(); err != nil {
		return "", writeError(path, err)
	}
	if err = tmp.Sync(); err != nil {
		return "", writeError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", writeError(path, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return "", writeError(path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return "", writeError(path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
