package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteResult describes a completed atomic write.
type WriteResult struct {
	Path   string
	Bytes  int64
	SHA256 string
}

// countingWriter tracks the bytes passed through to an underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteAtomic streams fn's output into a temp file beside path, syncs it, and
// renames it over path. On any error the temp file is removed and path is left
// untouched. The result carries the final size and SHA256 of the content.
func WriteAtomic(path string, mode os.FileMode, fn func(io.Writer) error) (WriteResult, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return WriteResult{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	counter := &countingWriter{w: io.MultiWriter(tmp, hasher)}
	if err := fn(counter); err != nil {
		return WriteResult{}, err
	}
	if err := tmp.Sync(); err != nil {
		return WriteResult{}, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return WriteResult{}, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return WriteResult{}, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return WriteResult{}, fmt.Errorf("rename into place: %w", err)
	}
	committed = true

	return WriteResult{
		Path:   path,
		Bytes:  counter.n,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// FileSHA256 returns the hex SHA256 of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
