// Package filestore keeps recipe documents and the order log in JSON files
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// errCorrupt marks a file whose contents do not decode
var errCorrupt = errors.New("corrupt document file")

// File is a JSON document file with a scoped, atomic write.
// Writers are serialized by the mutex; readers see either the old or the new file.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a handle for path. The file need not exist.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location
func (f *File) Path() string {
	return f.path
}

// read decodes the file into v. A blank file reports found=false; a missing
// one returns an error wrapping fs.ErrNotExist.
func (f *File) read(v interface{}) (found bool, err error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", errCorrupt, f.path, err)
	}
	return true, nil
}

// create writes v only when the file does not exist yet
func (f *File) create(v interface{}) (created bool, err error) {
	if _, err := os.Stat(f.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", f.path, err)
	}
	if err := f.write(v); err != nil {
		return false, err
	}
	return true, nil
}

// write replaces the file with v: temp file in the same directory, fsync, rename
func (f *File) write(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// quarantine moves an unreadable file aside so the next write does not lose it
func (f *File) quarantine(now time.Time) (string, error) {
	target := f.path + ".corrupt." + now.Format("20060102_150405")
	if err := os.Rename(f.path, target); err != nil {
		return "", err
	}
	return target, nil
}

// flexNumber decodes a JSON number or a numeric string; null and blank read as 0
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*n = flexNumber(v)
	return nil
}
