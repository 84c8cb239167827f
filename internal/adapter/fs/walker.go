package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidUTF8 is returned by ReadFile for files that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

type Walker struct{}

func NewWalker() *Walker {
	return &Walker{}
}

// Walk returns every regular file below dir whose name ends in one of
// extensions, sorted. Paths are joined to dir.
func (w *Walker) Walk(dir string, extensions []string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := make(map[string]struct{})
	var files []string

	for _, ext := range extensions {
		pattern := "**/*" + ext
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
			if d.IsDir() {
				return nil
			}
			full := filepath.Join(dir, filepath.FromSlash(path))
			if _, ok := seen[full]; !ok {
				seen[full] = struct{}{}
				files = append(files, full)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, dir, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads path as UTF-8 text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

// Reader adapts ReadFile to port.FileReader.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) ReadFile(path string) (string, error) {
	return ReadFile(path)
}

// Exists reports whether path names an existing entry of any type.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
