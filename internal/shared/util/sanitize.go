package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that cannot be made safe.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and control characters and
// rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
