package util

import (
	"errors"
	"path"
	"strings"
)

var (
	// ErrNoExtension is returned when a file name has no extension segment.
	ErrNoExtension = errors.New("missing file extension")
	// ErrInvalidExtension is returned when the extension holds anything but ASCII letters and digits.
	ErrInvalidExtension = errors.New("invalid file extension")
)

// BaseFileName strips any client-supplied directory components, whichever
// separator style the client used.
func BaseFileName(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)
	if s == "." || s == "/" {
		return ""
	}
	return s
}

// FileExtension returns the segment after the last '.' of the base name, so
// "a.b.pdf" yields "pdf". Names without a dot, or ending in one, yield
// ErrNoExtension. The extension ends up in a URL path, so only [A-Za-z0-9]
// is accepted.
func FileExtension(name string) (string, error) {
	base := BaseFileName(name)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return "", ErrNoExtension
	}
	ext := base[idx+1:]
	for _, r := range ext {
		if !isASCIIAlnum(r) {
			return "", ErrInvalidExtension
		}
	}
	return ext, nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
