// Package extraction validates uploaded resume files and extracts their plain
// text for parsing.
package extraction

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the hard cap on uploaded resume size.
const MaxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// FileTooLargeError reports an upload over the size cap.
type FileTooLargeError struct {
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size %d exceeds the %d byte limit", e.Size, MaxUploadBytes)
}

// UnsupportedTypeError reports a file whose extension is outside the
// allow-list.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Extension == "" {
		return "file has no extension; only PDF and Word documents are accepted"
	}
	return fmt.Sprintf("unsupported file type %q; only PDF and Word documents are accepted", e.Extension)
}

// Ext returns the lowercased extension of a filename, including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ValidateUpload checks a candidate upload against the extension allow-list
// and the size cap. Both checks fail closed: an unrecognized extension or an
// unknown size is rejected.
func ValidateUpload(filename string, size int64) error {
	ext := Ext(filename)
	if !allowedExtensions[ext] {
		return &UnsupportedTypeError{Extension: ext}
	}
	if size <= 0 || size > MaxUploadBytes {
		return &FileTooLargeError{Size: size}
	}
	return nil
}
