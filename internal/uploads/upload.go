package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"resume-check/internal/shared/util"
)

// DefaultMaxBytes caps uploads when the caller passes no limit.
const DefaultMaxBytes = 10 << 20

var (
	ErrEmptyFile   = errors.New("file is empty")
	ErrTooLarge    = errors.New("file exceeds upload limit")
	ErrInvalidName = errors.New("invalid file name")
	ErrExtension   = errors.New("file type not allowed")
)

// AllowedExtensions are the resume formats the upload form offers.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// Upload is a resume file read fully into memory.
type Upload struct {
	FileName  string
	Extension string
	MimeType  string
	SizeBytes int64
	Data      []byte
}

// Read consumes r up to maxBytes and describes the file. The name is
// sanitized; the MIME type is sniffed from content, not trusted from the
// client.
func Read(fileName string, r io.Reader, maxBytes int64) (Upload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %q", ErrInvalidName, fileName)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Upload{}, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}
	if len(data) == 0 {
		return Upload{}, ErrEmptyFile
	}

	return Upload{
		FileName:  name,
		Extension: strings.ToLower(filepath.Ext(name)),
		MimeType:  mimetype.Detect(data).String(),
		SizeBytes: int64(len(data)),
		Data:      data,
	}, nil
}

// ExtensionAllowed reports whether the file carries one of AllowedExtensions.
func (u Upload) ExtensionAllowed() bool {
	for _, ext := range AllowedExtensions {
		if u.Extension == ext {
			return true
		}
	}
	return false
}

// CheckExtension returns ErrExtension for files outside AllowedExtensions.
func (u Upload) CheckExtension() error {
	if u.ExtensionAllowed() {
		return nil
	}
	return fmt.Errorf("%w: %q (allowed: %s)", ErrExtension, u.Extension, strings.Join(AllowedExtensions, ", "))
}

// PreviewURL encodes the file as a data URL the browser can show inline.
func (u Upload) PreviewURL() string {
	mime := strings.ReplaceAll(u.MimeType, " ", "")
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
}
