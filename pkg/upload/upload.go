// Package upload normalizes multipart form submissions and raw binary
// bodies into one in-memory file representation before storage or
// persistence ever see them.
package upload

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/crowdkit/crowdkit/pkg/id"
)

// Intake validation failures. Any one of them fails the whole intake.
var (
	ErrTooManyFiles   = errors.New("too many files in request")
	ErrFileTooLarge   = errors.New("file exceeds maximum allowed size")
	ErrMimeNotAllowed = errors.New("file type is not allowed")
	ErrEmptyFile      = errors.New("file is empty")
)

// File is the normalized in-memory upload. It is transient: only the stored
// path string ever lands on an entity.
type File struct {
	Buffer       []byte
	OriginalName string
	MimeType     string
	Size         int64
	FieldName    string
}

// Limits bounds an intake. Zero values disable the respective check except
// MaxFiles/MaxFileSize, which fall back to defaults.
type Limits struct {
	MaxFiles     int      `mapstructure:"maxFiles"`
	MaxFileSize  int64    `mapstructure:"maxFileSize"`
	AllowedMimes []string `mapstructure:"allowedMimes"` // empty slice allows any type
}

const (
	defaultMaxFiles    = 10
	defaultMaxFileSize = 20 * 1024 * 1024
)

func (l Limits) maxFiles() int {
	if l.MaxFiles <= 0 {
		return defaultMaxFiles
	}
	return l.MaxFiles
}

func (l Limits) maxFileSize() int64 {
	if l.MaxFileSize <= 0 {
		return defaultMaxFileSize
	}
	return l.MaxFileSize
}

func (l Limits) mimeAllowed(mimeType string) bool {
	if len(l.AllowedMimes) == 0 {
		return true
	}
	for _, allowed := range l.AllowedMimes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

// FromMultipart reads every file part of a parsed multipart form into
// memory and validates the batch against the limits.
func FromMultipart(form *multipart.Form, limits Limits) ([]File, error) {
	if form == nil {
		return nil, nil
	}

	total := 0
	for _, headers := range form.File {
		total += len(headers)
	}
	if total > limits.maxFiles() {
		return nil, errors.Wrapf(ErrTooManyFiles, "%d files, limit %d", total, limits.maxFiles())
	}

	var files []File
	for fieldName, headers := range form.File {
		for _, fh := range headers {
			f, err := fromFileHeader(fieldName, fh, limits)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

func fromFileHeader(fieldName string, fh *multipart.FileHeader, limits Limits) (File, error) {
	if fh.Size == 0 {
		return File{}, errors.Wrap(ErrEmptyFile, fh.Filename)
	}
	if fh.Size > limits.maxFileSize() {
		return File{}, errors.Wrapf(ErrFileTooLarge, "%s: %d bytes, limit %d", fh.Filename, fh.Size, limits.maxFileSize())
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, errors.Wrap(err, "failed to open multipart file")
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		return File{}, errors.Wrap(err, "failed to read multipart file")
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = SniffMimeType(buf)
	}
	if !limits.mimeAllowed(mimeType) {
		return File{}, errors.Wrapf(ErrMimeNotAllowed, "%s (%s)", fh.Filename, mimeType)
	}

	return File{
		Buffer:       buf,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		Size:         int64(len(buf)),
		FieldName:    fieldName,
	}, nil
}

// RawHeaders carries the request headers relevant to a raw binary upload.
type RawHeaders struct {
	ContentType        string
	ContentDisposition string
	FileName           string // value of a custom filename header, if any
}

// FromRaw normalizes a raw binary body into a single-element file list.
// The filename is recovered from Content-Disposition or the custom header,
// falling back to a generated name; the MIME type from Content-Type or a
// signature sniff of the payload.
func FromRaw(body []byte, headers RawHeaders, fieldName string, limits Limits) ([]File, error) {
	if len(body) == 0 {
		return nil, errors.Wrap(ErrEmptyFile, "raw body")
	}
	if int64(len(body)) > limits.maxFileSize() {
		return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes, limit %d", len(body), limits.maxFileSize())
	}

	mimeType := headers.ContentType
	if mimeType == "" || mimeType == "application/octet-stream" {
		if sniffed := SniffMimeType(body); sniffed != "application/octet-stream" {
			mimeType = sniffed
		} else if mimeType == "" {
			mimeType = "application/octet-stream"
		}
	}
	if !limits.mimeAllowed(mimeType) {
		return nil, errors.Wrapf(ErrMimeNotAllowed, "raw body (%s)", mimeType)
	}

	name := fileNameFromHeaders(headers)
	if name == "" {
		name = generatedFileName(mimeType)
	}

	return []File{{
		Buffer:       body,
		OriginalName: name,
		MimeType:     mimeType,
		Size:         int64(len(body)),
		FieldName:    fieldName,
	}}, nil
}

func fileNameFromHeaders(headers RawHeaders) string {
	if headers.ContentDisposition != "" {
		if _, params, err := mime.ParseMediaType(headers.ContentDisposition); err == nil {
			if name := params["filename"]; name != "" {
				return filepath.Base(name)
			}
		}
	}
	if headers.FileName != "" {
		return filepath.Base(headers.FileName)
	}
	return ""
}

func generatedFileName(mimeType string) string {
	name := id.ShortId()
	if name == "" {
		name = id.GetULID()
	}
	return fmt.Sprintf("upload-%s%s", name, extensionFor(mimeType))
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
