package upload

import (
	"bytes"
	"strings"
)

// SniffMimeType inspects the first bytes of a payload against known file
// signatures. Unrecognized payloads yield application/octet-stream.
func SniffMimeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case isWebP(data):
		return "image/webp"
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return "application/pdf"
	case isSVG(data):
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}

// isSVG is a text sniff: SVG has no magic number, so look for an <svg>
// root element within the leading bytes.
func isSVG(data []byte) bool {
	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	text := strings.TrimSpace(strings.ToLower(string(probe)))
	if strings.HasPrefix(text, "<svg") {
		return true
	}
	return strings.HasPrefix(text, "<?xml") && strings.Contains(text, "<svg")
}
