package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinImageSize is the smallest plausible image file. Anything below
// this is treated as corrupted.
const MinImageSize = 100

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
}

// Phrases that identify placeholder files masquerading as images.
var placeholderPhrases = []string{
	"test",
	"hello",
	"hello world",
	"image does not exist",
	"test data",
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// IsImageExtension reports whether the file name carries a known image
// extension. Non-image files skip binary validation entirely.
func IsImageExtension(fileName string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// ValidateImage checks that the stored bytes are plausible binary image
// data for the extension the file name claims. Returns a descriptive
// error for corrupted content, nil for valid content.
func ValidateImage(data []byte, fileName string) error {
	if !IsImageExtension(fileName) {
		return nil
	}

	if len(data) < MinImageSize {
		return fmt.Errorf("file too small (%d bytes)", len(data))
	}

	if err := checkMagicBytes(data, fileName); err != nil {
		return err
	}

	if looksLikePlaintext(data) {
		head := data
		if len(head) > 200 {
			head = head[:200]
		}
		lower := strings.ToLower(string(head))
		for _, phrase := range placeholderPhrases {
			if strings.Contains(lower, phrase) {
				return fmt.Errorf("contains placeholder text: %q", strings.TrimSpace(string(head)))
			}
		}
		if len(data) < 1000 {
			return fmt.Errorf("file is plain text, not binary image data")
		}
	}

	return nil
}

// checkMagicBytes verifies the binary header against the signature the
// claimed extension requires.
func checkMagicBytes(data []byte, fileName string) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		if len(data) < 3 || !bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}) {
			return fmt.Errorf("invalid JPEG header")
		}
	case ".png":
		if len(data) < 8 || !bytes.Equal(data[:8], pngSignature) {
			return fmt.Errorf("invalid PNG header")
		}
	case ".gif":
		if len(data) < 6 || (!bytes.HasPrefix(data, []byte("GIF87a")) && !bytes.HasPrefix(data, []byte("GIF89a"))) {
			return fmt.Errorf("invalid GIF header")
		}
	case ".bmp":
		if len(data) < 2 || !bytes.HasPrefix(data, []byte("BM")) {
			return fmt.Errorf("invalid BMP header")
		}
	case ".webp":
		if len(data) < 12 || !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
			return fmt.Errorf("invalid WebP header")
		}
	case ".tiff":
		if len(data) < 4 || (!bytes.HasPrefix(data, []byte("II*\x00")) && !bytes.HasPrefix(data, []byte("MM\x00*"))) {
			return fmt.Errorf("invalid TIFF header")
		}
	}
	return nil
}

// looksLikePlaintext reports whether the head of the file decodes
// cleanly as printable text, a strong signal of a placeholder file
// rather than binary image data.
func looksLikePlaintext(data []byte) bool {
	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	if !utf8.Valid(head) {
		return false
	}
	for _, r := range string(head) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// SniffContentType maps a file extension to a MIME type, falling back
// to a generic binary type.
func SniffContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	case ".tiff":
		return "image/tiff"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
