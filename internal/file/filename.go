package file

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeUploadFilename repairs multipart file names that were transported as
// Latin-1. Some clients hand over the raw UTF-8 bytes of a non-ASCII name one
// byte per character, which turns "测试.txt" into mojibake. Re-encoding those
// characters back to single bytes and re-reading them as UTF-8 restores the
// original name. Names that are already sane pass through untouched.
func DecodeUploadFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}

	for _, r := range name {
		if r > 0xFF {
			// contains runes outside Latin-1, cannot be mojibake
			return name
		}
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil {
		return name
	}
	if !utf8.ValidString(raw) {
		return name
	}
	return raw
}
