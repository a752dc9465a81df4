package files

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/langtable/langtable/pkg/models"
)

// Format is an on-disk string table format
type Format string

const (
	FormatJSON Format = "json"
	FormatLang Format = "lang"
)

// ParseFormat accepts "json" or "lang", with or without a leading dot
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "lang":
		return FormatLang, nil
	default:
		return "", models.IOError("detect format", fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, s))
	}
}

// FormatFromPath detects the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}
