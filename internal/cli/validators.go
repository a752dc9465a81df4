package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/langtable/langtable/pkg/files"
	"github.com/langtable/langtable/pkg/search"
)

// ValidateFilterMode validates a filter mode flag
func ValidateFilterMode(mode string) (search.Mode, error) {
	return search.ParseMode(mode)
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateTablePath checks that path has a supported string table extension.
// When mustExist is set the file must also exist.
func ValidateTablePath(path string, mustExist bool) error {
	if _, err := files.FormatFromPath(path); err != nil {
		return fmt.Errorf("unsupported file %s (must end in .json or .lang)", path)
	}
	if mustExist {
		return ValidateFilePath(path)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateProjectName validates a project name
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("project name contains invalid character: %s", char)
		}
	}

	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
