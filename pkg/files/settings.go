package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/langtable/langtable/pkg/models"
)

const SettingsFile = "settings.yaml"

// DefaultSettingsPath returns settings.yaml under the user config directory
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return SettingsFile
	}
	return filepath.Join(dir, "langtable", SettingsFile)
}

// ReadSettings loads settings from path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}
	return settings, nil
}

// WriteSettings saves settings to path as YAML
func WriteSettings(path string, settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}
	return writeAtomic(path, content)
}
