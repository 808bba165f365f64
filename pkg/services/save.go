package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiqr-cms/pkg/models"

	"github.com/charmbracelet/log"
)

// SaveConfig writes data to path as pretty-printed JSON or as YAML,
// depending on the extension. Failures are reported in the result; nothing
// is written for unsupported extensions.
func SaveConfig(path string, configType models.ConfigType, data any) models.SaveResult {
	if configType != "" && !configType.Valid() {
		return saveFailed(path, fmt.Errorf("Unsupported config type: %s", configType))
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return saveFailed(path, &UnsupportedSaveExtensionError{Ext: ext})
	}

	out, err := Marshal(ext, data)
	if err != nil {
		return saveFailed(path, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return saveFailed(path, err)
	}

	log.Info("config saved", "path", path, "type", configType)
	return models.SaveResult{Success: true}
}

func saveFailed(path string, err error) models.SaveResult {
	log.Error("saving config failed", "path", path, "err", err)
	return models.SaveResult{Success: false, Errors: []string{err.Error()}}
}
