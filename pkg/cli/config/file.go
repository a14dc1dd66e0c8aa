package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const envPrefix = "GRAFANA_INVITER_"

// LoadFile loads a YAML (.yaml, .yml) or JSON (.json, .jsonc) configuration
// file. Comments and trailing commas are allowed in JSON. The result is not
// validated; flags may still fill in missing fields.
func LoadFile(path string) (*model.Config, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var cfg model.Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, goerr.Wrap(model.ErrInvalidConfig, "failed to parse JSON configuration",
				goerr.V("path", path),
				goerr.V("error", err.Error()))
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, goerr.Wrap(model.ErrInvalidConfig, "failed to parse YAML configuration",
				goerr.V("path", path),
				goerr.V("error", err.Error()))
		}
	default:
		return nil, goerr.Wrap(model.ErrInvalidConfig, "unsupported configuration file extension",
			goerr.V("path", path),
			goerr.V("ext", ext))
	}

	return &cfg, nil
}
