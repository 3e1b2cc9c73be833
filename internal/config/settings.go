package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/curlmonkey/internal/atomicfile"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

type SettingsFormat string

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"
)

// Settings mirrors the flat settings document. Timeout is in seconds on the
// wire, matching the persisted schema.
type Settings struct {
	DefaultTimeout     int    `json:"default_timeout"     toml:"default_timeout"`
	SSLVerify          bool   `json:"ssl_verify"          toml:"ssl_verify"`
	DefaultEnvironment string `json:"default_environment" toml:"default_environment"`
	HTTPProxy          string `json:"http_proxy"          toml:"http_proxy"`
	HTTPSProxy         string `json:"https_proxy"         toml:"https_proxy"`
	Theme              string `json:"theme"               toml:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultTimeout:     30,
		SSLVerify:          true,
		DefaultEnvironment: model.DefaultEnvironmentName,
		Theme:              "dark",
	}
}

type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

// LoadSettings tries settings.toml first, then settings.json, returning
// defaults when neither exists. Parse errors fail immediately but missing
// files just skip to the next candidate.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, "settings.toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, "settings.json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read settings %q: %w", candidate.Path, err),
			)
			continue
		}

		settings, err := decodeSettings(data, candidate.Format)
		if err != nil {
			return Settings{}, SettingsHandle{}, fmt.Errorf(
				"parse settings %q: %w", candidate.Path, err,
			)
		}
		return normalizeSettings(settings), candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, accumulated
	}
	return DefaultSettings(), SettingsHandle{
		Path:   candidates[1].Path,
		Format: SettingsFormatJSON,
	}, nil
}

func normalizeSettings(s Settings) Settings {
	if s.DefaultTimeout <= 0 {
		s.DefaultTimeout = DefaultSettings().DefaultTimeout
	}
	if s.DefaultEnvironment == "" {
		s.DefaultEnvironment = model.DefaultEnvironmentName
	}
	if s.Theme == "" {
		s.Theme = "dark"
	}
	return s
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	var settings Settings
	switch format {
	case SettingsFormatTOML:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

func SaveSettings(settings Settings, handle SettingsHandle) error {
	settings = normalizeSettings(settings)
	path := handle.Path
	format := handle.Format
	if path == "" {
		path = filepath.Join(Dir(), "settings.json")
	}
	if format == "" {
		format = SettingsFormatJSON
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case SettingsFormatTOML:
		data, err = toml.Marshal(settings)
	case SettingsFormatJSON:
		buffer := &bytes.Buffer{}
		encoder := json.NewEncoder(buffer)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(settings); err == nil {
			data = buffer.Bytes()
		}
	default:
		return fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := atomicfile.Write(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}
