package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeSettingsJSONSchema(t *testing.T) {
	data := []byte(`{
		"default_timeout": 15,
		"ssl_verify": false,
		"default_environment": "staging",
		"http_proxy": "http://proxy:3128",
		"https_proxy": "http://proxy:3129",
		"theme": "dark"
	}`)
	settings, err := decodeSettings(data, SettingsFormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.DefaultTimeout != 15 || settings.SSLVerify || settings.DefaultEnvironment != "staging" {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if settings.HTTPProxy != "http://proxy:3128" || settings.HTTPSProxy != "http://proxy:3129" {
		t.Fatalf("proxies not decoded: %+v", settings)
	}
}

func TestNormalizeSettingsFillsDefaults(t *testing.T) {
	settings := normalizeSettings(Settings{})
	if settings.DefaultTimeout != 30 {
		t.Fatalf("unexpected timeout %d", settings.DefaultTimeout)
	}
	if settings.DefaultEnvironment != "Default" || settings.Theme != "dark" {
		t.Fatalf("unexpected defaults %+v", settings)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	in := DefaultSettings()
	in.DefaultTimeout = 45
	in.HTTPProxy = "http://proxy:8080"

	if err := SaveSettings(in, SettingsHandle{Path: path, Format: SettingsFormatJSON}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, key := range []string{
		"default_timeout", "ssl_verify", "default_environment",
		"http_proxy", "https_proxy", "theme",
	} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("missing persisted key %q in %s", key, data)
		}
	}

	back, err := decodeSettings(data, SettingsFormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back != in {
		t.Fatalf("round trip changed settings: %+v != %+v", back, in)
	}
}

func TestSaveSettingsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := SaveSettings(DefaultSettings(), SettingsHandle{Path: path, Format: SettingsFormatTOML}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	settings, err := decodeSettings(data, SettingsFormatTOML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.DefaultTimeout != 30 || !settings.SSLVerify {
		t.Fatalf("unexpected settings %+v", settings)
	}
}
