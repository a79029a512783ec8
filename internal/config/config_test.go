package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	SettingsFile = filepath.Join(dir, "config.json")

	in := &Settings{CatalogURL: "https://example.com/rpc", ClientID: "abc"}
	if err := SaveSettings(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.CatalogURL != in.CatalogURL || out.ClientID != in.ClientID {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestLoadSettingsMissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	SettingsFile = filepath.Join(dir, "does-not-exist.json")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CatalogURL != "" {
		t.Errorf("expected zero-value settings, got %+v", s)
	}
}
