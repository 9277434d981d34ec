package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name: sprint
version: 1.2.0
displayName: Sprint Toggle
description: Toggles sprinting
author: someone
`)

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Name != "sprint" {
		t.Errorf("Name = %q, want %q", m.Name, "sprint")
	}
	if m.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", m.Version, "1.2.0")
	}
	if m.Main != DefaultMain {
		t.Errorf("Main = %q, want default %q", m.Main, DefaultMain)
	}
	if m.MainPath() != filepath.Join(dir, DefaultMain) {
		t.Errorf("MainPath() = %q", m.MainPath())
	}
	if m.String() != "Sprint Toggle v1.2.0" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing name", "version: 1.0.0", ErrMissingName},
		{"bad name", "name: Bad_Name", ErrInvalidName},
		{"bad version", "name: ok\nversion: one", ErrInvalidVersion},
		{"non lua main", "name: ok\nmain: init.js", ErrInvalidMain},
		{"escaping main", "name: ok\nmain: ../evil.lua", ErrInvalidMain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)

			_, err := LoadManifest(dir)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadManifest() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadManifestInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: [unterminated")

	if _, err := LoadManifest(dir); err == nil {
		t.Error("LoadManifest() should fail on invalid YAML")
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadManifest() error = %v, want not exist", err)
	}
}
