package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SeedIfEmpty {
		t.Fatalf("expected seed enabled by default")
	}
	if len(cfg.Scales) == 0 {
		t.Fatalf("expected default scales")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.SeedIfEmpty = false
	cfg.Scales = cfg.Scales[:1]
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SeedIfEmpty {
		t.Fatalf("expected seed disabled after roundtrip")
	}
	if len(got.Scales) != 1 {
		t.Fatalf("expected 1 scale, got %d", len(got.Scales))
	}
}

func TestLoadBadYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFilename), []byte("seed_if_empty: [broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWorkspaceDirRejectsUnsafeNames(t *testing.T) {
	for _, name := range []string{"../evil", `a\b`, "a/b", ".", ".."} {
		if _, err := WorkspaceDir(name); err == nil {
			t.Fatalf("expected invalid workspace name error for %q", name)
		}
	}
}
