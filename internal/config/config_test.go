package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsOnMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TargetFPS != 120 || cfg.RenderMode != OnDemand {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amiwbrc")
	body := "# comment\nwallpaper_desktop = \"/tmp/wall.jpg\"\nfps = 300\nrender_mode = continuous\nshow_hidden = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WallpaperDesktop != "/tmp/wall.jpg" {
		t.Errorf("wallpaper = %q", cfg.WallpaperDesktop)
	}
	if cfg.TargetFPS != 240 {
		t.Errorf("fps should clamp to 240, got %d", cfg.TargetFPS)
	}
	if cfg.RenderMode != Continuous {
		t.Errorf("render mode = %v", cfg.RenderMode)
	}
	if !cfg.ShowHiddenFiles {
		t.Errorf("show_hidden not parsed")
	}
}

func TestLoadCustomMenus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolsdaemonrc")
	body := "[Tools]\n\"Terminal\" = \"xterm\"\n\"Editor\" = \"vi %f\"\n\n[Net]\n\"Browser\" = \"firefox\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	menus, err := LoadCustomMenus(path)
	if err != nil {
		t.Fatalf("LoadCustomMenus: %v", err)
	}
	if len(menus) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(menus))
	}
	if menus[0].Name != "Tools" || len(menus[0].Labels) != 2 {
		t.Fatalf("unexpected first menu: %+v", menus[0])
	}
	if menus[0].Labels[0] != "Terminal" || menus[0].Command[0] != "xterm" {
		t.Fatalf("unexpected entry: %+v", menus[0])
	}
}
