// Package config parses amiwb's two bespoke rc files: amiwbrc (wallpaper
// paths, frame rate, render mode) and toolsdaemonrc (user-defined custom
// menus). Neither is TOML/INI/YAML, so both are hand-scanned line by line
// rather than reached for a format library — see DESIGN.md for why.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RenderMode selects the compositor's frame-scheduling policy (spec.md §4.C).
type RenderMode int

const (
	OnDemand RenderMode = iota
	Continuous
)

// Config is the parsed contents of amiwbrc.
type Config struct {
	WallpaperDesktop string
	WallpaperWindow  string
	TargetFPS        int
	RenderMode       RenderMode
	ShowHiddenFiles  bool
	IconSetDir       string
}

func defaults() Config {
	return Config{
		TargetFPS:  120,
		RenderMode: OnDemand,
	}
}

// Path returns $HOME/.config/amiwb/amiwbrc, falling back to the system
// share directory when the user file doesn't exist.
func Path() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "amiwb", "amiwbrc")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "/usr/local/share/amiwb/amiwbrc"
}

// Load parses the rc file at path. A missing file yields defaults, not an
// error — amiwb must start with no configuration present.
func Load(path string) (Config, error) {
	cfg := defaults()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config.Load: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "wallpaper_desktop":
			cfg.WallpaperDesktop = val
		case "wallpaper_window":
			cfg.WallpaperWindow = val
		case "fps":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.TargetFPS = clampFPS(n)
			}
		case "render_mode":
			if strings.EqualFold(val, "continuous") {
				cfg.RenderMode = Continuous
			} else {
				cfg.RenderMode = OnDemand
			}
		case "show_hidden":
			cfg.ShowHiddenFiles = strings.EqualFold(val, "true") || val == "1"
		case "icon_set":
			cfg.IconSetDir = val
		}
	}
	if err := sc.Err(); err != nil {
		return cfg, fmt.Errorf("config.Load: scan: %w", err)
	}
	return cfg, nil
}

func clampFPS(n int) int {
	if n < 1 {
		return 1
	}
	if n > 240 {
		return 240
	}
	return n
}

// splitKV parses "key = value" or "key = \"value\"" lines.
func splitKV(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	val = strings.TrimSpace(line[i+1:])
	val = strings.Trim(val, `"`)
	return key, val, key != ""
}

// CustomMenu is one [Section] of toolsdaemonrc: a named group of labeled
// shell commands that appear as a menubar entry.
type CustomMenu struct {
	Name    string
	Labels  []string
	Command []string // shell command line per label, parallel to Labels
}

// ToolsdaemonPath returns $HOME/.config/amiwb/toolsdaemonrc.
func ToolsdaemonPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "amiwb", "toolsdaemonrc")
}

// LoadCustomMenus parses toolsdaemonrc's "[Name]" sections of
// "\"Label\" = \"shell command\"" entries.
func LoadCustomMenus(path string) ([]CustomMenu, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config.LoadCustomMenus: %w", err)
	}
	defer f.Close()

	var menus []CustomMenu
	var cur *CustomMenu
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if cur != nil {
				menus = append(menus, *cur)
			}
			cur = &CustomMenu{Name: strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")}
			continue
		}
		if cur == nil {
			continue
		}
		label, cmd, ok := splitQuotedKV(line)
		if !ok {
			continue
		}
		cur.Labels = append(cur.Labels, label)
		cur.Command = append(cur.Command, cmd)
	}
	if cur != nil {
		menus = append(menus, *cur)
	}
	if err := sc.Err(); err != nil {
		return menus, fmt.Errorf("config.LoadCustomMenus: scan: %w", err)
	}
	return menus, nil
}

func splitQuotedKV(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	key = strings.Trim(strings.TrimSpace(line[:i]), `"`)
	val = strings.Trim(strings.TrimSpace(line[i+1:]), `"`)
	return key, val, key != ""
}
