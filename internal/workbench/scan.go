package workbench

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// Canvas is a directory's icon set plus its view state, one per workbench
// Window-kind canvas (spec.md §4.E).
type Canvas struct {
	Dir        string
	Icons      []*Icon
	ShowHidden bool
}

// Scan (re)populates c.Icons from the filesystem, skipping `.info` sidecar
// files (they are consumed, not shown) and dotfiles unless ShowHidden is
// set, per spec.md §4.E.
func Scan(dir string, showHidden bool) (*Canvas, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	c := &Canvas{Dir: dir, ShowHidden: showHidden}
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".info") {
			continue
		}
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		kind := kindForEntry(dir, e)
		icon := &Icon{
			Name:    name,
			Path:    filepath.Join(dir, name),
			Kind:    kind,
			Decoded: resolveIcon(dir, e, kind),
		}
		c.Icons = append(c.Icons, icon)
	}
	return c, nil
}

// Refresh reloads dir in place, trying to preserve selection by path and
// preserving existing icon grid positions where a name still matches, per
// spec.md §4.E's "delete/rename refreshes the source canvas" rule.
func (c *Canvas) Refresh() error {
	fresh, err := Scan(c.Dir, c.ShowHidden)
	if err != nil {
		logging.L.Printf("workbench.Refresh: %s: %v", c.Dir, err)
		return err
	}
	positions := make(map[string][2]int, len(c.Icons))
	selected := make(map[string]bool, len(c.Icons))
	for _, ic := range c.Icons {
		positions[ic.Name] = [2]int{ic.X, ic.Y}
		selected[ic.Name] = ic.Selected
	}
	for _, ic := range fresh.Icons {
		if pos, ok := positions[ic.Name]; ok {
			ic.X, ic.Y = pos[0], pos[1]
		}
		ic.Selected = selected[ic.Name]
	}
	c.Icons = fresh.Icons
	return nil
}

// SortNames returns icon names sorted case-insensitively, used by Names
// mode layout (spec.md §4.E).
func SortNames(icons []*Icon) []*Icon {
	sorted := make([]*Icon, len(icons))
	copy(sorted, icons)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}
