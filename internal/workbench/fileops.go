package workbench

import (
	"fmt"
	"os"
	"path/filepath"
)

// Delete recursively removes ic's filesystem entry and its `.info`
// sidecar, then refreshes c. The confirmation dialog is the caller's
// responsibility, per spec.md §4.E.
func (c *Canvas) Delete(ic *Icon) error {
	if err := os.RemoveAll(ic.Path); err != nil {
		return fmt.Errorf("workbench.Delete: %s: %w", ic.Path, err)
	}
	os.Remove(ic.Path + ".info")
	return c.Refresh()
}

// NewDrawer creates an empty subdirectory named name inside c's directory
// and refreshes c, for the menubar's Window/"New Drawer" action
// (spec.md §4.F).
func (c *Canvas) NewDrawer(name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("workbench.NewDrawer: invalid name %q", name)
	}
	dest := filepath.Join(c.Dir, name)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("workbench.NewDrawer: %s already exists", dest)
	}
	if err := os.Mkdir(dest, 0o755); err != nil {
		return fmt.Errorf("workbench.NewDrawer: %w", err)
	}
	return c.Refresh()
}

// Rename renames ic to newName (and its `.info` sidecar, if present),
// validating that newName is non-empty, contains no path separator, and
// doesn't collide with an existing entry, per spec.md §4.E.
func (c *Canvas) Rename(ic *Icon, newName string) error {
	if newName == "" || filepath.Base(newName) != newName {
		return fmt.Errorf("workbench.Rename: invalid name %q", newName)
	}
	dest := filepath.Join(c.Dir, newName)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("workbench.Rename: %s already exists", dest)
	}
	if err := os.Rename(ic.Path, dest); err != nil {
		return err
	}
	if _, err := os.Stat(ic.Path + ".info"); err == nil {
		os.Rename(ic.Path+".info", dest+".info")
	}
	return c.Refresh()
}
