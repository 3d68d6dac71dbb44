// Package ramdisk backs a Device-kind workbench icon with a tmpfs mount,
// reproducing wb_ramdisk.c (SPEC_FULL.md §12). The mount/unmount themselves
// shell out to the same udisksctl-adjacent tooling the rest of amiwb uses
// for removable media; ramdisk only owns the directory path the workbench
// browses like any other drawer.
package ramdisk

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// DefaultMountPoint is where the RAM disk is mounted when New is given no
// mount point: a relative path, resolved against the working directory.
const DefaultMountPoint = "RAM Disk"

// Disk represents one mounted tmpfs-backed drawer.
type Disk struct {
	MountPoint string
	SizeMB     int
	mounted    bool
}

// New prepares (but does not mount) a RAM disk of sizeMB at mountPoint.
func New(mountPoint string, sizeMB int) *Disk {
	if mountPoint == "" {
		mountPoint = DefaultMountPoint
	}
	if sizeMB <= 0 {
		sizeMB = 64
	}
	return &Disk{MountPoint: mountPoint, SizeMB: sizeMB}
}

// Mount creates the mount point and mounts a tmpfs of the configured size,
// per spec.md §6's child-process model (fork+exec, never a direct syscall
// the way the rest of the WM avoids direct mount(2) calls too).
func (d *Disk) Mount() error {
	if err := os.MkdirAll(d.MountPoint, 0o755); err != nil {
		return fmt.Errorf("ramdisk.Mount: mkdir %s: %w", d.MountPoint, err)
	}
	opt := fmt.Sprintf("size=%dm", d.SizeMB)
	cmd := exec.Command("mount", "-t", "tmpfs", "-o", opt, "tmpfs", d.MountPoint)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ramdisk.Mount: %w", err)
	}
	d.mounted = true
	return nil
}

// Unmount tears the tmpfs down; errors are logged and non-fatal, per
// spec.md §7 — a RAM disk busy with open files is a user error, not a
// WM crash.
func (d *Disk) Unmount() {
	if !d.mounted {
		return
	}
	if err := exec.Command("umount", d.MountPoint).Run(); err != nil {
		logging.L.Printf("ramdisk.Unmount: %s: %v", d.MountPoint, err)
		return
	}
	d.mounted = false
}

// Mounted reports whether the tmpfs is currently mounted.
func (d *Disk) Mounted() bool { return d.mounted }
