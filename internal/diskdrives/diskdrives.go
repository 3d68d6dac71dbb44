// Package diskdrives watches for removable-media add/remove and shells out
// to udisksctl for mount/unmount, reproducing diskdrives.c
// (SPEC_FULL.md §12). It surfaces changes as Added/Removed events; the
// caller (cmd/amiwb's event loop) turns those into Device-kind workbench
// icons on the desktop canvas.
package diskdrives

import (
	"bufio"
	"os"
	"os/exec"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// Event reports a mount appearing or disappearing under /proc/self/mountinfo.
type Event struct {
	MountPoint string
	Added      bool
}

// Watcher tails /proc/self/mountinfo and /dev for device changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	mounts map[string]bool
}

// New opens an fsnotify watch on /dev, used to detect device-node
// add/remove (the actual mount/unmount state is read from mountinfo on
// each notification, since mountinfo itself isn't watchable directly).
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add("/dev"); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fsw: fsw, mounts: map[string]bool{}}
	w.mounts, _ = readMounts()
	return w, nil
}

// Initial reports the mount points already present at New, as Added
// events, so the caller can seed desktop icons for media mounted before
// amiwb started.
func (w *Watcher) Initial() []Event {
	events := make([]Event, 0, len(w.mounts))
	for mp := range w.mounts {
		events = append(events, Event{MountPoint: mp, Added: true})
	}
	return events
}

// Events returns the underlying fsnotify event channel; the caller's
// select loop drains it and calls Poll to get semantic Added/Removed
// events, per spec.md §4.G's inotify-fd-in-the-select-loop model.
func (w *Watcher) Events() <-chan fsnotify.Event { return w.fsw.Events }

// Close stops the underlying inotify watch.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Poll diffs the current mount table against the last-seen one and
// returns the resulting Added/Removed events, per spec.md §4.E's
// "device-mounted root → Device" rule.
func (w *Watcher) Poll() []Event {
	current, err := readMounts()
	if err != nil {
		logging.L.Printf("diskdrives.Poll: %v", err)
		return nil
	}
	var events []Event
	for mp := range current {
		if !w.mounts[mp] {
			events = append(events, Event{MountPoint: mp, Added: true})
		}
	}
	for mp := range w.mounts {
		if !current[mp] {
			events = append(events, Event{MountPoint: mp, Added: false})
		}
	}
	w.mounts = current
	return events
}

// readMounts parses /proc/self/mountinfo for removable-media mount points
// under /media or /run/media, the common udisks auto-mount locations.
func readMounts() (map[string]bool, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mounts := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 {
			continue
		}
		mp := fields[4]
		if strings.HasPrefix(mp, "/media/") || strings.HasPrefix(mp, "/run/media/") {
			mounts[mp] = true
		}
	}
	return mounts, sc.Err()
}

// Mount shells out to udisksctl to mount the block device at devPath, per
// spec.md §6's child-process model.
func Mount(devPath string) error {
	return exec.Command("udisksctl", "mount", "-b", devPath).Run()
}

// Unmount shells out to udisksctl to unmount the block device at devPath.
func Unmount(devPath string) error {
	return exec.Command("udisksctl", "unmount", "-b", devPath).Run()
}
