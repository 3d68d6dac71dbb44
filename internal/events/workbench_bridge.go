package events

import (
	"path/filepath"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/diskdrives"
	"github.com/nsklaus/amiwb-sub000/internal/workbench"
)

// wbFor returns the workbench.Canvas bridged to cv, scanning cv's directory
// on first use. cv must be a Desktop or Window canvas backing a directory
// path (cv.View.Path); other kinds never appear here.
func (l *Loop) wbFor(cv *canvas.Canvas) (*workbench.Canvas, error) {
	if wb, ok := l.wb[cv]; ok {
		return wb, nil
	}
	wb, err := workbench.Scan(cv.View.Path, cv.View.ShowHidden)
	if err != nil {
		return nil, err
	}
	l.wb[cv] = wb
	return wb, nil
}

// forgetWB drops cv's bridged workbench.Canvas, called from onDestroyNotify
// once cv itself is torn down.
func (l *Loop) forgetWB(cv *canvas.Canvas) {
	delete(l.wb, cv)
}

// CreateIconifiedIcon implements intuition.IconifyHandler: it adds an
// Iconified-kind icon to the desktop's workbench canvas and returns it as
// the opaque handle intuition.Restore will later hand back to
// DestroyIconifiedIcon.
func (l *Loop) CreateIconifiedIcon(title string) any {
	desktop := l.store.Desktop()
	if desktop == nil {
		return nil
	}
	wb, err := l.wbFor(desktop)
	if err != nil {
		return nil
	}
	x, y := workbench.NextCascadePosition()
	ic := &workbench.Icon{
		Name: title,
		Kind: workbench.Iconified,
		X:    x, Y: y,
	}
	wb.Icons = append(wb.Icons, ic)
	l.comp.NoteCanvasDamage(desktop)
	return ic
}

// DestroyIconifiedIcon implements intuition.IconifyHandler: it removes the
// icon handle returned earlier by CreateIconifiedIcon from the desktop.
func (l *Loop) DestroyIconifiedIcon(handle any) {
	ic, ok := handle.(*workbench.Icon)
	if !ok || ic == nil {
		return
	}
	desktop := l.store.Desktop()
	if desktop == nil {
		return
	}
	wb, err := l.wbFor(desktop)
	if err != nil {
		return
	}
	for i, other := range wb.Icons {
		if other == ic {
			wb.Icons = append(wb.Icons[:i], wb.Icons[i+1:]...)
			break
		}
	}
	l.comp.NoteCanvasDamage(desktop)
}

// SeedDriveIcons adds Device-kind icons for media already mounted at
// startup, called once with drives.Initial() after the desktop canvas
// exists, before the event loop starts draining drives.Events().
func (l *Loop) SeedDriveIcons(evs []diskdrives.Event) {
	l.onDriveEvents(evs)
}

// onDriveEvents turns mount-point add/remove events into Device-kind icons
// on the desktop, per spec.md §4.E's "device-mounted root → Device" rule.
func (l *Loop) onDriveEvents(evs []diskdrives.Event) {
	if len(evs) == 0 {
		return
	}
	desktop := l.store.Desktop()
	if desktop == nil {
		return
	}
	wb, err := l.wbFor(desktop)
	if err != nil {
		return
	}
	for _, ev := range evs {
		if ev.Added {
			x, y := workbench.NextCascadePosition()
			wb.Icons = append(wb.Icons, &workbench.Icon{
				Name: filepath.Base(ev.MountPoint),
				Path: ev.MountPoint,
				Kind: workbench.Device,
				X:    x, Y: y,
			})
			continue
		}
		for i, ic := range wb.Icons {
			if ic.Kind == workbench.Device && ic.Path == ev.MountPoint {
				wb.Icons = append(wb.Icons[:i], wb.Icons[i+1:]...)
				break
			}
		}
	}
	l.comp.NoteCanvasDamage(desktop)
}
