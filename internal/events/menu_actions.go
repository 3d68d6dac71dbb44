package events

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/dialogs"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/menu"
	"github.com/nsklaus/amiwb-sub000/internal/workbench"
)

// System menu indices, matching the tree cmd/amiwb builds at startup:
// Workbench=0, Window=1, Icons=2, Tools=3, per spec.md §4.F.
const (
	menuWorkbench = 0
	menuWindow    = 1
	menuIcons     = 2
)

// BuildDispatchTable wires the four system menus' items to their effects
// (spec.md §4.F: "open the Execute dialog ... iconify / cycle / close the
// active window, create a new drawer, open the selected icon, trigger
// copy / rename / delete / information ... suspend, restart, quit"). The
// actions close over the loop itself since openDialog, closeCanvas, and
// the workbench bridge are all unexported Loop methods.
func (l *Loop) BuildDispatchTable() menu.DispatchTable {
	table := menu.DispatchTable{
		{menuWorkbench, 0}: l.actionExecute,
		{menuWorkbench, 1}: l.actionAbout,
		{menuWorkbench, 2}: l.actionToggleHidden,
		{menuWorkbench, 3}: l.actionSwitchView,
		{menuWorkbench, 4}: l.actionSuspend,
		{menuWorkbench, 5}: l.actionRestart,
		{menuWorkbench, 6}: l.Quit,

		{menuWindow, 0}: l.actionNewDrawer,
		{menuWindow, 1}: l.actionOpenParent,
		{menuWindow, 2}: l.actionCloseActive,
		{menuWindow, 3}: l.actionIconifyActive,
		{menuWindow, 4}: l.actionCycle,

		{menuIcons, 0}: l.actionOpenSelected,
		{menuIcons, 1}: l.actionCopySelected,
		{menuIcons, 2}: l.actionRenameSelected,
		{menuIcons, 3}: l.actionDeleteSelected,
		{menuIcons, 4}: l.actionInfoSelected,
	}
	// Custom menus (cmd/amiwb's customMenuTree) stash their parsed shell
	// command in each item's Command field; wire every one here since the
	// table is built once the tree already exists, per spec.md §4.F's
	// "launch configured tools" effect.
	for _, top := range l.bar.Custom {
		for _, it := range top.Children {
			cmdline := it.Command
			table[[2]int{it.ParentIndex, it.ItemIndex}] = func() {
				if _, err := dialogs.Launch(cmdline); err != nil {
					logging.L.Printf("events.customMenu: %v", err)
				}
			}
		}
	}
	return table
}

// actionExecute opens the Execute dialog; confirming launches the typed
// command line via dialogs.Launch, per spec.md §4.H.
func (l *Loop) actionExecute() {
	l.openDialog(dialogs.Execute, func(cmdline string) {
		l.closeDialog()
		if _, err := dialogs.Launch(cmdline); err != nil {
			logging.L.Printf("events.actionExecute: %v", err)
		}
	}, l.closeDialog)
}

// aboutText is the Workbench/"About" dialog's static body.
const aboutText = "amiwb\na reparenting window manager, compositor, and workbench"

// actionAbout opens a read-only informational dialog, mirroring
// showJobError's direct dialog-construction pattern.
func (l *Loop) actionAbout() {
	l.closeDialog()
	x := l.conn.ScreenW/2 - dialogW/2
	y := l.conn.ScreenH/2 - dialogH/2
	cv := l.createSyntheticFrame(canvas.Dialog, x, y, dialogW, dialogH)
	if cv == nil {
		return
	}
	l.dialog = dialogs.NewIconInfo(cv, aboutText)
}

// actionToggleHidden flips dotfile visibility on the active directory
// window (or the desktop) and re-scans it, per spec.md §4.F's
// "toggle hidden-file visibility" effect.
func (l *Loop) actionToggleHidden() {
	cv := l.wmActive()
	if cv == nil {
		cv = l.store.Desktop()
	}
	if cv == nil {
		return
	}
	cv.View.ShowHidden = !cv.View.ShowHidden
	wb, err := l.wbFor(cv)
	if err != nil {
		return
	}
	wb.ShowHidden = cv.View.ShowHidden
	if err := wb.Refresh(); err != nil {
		logging.L.Printf("events.actionToggleHidden: %v", err)
		return
	}
	l.comp.NoteCanvasDamage(cv)
}

// actionSwitchView cycles the active directory window between icon and
// name-list layout, per spec.md §4.F's "switch view mode" effect.
func (l *Loop) actionSwitchView() {
	cv := l.wmActive()
	if cv == nil {
		cv = l.store.Desktop()
	}
	if cv == nil {
		return
	}
	if cv.View.ViewMode == canvas.Icons {
		cv.View.ViewMode = canvas.Names
	} else {
		cv.View.ViewMode = canvas.Icons
	}
	l.comp.NoteCanvasDamage(cv)
}

// actionSuspend stops amiwb's own process with SIGSTOP, leaving X clients
// running undecorated until a shell sends SIGCONT, per spec.md §4.F's
// "suspend" effect.
func (l *Loop) actionSuspend() {
	if err := syscall.Kill(os.Getpid(), syscall.SIGSTOP); err != nil {
		logging.L.Printf("events.actionSuspend: %v", err)
	}
}

// actionRestart re-executes the running binary in place, per spec.md §6's
// "restart is implemented by execv-ing the same binary" rule.
func (l *Loop) actionRestart() {
	exe, err := os.Executable()
	if err != nil {
		logging.L.Printf("events.actionRestart: os.Executable: %v", err)
		return
	}
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		logging.L.Printf("events.actionRestart: exec: %v", err)
	}
}

// actionNewDrawer opens a Rename-kind dialog (a single text prompt) whose
// confirmed value becomes a new subdirectory of the active window's
// directory, per spec.md §4.F's "create a new drawer".
func (l *Loop) actionNewDrawer() {
	cv := l.wmActive()
	if cv == nil {
		cv = l.store.Desktop()
	}
	if cv == nil {
		return
	}
	wb, err := l.wbFor(cv)
	if err != nil {
		return
	}
	l.openDialog(dialogs.Rename, func(name string) {
		l.closeDialog()
		if err := wb.NewDrawer(name); err != nil {
			logging.L.Printf("events.actionNewDrawer: %v", err)
			return
		}
		l.comp.NoteCanvasDamage(cv)
	}, l.closeDialog)
}

// actionOpenParent opens the active directory window's parent directory.
func (l *Loop) actionOpenParent() {
	cv := l.wmActive()
	if cv == nil || cv.View.Path == "" {
		return
	}
	l.openDirectory(filepath.Dir(cv.View.Path))
}

func (l *Loop) actionCloseActive() {
	if cv := l.wmActive(); cv != nil {
		l.closeCanvas(cv)
	}
}

func (l *Loop) actionIconifyActive() {
	if cv := l.wmActive(); cv != nil {
		l.wm.Iconify(cv)
	}
}

func (l *Loop) actionCycle() {
	l.wm.CycleFocus()
}

// activeWorkbench resolves the workbench.Canvas an Icons-menu action
// applies to: the active Window canvas if one is focused, else the
// desktop, per Workbench's spatial convention that icon operations follow
// the front window.
func (l *Loop) activeWorkbench() (*canvas.Canvas, *workbench.Canvas, bool) {
	cv := l.wmActive()
	if cv == nil {
		cv = l.store.Desktop()
	}
	if cv == nil {
		return nil, nil, false
	}
	wb, err := l.wbFor(cv)
	if err != nil {
		return nil, nil, false
	}
	return cv, wb, true
}

func (l *Loop) actionOpenSelected() {
	cv, wb, ok := l.activeWorkbench()
	if !ok {
		return
	}
	sel := wb.Selected()
	if len(sel) == 0 {
		return
	}
	l.activateIcon(cv, wb, sel[0])
}

// actionCopySelected duplicates each selected icon's filesystem entry
// within the same directory as a tracked child process, per spec.md §4.F's
// "trigger copy" effect and §4.G's "child processes for potentially slow
// file operations" model; completion is reported through onJobDone like
// any other tracked job.
func (l *Loop) actionCopySelected() {
	cv, wb, ok := l.activeWorkbench()
	if !ok {
		return
	}
	for _, ic := range wb.Selected() {
		dest := copyDestination(wb.Dir, ic.Name)
		if _, err := l.jobs.Start(jobCopy, "cp", "-r", ic.Path, dest); err != nil {
			logging.L.Printf("events.actionCopySelected: %v", err)
		}
	}
	l.comp.NoteCanvasDamage(cv)
}

// copyDestination picks "name copy", "name copy 2", ... inside dir, the
// first candidate that doesn't already exist.
func copyDestination(dir, name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	candidate := filepath.Join(dir, base+" copy"+ext)
	for n := 2; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s copy %d%s", base, n, ext))
	}
}

func (l *Loop) actionRenameSelected() {
	cv, wb, ok := l.activeWorkbench()
	if !ok {
		return
	}
	sel := wb.Selected()
	if len(sel) == 0 {
		return
	}
	ic := sel[0]
	d := l.openDialog(dialogs.Rename, func(newName string) {
		l.closeDialog()
		if err := wb.Rename(ic, newName); err != nil {
			logging.L.Printf("events.actionRenameSelected: %v", err)
			return
		}
		l.comp.NoteCanvasDamage(cv)
	}, l.closeDialog)
	if d != nil {
		d.SetInput(ic.Name)
	}
}

func (l *Loop) actionDeleteSelected() {
	cv, wb, ok := l.activeWorkbench()
	if !ok {
		return
	}
	sel := wb.Selected()
	if len(sel) == 0 {
		return
	}
	d := l.openDialog(dialogs.Confirm, func(string) {
		l.closeDialog()
		for _, ic := range sel {
			if err := wb.Delete(ic); err != nil {
				logging.L.Printf("events.actionDeleteSelected: %v", err)
			}
		}
		l.comp.NoteCanvasDamage(cv)
	}, l.closeDialog)
	if d != nil {
		d.SetInput("Delete selected icon(s)?")
	}
}

func (l *Loop) actionInfoSelected() {
	_, wb, ok := l.activeWorkbench()
	if !ok {
		return
	}
	sel := wb.Selected()
	if len(sel) == 0 {
		return
	}
	l.closeDialog()
	x := l.conn.ScreenW/2 - dialogW/2
	y := l.conn.ScreenH/2 - dialogH/2
	dcv := l.createSyntheticFrame(canvas.Dialog, x, y, dialogW, dialogH)
	if dcv == nil {
		return
	}
	l.dialog = dialogs.NewIconInfo(dcv, sel[0].Path)
}
