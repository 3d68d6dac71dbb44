// Command amiwb is the process entrypoint: it loads configuration, opens
// the X connection, builds the canvas store/compositor/window manager/
// menubar singletons, seeds the desktop, and runs the event loop, per
// spec.md §6 and §9. Teardown runs in the reverse order of construction.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/compositor"
	"github.com/nsklaus/amiwb-sub000/internal/config"
	"github.com/nsklaus/amiwb-sub000/internal/diskdrives"
	"github.com/nsklaus/amiwb-sub000/internal/events"
	"github.com/nsklaus/amiwb-sub000/internal/intuition"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/menu"
	"github.com/nsklaus/amiwb-sub000/internal/surface"
	"github.com/nsklaus/amiwb-sub000/internal/textmetrics"
	"github.com/nsklaus/amiwb-sub000/internal/wallpaper"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
)

const menubarHeight = 20

func main() {
	if err := run(); err != nil {
		logging.L.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("main: UserHomeDir: %w", err)
	}

	logFile, err := logging.Init(filepath.Join(home, ".config", "amiwb", "amiwb.log"), logging.DefaultMaxBytes)
	if err != nil {
		return fmt.Errorf("main: logging.Init: %w", err)
	}
	defer logFile.Close()

	cfg, err := config.Load(config.Path())
	if err != nil {
		logging.L.Printf("main: config.Load: %v (using defaults)", err)
	}
	customMenus, err := config.LoadCustomMenus(config.ToolsdaemonPath())
	if err != nil {
		logging.L.Printf("main: config.LoadCustomMenus: %v", err)
	}

	conn, err := xconn.Open()
	if err != nil {
		return fmt.Errorf("main: xconn.Open: %w", err)
	}

	store := canvas.NewStore()

	comp, err := compositor.New(conn, store, cfg.TargetFPS, cfg.RenderMode)
	if err != nil {
		return fmt.Errorf("main: compositor.New: %w", err)
	}

	if pic, err := loadWallpaper(conn, cfg.WallpaperDesktop, conn.ScreenW, conn.ScreenH); err != nil {
		logging.L.Printf("main: desktop wallpaper: %v", err)
	} else if pic != 0 {
		comp.SetWallpaper(pic)
	}
	if pic, err := loadWallpaper(conn, cfg.WallpaperWindow, conn.ScreenW, conn.ScreenH); err != nil {
		logging.L.Printf("main: window wallpaper: %v", err)
	} else if pic != 0 {
		comp.SetWindowWallpaper(pic)
	}

	face := textmetrics.NewFace(12)

	wm := intuition.New(conn, store, comp)
	wm.SetFace(face)

	desktop := store.Create(canvas.Desktop, 0, 0, conn.ScreenW, conn.ScreenH, conn.Root, 0, home)
	comp.SetupCanvas(desktop, conn.ScreenDepth)

	barCv := createOverlayWindow(conn, comp, store, canvas.Menu, 0, 0, conn.ScreenW, menubarHeight)
	if barCv == nil {
		return fmt.Errorf("main: failed to create menubar window")
	}
	bar := menu.NewBar(barCv, systemMenuTree(), customMenuTree(customMenus))
	wm.SetMenubar(barCv)

	drives, err := diskdrives.New()
	if err != nil {
		logging.L.Printf("main: diskdrives.New: %v (device icons disabled)", err)
		drives = nil
	}

	loop := events.New(conn, store, comp, wm, bar, face, cfg, drives)
	loop.SetDispatchTable(loop.BuildDispatchTable())

	if err := wm.Bootstrap(); err != nil {
		return fmt.Errorf("main: WM.Bootstrap: %w", err)
	}
	if drives != nil {
		loop.SeedDriveIcons(drives.Initial())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sig
		loop.Quit()
	}()

	runErr := loop.Run()

	conn.BeginShutdown()
	if drives != nil {
		drives.Close()
	}
	for _, cv := range store.All() {
		comp.DestroyCanvas(cv)
	}
	comp.Teardown()
	xproto.FreeGC(conn.XU.Conn(), conn.GC)
	conn.XU.Conn().Close()

	return runErr
}

// loadWallpaper decodes path and uploads it as a persistent screen-sized
// Picture; an empty path or decode failure yields a zero Picture, and the
// caller leaves the compositor painting opaque black instead, per
// spec.md §6's "wallpaper loading is an external collaborator" boundary.
func loadWallpaper(conn *xconn.Conn, path string, w, h int) (render.Picture, error) {
	if path == "" {
		return 0, nil
	}
	img, err := wallpaper.Load(path, w, h)
	if err != nil {
		return 0, err
	}
	return surface.UploadStatic(conn, img, w, h)
}

// createOverlayWindow makes an override-redirect top-level window owned
// entirely by amiwb (the menubar), mirroring intuition.Reparent's frame
// half with no client to reparent, since startup's Desktop/Menubar
// canvases predate the event loop that owns createSyntheticFrame.
func createOverlayWindow(conn *xconn.Conn, comp *compositor.Compositor, store *canvas.Store, kind canvas.Kind, x, y, w, h int) *canvas.Canvas {
	c := conn.XU.Conn()
	win, err := xproto.NewWindowId(c)
	if err != nil {
		logging.L.Printf("main.createOverlayWindow: alloc id: %v", err)
		return nil
	}
	if err := xproto.CreateWindowChecked(c, conn.ScreenDepth, win, conn.Root,
		int16(x), int16(y), uint16(w), uint16(h), 0,
		xproto.WindowClassInputOutput, 0,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{0, 1, uint32(xproto.EventMaskExposure | xproto.EventMaskButtonPress |
			xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)},
	).Check(); err != nil {
		logging.L.Printf("main.createOverlayWindow: CreateWindow: %v", err)
		return nil
	}
	xproto.MapWindow(c, win)

	cv := store.Create(kind, x, y, w, h, win, 0, "")
	comp.SetupCanvas(cv, conn.ScreenDepth)
	return cv
}

// systemMenuTree builds the four permanent system menus, wired to
// events.BuildDispatchTable's (parent_index, item_index) scheme, per
// spec.md §4.F.
func systemMenuTree() []*menu.Item {
	workbench := &menu.Item{
		Label: "Workbench", Enabled: true, ParentIndex: -1, ItemIndex: 0,
		Children: []*menu.Item{
			{Label: "Execute", Enabled: true, ParentIndex: 0, ItemIndex: 0},
			{Label: "About", Enabled: true, ParentIndex: 0, ItemIndex: 1},
			{Label: "Show Hidden", Enabled: true, ParentIndex: 0, ItemIndex: 2},
			{Label: "View By", Enabled: true, ParentIndex: 0, ItemIndex: 3},
			{Label: "Suspend", Enabled: true, ParentIndex: 0, ItemIndex: 4},
			{Label: "Restart", Enabled: true, ParentIndex: 0, ItemIndex: 5},
			{Label: "Quit", Enabled: true, ParentIndex: 0, ItemIndex: 6},
		},
	}
	window := &menu.Item{
		Label: "Window", Enabled: true, ParentIndex: -1, ItemIndex: 1,
		Children: []*menu.Item{
			{Label: "New Drawer", Enabled: true, ParentIndex: 1, ItemIndex: 0},
			{Label: "Open Parent", Enabled: true, ParentIndex: 1, ItemIndex: 1},
			{Label: "Close", Enabled: true, ParentIndex: 1, ItemIndex: 2},
			{Label: "Iconify", Enabled: true, ParentIndex: 1, ItemIndex: 3},
			{Label: "Cycle", Enabled: true, ParentIndex: 1, ItemIndex: 4},
		},
	}
	icons := &menu.Item{
		Label: "Icons", Enabled: true, ParentIndex: -1, ItemIndex: 2,
		Children: []*menu.Item{
			{Label: "Open", Enabled: true, ParentIndex: 2, ItemIndex: 0},
			{Label: "Copy", Enabled: true, ParentIndex: 2, ItemIndex: 1},
			{Label: "Rename", Enabled: true, ParentIndex: 2, ItemIndex: 2},
			{Label: "Delete", Enabled: true, ParentIndex: 2, ItemIndex: 3},
			{Label: "Information", Enabled: true, ParentIndex: 2, ItemIndex: 4},
		},
	}
	tools := &menu.Item{
		Label: "Tools", Enabled: true, ParentIndex: -1, ItemIndex: 3,
	}
	return []*menu.Item{workbench, window, icons, tools}
}

// customMenuTree turns toolsdaemonrc's [Name] sections into one top-level
// menu per section. Each leaf's Command field carries its parsed shell
// command line; events.BuildDispatchTable reads it back to wire the
// actual dispatch entry once the tree exists, per spec.md §4.F's "launch
// configured tools" effect.
func customMenuTree(menus []config.CustomMenu) []*menu.Item {
	out := make([]*menu.Item, 0, len(menus))
	for i, m := range menus {
		parentIdx := 100 + i // disjoint from the four system menus' 0-3
		children := make([]*menu.Item, 0, len(m.Labels))
		for j, label := range m.Labels {
			children = append(children, &menu.Item{
				Label: label, Enabled: true, ParentIndex: parentIdx, ItemIndex: j,
				Command: m.Command[j],
			})
		}
		out = append(out, &menu.Item{
			Label: m.Name, Enabled: true, ParentIndex: -1, ItemIndex: parentIdx,
			Children: children,
		})
	}
	return out
}
