package xconn

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// InstallDefaultErrorHandler wires the process-wide error handler that
// ignores a specific allow-list of races during normal operation and all
// errors during shutdown, per spec.md §4.D and §7.
func (c *Conn) InstallDefaultErrorHandler() {
	c.currentHandler = c.defaultHandler
	xevent.ErrorHandlerSet(c.XU, c.defaultHandler)
}

func (c *Conn) defaultHandler(err xgb.Error) {
	if c.ShuttingDown() {
		return // spec.md §7: any X error after begin_shutdown() is silently suppressed
	}
	if isAllowlistedRace(err) {
		logging.L.Printf("xconn: ignored benign X error: %v", err)
		return
	}
	logging.L.Printf("xconn: X protocol error: %v", err)
}

// ScopedSwallow installs a temporary error handler that ignores the given
// X error codes for the duration of fn, then restores whatever handler was
// in place before. This is used around pixmap/picture/damage creation for
// override-redirect windows that can vanish microseconds after mapping
// (spec.md §4.C), and is the general mechanism behind every "race against
// client lifetime" entry in spec.md §7's error table.
func (c *Conn) ScopedSwallow(codes []string, fn func()) {
	prev := c.currentHandler
	scoped := func(err xgb.Error) {
		name := errName(err)
		for _, code := range codes {
			if name == code {
				return // swallowed
			}
		}
		if prev != nil {
			prev(err)
		}
	}
	c.currentHandler = scoped
	xevent.ErrorHandlerSet(c.XU, scoped)
	defer func() {
		c.currentHandler = prev
		if prev != nil {
			xevent.ErrorHandlerSet(c.XU, prev)
		} else {
			xevent.ErrorHandlerSet(c.XU, c.defaultHandler)
		}
	}()
	fn()
}

// errName extracts a short error-code name for comparison against
// spec.md §7's allow-list (BadWindow, BadDrawable, BadMatch, BadDamage,
// RenderBadPicture). xgb's per-extension error values print their type
// name as the first word of Error().
func errName(err xgb.Error) string {
	s := err.Error()
	for i, r := range s {
		if r == ' ' || r == '{' || r == ':' {
			return s[:i]
		}
	}
	return s
}

func isAllowlistedRace(err xgb.Error) bool {
	switch errName(err) {
	case "BadWindow", "BadDrawable", "BadMatch", "BadDamage", "RenderBadPicture", "BadPixmap":
		return true
	default:
		return false
	}
}
