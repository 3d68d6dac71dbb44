// Package xerr wraps errors with the operation and a formatted context
// message, in the style xgbutil uses for its own Xerr helper. X-protocol
// call sites that return their error go through Wrap so log lines have a
// consistent "op: cause (context)" shape; call sites that only log or
// ignore an error do not use it.
package xerr

import "fmt"

// Wrap annotates err with op and a formatted context message. It returns
// nil if err is nil, so callers can write:
//
//	if err != nil { return xerr.Wrap(err, "CreatePixmap", "window %d", win) }
func Wrap(err error, op, format string, args ...any) error {
	if err == nil {
		return nil
	}
	ctx := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w (%s)", op, err, ctx)
}

// New builds a standalone error in the same shape, for failures that don't
// originate from a wrapped call (e.g. a malformed icon file).
func New(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s", op, fmt.Sprintf(format, args...))
}
