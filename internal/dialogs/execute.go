package dialogs

import (
	"os/exec"

	"github.com/mattn/go-shellwords"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// Launch parses a shell-style command line (honoring quoting) and starts
// it detached, per spec.md §4.H's Execute dialog and §6's "fork+exec"
// child-process model.
func Launch(commandLine string) (*exec.Cmd, error) {
	args, err := shellwords.Parse(commandLine)
	if err != nil || len(args) == 0 {
		logging.L.Printf("dialogs.Launch: parse %q: %v", commandLine, err)
		return nil, err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
