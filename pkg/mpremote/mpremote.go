// Package mpremote shells out to the mpremote tool for MicroPython devices.
package mpremote

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

// Bin is the mpremote executable.
var Bin = "mpremote"

// CommandError reports a failed mpremote invocation.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

// Error implements error.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("mpremote %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := lastLine(e.Output); s != "" {
		msg += ": " + s
	}
	return msg
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Run executes one mpremote command and captures its output.
func Run(args ...string) (string, error) {
	glog.V(2).Infof("EXEC %s %s", Bin, strings.Join(args, " "))
	out, err := exec.Command(Bin, args...).CombinedOutput()
	if err != nil {
		return string(out), &CommandError{Args: args, Output: string(out), Err: err}
	}
	return string(out), nil
}

// Probe checks the port responds as MicroPython.
func Probe(port string) bool {
	_, err := Run("connect", port, "exec", "print('FW:PY')")
	return err == nil
}

// TriggerBootloader runs the helper module that enters the bootloader
// on import. The device usually detaches before mpremote exits
// cleanly, so the returned error is advisory.
func TriggerBootloader(port string) error {
	_, err := Run("connect", port, "exec", "import bootloader_trigger")
	return err
}

// InstallHelpers copies helper files onto the MicroPython filesystem.
func InstallHelpers(port string, files []string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("missing helper file %s", file)
		}
	}
	for _, file := range files {
		if _, err := Run("connect", port, "fs", "cp", file, ":"); err != nil {
			return err
		}
	}
	return nil
}
