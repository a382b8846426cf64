package usbboot

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/golang/glog"
)

// ErrNoCommand indicates no bootloader command is configured.
var ErrNoCommand = errors.New("no bootloader command")

// Entry enters the USB mass-storage (UF2) bootloader. Entering is
// irreversible for the running system: the device detaches and comes
// back as a flash drive. The two mask arguments are reserved
// pass-throughs of the underlying reset primitive (activity LED mask
// and interface disable mask); callers pass zero and nothing here
// interprets them.
type Entry interface {
	EnterBootloader(activityMask, disableMask uint32) error
}

// EntryFunc is func type of Entry.
type EntryFunc func(activityMask, disableMask uint32) error

// EnterBootloader implements Entry.
func (f EntryFunc) EnterBootloader(activityMask, disableMask uint32) error {
	return f(activityMask, disableMask)
}

// ExecEntry enters the bootloader by executing a command.
type ExecEntry struct {
	Argv        []string
	AppendMasks bool
}

// NewExecEntry creates an ExecEntry.
func NewExecEntry(argv ...string) *ExecEntry {
	return &ExecEntry{Argv: argv}
}

// EnterBootloader implements Entry.
func (e *ExecEntry) EnterBootloader(activityMask, disableMask uint32) error {
	argv := e.argv(activityMask, disableMask)
	if len(argv) == 0 {
		return ErrNoCommand
	}
	glog.Infof("EXEC %v", argv)
	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		if out = bytes.TrimSpace(out); len(out) > 0 {
			return fmt.Errorf("%s: %v: %s", argv[0], err, out)
		}
		return fmt.Errorf("%s: %v", argv[0], err)
	}
	return nil
}

func (e *ExecEntry) argv(activityMask, disableMask uint32) []string {
	if len(e.Argv) == 0 || !e.AppendMasks {
		return e.Argv
	}
	return append(append([]string(nil), e.Argv...),
		strconv.FormatUint(uint64(activityMask), 10),
		strconv.FormatUint(uint64(disableMask), 10))
}
