package switcher

import (
	"errors"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/mpremote"
	"github.com/robotalks/picoboot.go/pkg/serialport"
	"github.com/robotalks/picoboot.go/pkg/trigger"
)

// ErrUnknownMode indicates the running firmware could not be
// determined and no override was given.
var ErrUnknownMode = errors.New("could not detect current mode, use -mode py|cpp|go|bootsel to override")

// TriggerKeys writes the trigger sequence to the console stream.
// Empty keys fall back to the compiled-in sequence.
func TriggerKeys(w io.Writer, keys trigger.Sequence) error {
	if len(keys) == 0 {
		keys = trigger.Sequence(trigger.DefaultKeys)
	}
	_, err := w.Write(keys)
	return err
}

// TriggerPort opens the console port and sends the trigger sequence.
func TriggerPort(conf *serialport.Config, keys trigger.Sequence) error {
	port, err := serialport.Open(conf)
	if err != nil {
		return err
	}
	defer port.Close()
	return TriggerKeys(port, keys)
}

// Trigger reboots the device into the bootloader from mode. For a
// MicroPython device the returned error is advisory: the device
// detaches before mpremote exits cleanly, so a failed trigger is
// confirmed only when the BOOTSEL drive never shows up.
func Trigger(conf *Config, mode Mode) error {
	switch mode {
	case ModePy:
		glog.V(2).Info("triggering BOOTSEL via MicroPython helper")
		return mpremote.TriggerBootloader(conf.Port)
	case ModeCpp, ModeGo:
		glog.V(2).Infof("triggering BOOTSEL from %s firmware", mode)
		return TriggerPort(conf.PortConfig(), nil)
	case ModeBootsel:
		glog.V(2).Info("already in BOOTSEL mode, skipping trigger")
		return nil
	}
	return ErrUnknownMode
}
