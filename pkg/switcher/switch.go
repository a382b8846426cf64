// Package switcher detects the running firmware of a Pico-class
// device and walks it through bootloader entry and UF2 reflash.
package switcher

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/bootsel"
	"github.com/robotalks/picoboot.go/pkg/mpremote"
	"github.com/robotalks/picoboot.go/pkg/serialport"
)

// Switch reboots the device into the bootloader and flashes uf2Path.
// It resolves the current mode first, skips the flash when the device
// already runs the target unless ForceFlash is set, and for a
// MicroPython target installs the helper files after the device is
// back on the serial port. It reports whether a flash happened.
func Switch(ctx context.Context, conf *Config, target Mode, uf2Path string) (bool, error) {
	mode, err := conf.ModeOverride()
	if err != nil {
		return false, err
	}
	if mode == ModeUnknown {
		if mode, err = Detect(conf); err != nil {
			return false, err
		}
	}

	if mode == target && !conf.ForceFlash {
		glog.V(2).Infof("already in %s mode, skipping UF2 flash", target)
		return false, installHelpers(ctx, conf, target)
	}

	triggerErr := Trigger(conf, mode)
	if triggerErr != nil && mode != ModePy {
		return false, triggerErr
	}

	mountpoint, err := bootsel.WaitForMount(ctx, conf.BootselTimeout, conf.MountBase)
	if err != nil {
		if triggerErr != nil {
			return false, fmt.Errorf("MicroPython trigger failed: %v", triggerErr)
		}
		return false, err
	}
	if _, err = bootsel.CopyUF2(uf2Path, mountpoint); err != nil {
		return false, err
	}
	return true, installHelpers(ctx, conf, target)
}

func installHelpers(ctx context.Context, conf *Config, target Mode) error {
	if target != ModePy || !conf.InstallHelpers {
		return nil
	}
	if err := serialport.Wait(ctx, conf.Port, conf.SerialWait); err != nil {
		return err
	}
	return mpremote.InstallHelpers(conf.Port, conf.HelperFiles())
}
