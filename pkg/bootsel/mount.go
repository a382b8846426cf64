package bootsel

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/golang/glog"
)

const waitPoll = 200 * time.Millisecond

// EnsureMounted mounts the drive at mountBase unless already mounted.
// It returns the effective mountpoint.
func (d *Device) EnsureMounted(mountBase string) (string, error) {
	if d.Mounted() {
		return d.Mountpoint, nil
	}
	if err := os.MkdirAll(mountBase, 0755); err != nil {
		return "", err
	}
	dev := "/dev/" + d.Name
	glog.Infof("MOUNT %s %s", dev, mountBase)
	if out, err := exec.Command("mount", dev, mountBase).CombinedOutput(); err != nil {
		return "", fmt.Errorf("mount %s: %v: %s", dev, err, strings.TrimSpace(string(out)))
	}
	d.Mountpoint = mountBase
	return mountBase, nil
}

// WaitForMount waits for the BOOTSEL drive to show up and be mounted,
// either by the system automounter or at mountBase.
func WaitForMount(ctx context.Context, timeout time.Duration, mountBase string) (string, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		dev, err := Find()
		if err == nil && dev != nil {
			var mp string
			if mp, err = dev.EnsureMounted(mountBase); err == nil {
				return mp, nil
			}
		}
		if err != nil {
			lastErr = err
		}
		if time.Now().After(deadline) {
			if lastErr != nil {
				return "", fmt.Errorf("BOOTSEL drive not available after %s: %v", timeout, lastErr)
			}
			return "", fmt.Errorf("BOOTSEL drive not available after %s", timeout)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(waitPoll):
		}
	}
}
