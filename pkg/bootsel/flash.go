package bootsel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/uf2"
)

// CopyUF2 validates a UF2 image and copies it onto the mounted drive.
// The device reboots into the new firmware as soon as the copy
// completes, unmounting itself.
func CopyUF2(uf2Path, mountpoint string) (*uf2.Info, error) {
	info, err := uf2.InspectFile(uf2Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", uf2Path, err)
	}
	src, err := os.Open(uf2Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	dst := filepath.Join(mountpoint, filepath.Base(uf2Path))
	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(out, src); err != nil {
		out.Close()
		return nil, fmt.Errorf("copy to %s: %v", dst, err)
	}
	if err = out.Close(); err != nil {
		return nil, err
	}
	syscall.Sync()
	glog.Infof("copied %s to %s (%d blocks)", uf2Path, dst, info.Blocks)
	return info, nil
}
