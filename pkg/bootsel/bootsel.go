// Package bootsel operates the RP2 BOOTSEL mass-storage drive.
package bootsel

import (
	"fmt"
	"os/exec"
	"strings"

	shlex "github.com/flynn-archive/go-shlex"
)

// Label is the volume label of the RP2 BOOTSEL drive.
const Label = "RPI-RP2"

// Device is a block device in BOOTSEL mass-storage mode.
type Device struct {
	Name       string
	Mountpoint string
}

// Mounted indicates the drive is mounted.
func (d *Device) Mounted() bool {
	return d.Mountpoint != ""
}

// ParseLine parses one `lsblk -P` line of KEY="VALUE" fields.
func ParseLine(line string) (map[string]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parse lsblk line: %v", err)
	}
	fields := make(map[string]string, len(tokens))
	for _, token := range tokens {
		if kv := strings.SplitN(token, "=", 2); len(kv) == 2 {
			fields[kv[0]] = kv[1]
		}
	}
	return fields, nil
}

// FindIn scans lsblk output for the BOOTSEL drive.
// It returns nil when no drive is listed.
func FindIn(out []byte) (*Device, error) {
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		if fields["LABEL"] == Label {
			return &Device{Name: fields["NAME"], Mountpoint: fields["MOUNTPOINT"]}, nil
		}
	}
	return nil, nil
}

// Find locates the BOOTSEL drive using lsblk.
func Find() (*Device, error) {
	out, err := exec.Command("lsblk", "-P", "-n", "-o", "NAME,LABEL,MOUNTPOINT").Output()
	if err != nil {
		return nil, fmt.Errorf("lsblk: %v", err)
	}
	return FindIn(out)
}
