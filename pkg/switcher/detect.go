package switcher

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/bootsel"
	"github.com/robotalks/picoboot.go/pkg/mpremote"
	"github.com/robotalks/picoboot.go/pkg/serialport"
)

// Mode identifies the firmware the device is currently running.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeBootsel Mode = "bootsel"
	ModePy      Mode = "py"
	ModeCpp     Mode = "cpp"
	ModeGo      Mode = "go"
)

// ParseMode parses a mode override. Empty and "auto" parse to
// ModeUnknown, which makes Switch detect the mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeUnknown, nil
	case string(ModeBootsel), string(ModePy), string(ModeCpp), string(ModeGo):
		return Mode(s), nil
	}
	return ModeUnknown, fmt.Errorf("unknown mode %q", s)
}

// bannerMarkers maps firmware banner tags to modes.
var bannerMarkers = []struct {
	marker string
	mode   Mode
}{
	{"FW:PY", ModePy},
	{"FW:CPP", ModeCpp},
	{"FW:GO", ModeGo},
}

func modeFromLine(line string) Mode {
	for _, m := range bannerMarkers {
		if strings.Contains(line, m.marker) {
			return m.mode
		}
	}
	return ModeUnknown
}

// DetectBanner reads console output until a known banner marker shows
// up, the reader ends, or the timeout expires. It returns the mode and
// the last line seen. An unterminated trailing line still counts.
// Reads on r are expected to block briefly or end with an error;
// a port opened with a read timeout qualifies.
func DetectBanner(r io.Reader, timeout time.Duration) (Mode, string) {
	var line bytes.Buffer
	var last string
	buf := make([]byte, 64)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b != '\n' {
				line.WriteByte(b)
				continue
			}
			if s := strings.TrimSpace(line.String()); s != "" {
				last = s
				if mode := modeFromLine(s); mode != ModeUnknown {
					return mode, s
				}
			}
			line.Reset()
		}
		if err != nil {
			break
		}
	}
	if s := strings.TrimSpace(line.String()); s != "" {
		last = s
		if mode := modeFromLine(s); mode != ModeUnknown {
			return mode, s
		}
	}
	return ModeUnknown, last
}

// Detect determines the current firmware mode. The order is
// conservative: a present BOOTSEL drive wins, then serial banner
// markers, then a MicroPython probe.
func Detect(conf *Config) (Mode, error) {
	dev, err := bootsel.Find()
	if err != nil {
		return ModeUnknown, err
	}
	if dev != nil {
		glog.V(2).Info("detected BOOTSEL mode via RPI-RP2 device")
		return ModeBootsel, nil
	}

	port, err := serialport.Open(conf.PortConfig())
	if err != nil {
		return ModeUnknown, err
	}
	port.Flush()
	mode, last := DetectBanner(port, conf.DetectTimeout)
	port.Close()
	if mode != ModeUnknown {
		glog.V(2).Infof("detected mode from serial banner: %s (%s)", mode, last)
		return mode, nil
	}
	if last != "" {
		glog.V(2).Infof("no known banner found; last line seen: %s", last)
	}

	if mpremote.Probe(conf.Port) {
		return ModePy, nil
	}
	return ModeUnknown, nil
}
