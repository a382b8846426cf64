package serialport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is the usual rate of Pico-class CDC consoles.
const DefaultBaud = 115200

// Port is a bidirectional serial stream.
type Port interface {
	io.ReadWriteCloser
	Flush() error
}

// Config defines the configurations for opening a serial port.
// ReadTimeout below 100ms behaves as an immediate poll on POSIX:
// reads return 0 bytes when nothing is pending.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// DefaultConfig creates a Config with common defaults.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 10 * time.Millisecond,
	}
}

// Open opens the serial port.
func Open(conf *Config) (Port, error) {
	baud := conf.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        conf.Device,
		Baud:        baud,
		ReadTimeout: conf.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", conf.Device, err)
	}
	if conf.ReadTimeout > 0 {
		return timeoutPort{port}, nil
	}
	return port, nil
}

// timeoutPort normalizes reads on a port opened with a ReadTimeout:
// the underlying driver reports io.EOF with 0 bytes when the timeout
// expires without data, which a poll loop must not confuse with a
// closed stream. An expired timeout reads as 0 bytes, no error.
type timeoutPort struct {
	Port
}

func (p timeoutPort) Read(b []byte) (int, error) {
	n, err := p.Port.Read(b)
	if n == 0 && err == io.EOF {
		err = nil
	}
	return n, err
}

const waitPoll = 200 * time.Millisecond

// Wait waits for the device node to appear.
func Wait(ctx context.Context, path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("serial port %s not present after %s", path, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitPoll):
		}
	}
}

// DefaultGlobs lists the device patterns scanned by List.
var DefaultGlobs = []string{"/dev/ttyACM*", "/dev/ttyUSB*"}

// List enumerates candidate serial ports.
func List(globs ...string) ([]string, error) {
	if len(globs) == 0 {
		globs = DefaultGlobs
	}
	var ports []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	return ports, nil
}
