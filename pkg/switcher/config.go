package switcher

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/robotalks/picoboot.go/pkg/serialport"
)

// Bundled file names under the data directory.
const (
	DefaultPyUF2  = "Pico-MicroPython-20250415-v1.25.0.uf2"
	DefaultCppUF2 = "bootloader_trigger.uf2"
)

// portReadTimeout keeps banner reads polling instead of blocking.
const portReadTimeout = 100 * time.Millisecond

// Config defines the configurations for detection and switching.
type Config struct {
	Port           string
	Baud           int
	Mode           string
	MountBase      string
	DataDir        string
	DetectTimeout  time.Duration
	BootselTimeout time.Duration
	SerialWait     time.Duration
	ForceFlash     bool
	InstallHelpers bool
}

var defaultConfig = Config{
	Port:           "/dev/ttyACM0",
	Baud:           serialport.DefaultBaud,
	Mode:           "auto",
	MountBase:      "/mnt/pico",
	DataDir:        ".",
	DetectTimeout:  1500 * time.Millisecond,
	BootselTimeout: 10 * time.Second,
	SerialWait:     12 * time.Second,
	InstallHelpers: true,
}

func init() {
	if val := os.Getenv("PICOBOOT_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("PICOBOOT_DATA"); val != "" {
		defaultConfig.DataDir = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port of the device console.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.StringVar(&defaultConfig.Mode, "mode", defaultConfig.Mode, "Current firmware mode override: auto|py|cpp|go|bootsel.")
	flag.StringVar(&defaultConfig.MountBase, "mount-base", defaultConfig.MountBase, "Mount point used when the BOOTSEL drive is not auto-mounted.")
	flag.StringVar(&defaultConfig.DataDir, "data", defaultConfig.DataDir, "Directory holding uf2s/ images and py/ helper files.")
	flag.DurationVar(&defaultConfig.DetectTimeout, "detect-timeout", defaultConfig.DetectTimeout, "Wait for serial banner detection.")
	flag.DurationVar(&defaultConfig.BootselTimeout, "bootsel-timeout", defaultConfig.BootselTimeout, "Wait for the BOOTSEL drive after trigger.")
	flag.DurationVar(&defaultConfig.SerialWait, "serial-wait", defaultConfig.SerialWait, "Wait for the serial port after flashing.")
	flag.BoolVar(&defaultConfig.ForceFlash, "force-flash", defaultConfig.ForceFlash, "Flash even when the device is already in the target mode.")
	flag.BoolVar(&defaultConfig.InstallHelpers, "install-helpers", defaultConfig.InstallHelpers, "Install MicroPython helper files after a MicroPython flash.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// ModeOverride parses the configured mode override.
func (c *Config) ModeOverride() (Mode, error) {
	return ParseMode(c.Mode)
}

// PortConfig creates the serial port configuration for this device.
func (c *Config) PortConfig() *serialport.Config {
	return &serialport.Config{
		Device:      c.Port,
		Baud:        c.Baud,
		ReadTimeout: portReadTimeout,
	}
}

// HelperFiles lists the MicroPython helper files to install.
func (c *Config) HelperFiles() []string {
	return []string{
		filepath.Join(c.DataDir, "py", "boot.py"),
		filepath.Join(c.DataDir, "py", "bootloader_trigger.py"),
	}
}

// DefaultUF2 returns the bundled UF2 image path for a target mode,
// empty when none is bundled.
func (c *Config) DefaultUF2(target Mode) string {
	switch target {
	case ModePy:
		return filepath.Join(c.DataDir, "uf2s", DefaultPyUF2)
	case ModeCpp:
		return filepath.Join(c.DataDir, "uf2s", DefaultCppUF2)
	}
	return ""
}
