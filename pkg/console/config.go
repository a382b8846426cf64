package console

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/picoboot.go/pkg/serialport"
	"github.com/robotalks/picoboot.go/pkg/trigger"
	"github.com/robotalks/picoboot.go/pkg/usbboot"
)

// Config defines the configurations for the console watcher.
// The trigger sequence itself is compiled in and not configurable.
type Config struct {
	Device       string
	Baud         int
	Stdio        bool
	PollInterval time.Duration
	IdleReset    time.Duration
}

var defaultConfig = Config{
	Device:       "/dev/ttyGS0",
	Baud:         serialport.DefaultBaud,
	PollInterval: DefaultPollInterval,
}

func init() {
	if val := os.Getenv("PICOBOOT_CONSOLE"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "console", defaultConfig.Device, "Serial console device.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial console baud rate.")
	flag.BoolVar(&defaultConfig.Stdio, "stdio", defaultConfig.Stdio, "Watch stdin/stdout instead of a serial device.")
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Idle wait between console polls.")
	flag.DurationVar(&defaultConfig.IdleReset, "idle-reset", defaultConfig.IdleReset, "Discard a partial key sequence after this idle time, 0 to keep it forever.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConsole creates a Console from the config.
func (c *Config) NewConsole(boot usbboot.Entry) (*Console, error) {
	con := NewConsole(nil, trigger.NewWatcher(nil), boot)
	con.PollInterval = c.PollInterval
	con.IdleReset = c.IdleReset
	if c.Stdio {
		con.ReadWriter = stdio{}
		return con, nil
	}
	port, err := serialport.Open(&serialport.Config{
		Device:      c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.PollInterval,
	})
	if err != nil {
		return nil, err
	}
	con.ReadWriter = port
	con.ReadTimeout = true
	return con, nil
}

// MustNewConsole creates a Console and fails on error.
func (c *Config) MustNewConsole(boot usbboot.Entry) *Console {
	con, err := c.NewConsole(boot)
	if err != nil {
		log.Fatalln(err)
	}
	return con
}

// stdio adapts stdin/stdout as the console stream.
type stdio struct{}

func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdio) Close() error {
	return os.Stdin.Close()
}
