package usbboot

import (
	"flag"
	"fmt"
	"log"

	shlex "github.com/flynn-archive/go-shlex"
)

// Config defines the configurations for bootloader entry.
type Config struct {
	BootCmd     string
	AppendMasks bool
}

var defaultConfig = Config{
	BootCmd: "reboot bootloader",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BootCmd, "boot-cmd", defaultConfig.BootCmd, "Command executed to enter the UF2 bootloader.")
	flag.BoolVar(&defaultConfig.AppendMasks, "boot-masks", defaultConfig.AppendMasks, "Append the two reserved mask arguments to the command.")
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

// NewEntry creates an Entry from the config.
func (c *Config) NewEntry() (Entry, error) {
	argv, err := shlex.Split(c.BootCmd)
	if err != nil {
		return nil, fmt.Errorf("parse boot command: %v", err)
	}
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}
	return &ExecEntry{Argv: argv, AppendMasks: c.AppendMasks}, nil
}

// MustNewEntry creates an Entry and fails on error.
func (c *Config) MustNewEntry() Entry {
	entry, err := c.NewEntry()
	if err != nil {
		log.Fatalln(err)
	}
	return entry
}
