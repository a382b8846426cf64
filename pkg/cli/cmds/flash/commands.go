package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/picoboot.go/pkg/bootsel"
	"github.com/robotalks/picoboot.go/pkg/cli/sh"
	"github.com/robotalks/picoboot.go/pkg/mpremote"
	"github.com/robotalks/picoboot.go/pkg/switcher"
)

var (
	// FlashCmd copies a UF2 onto the BOOTSEL drive.
	FlashCmd = ishell.Cmd{
		Name: "flash",
		Help: "UF2",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("UF2 required"))
				return
			}
			s := sh.ShellFrom(c)
			conf := s.Config
			mountpoint, err := bootsel.WaitForMount(context.Background(), conf.BootselTimeout, conf.MountBase)
			if err != nil {
				c.Err(err)
				return
			}
			info, err := bootsel.CopyUF2(c.Args[0], mountpoint)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(info)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Printf("Flashed %s (%d blocks)\n", c.Args[0], info.Blocks)
		},
	}

	// ToPyCmd switches the device to MicroPython firmware.
	ToPyCmd = ishell.Cmd{
		Name: "to-py",
		Help: "[UF2]",
		Func: sh.MustHavePort(func(c *ishell.Context) {
			switchTo(c, switcher.ModePy)
		}),
	}

	// ToCppCmd switches the device to the trigger firmware.
	ToCppCmd = ishell.Cmd{
		Name: "to-cpp",
		Help: "[UF2]",
		Func: sh.MustHavePort(func(c *ishell.Context) {
			switchTo(c, switcher.ModeCpp)
		}),
	}

	// InstallHelpersCmd copies helper files to a MicroPython device.
	InstallHelpersCmd = ishell.Cmd{
		Name: "install-helpers",
		Help: "",
		Func: sh.MustHavePort(func(c *ishell.Context) {
			conf := sh.ShellFrom(c).Config
			if err := mpremote.InstallHelpers(conf.Port, conf.HelperFiles()); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	}
)

func switchTo(c *ishell.Context, target switcher.Mode) {
	s := sh.ShellFrom(c)
	conf := s.Config
	uf2Path := conf.DefaultUF2(target)
	if len(c.Args) > 0 {
		uf2Path = c.Args[0]
	}
	flashed, err := switcher.Switch(context.Background(), conf, target, uf2Path)
	if err != nil {
		c.Err(err)
		return
	}
	if flashed {
		c.Printf("Switched to %s firmware.\n", target)
	} else {
		c.Printf("Already in %s mode; skipped UF2 flash.\n", target)
	}
	if target == switcher.ModePy {
		// the freshly booted interpreter can take a moment to greet
		verifyConf := *conf
		if verifyConf.DetectTimeout < 2*time.Second {
			verifyConf.DetectTimeout = 2 * time.Second
		}
		mode, err := switcher.Detect(&verifyConf)
		if err != nil {
			mode = switcher.ModeUnknown
		}
		c.Printf("detect: %s\n", mode)
	}
}

func init() {
	sh.AddCmds(
		&FlashCmd,
		&ToPyCmd,
		&ToCppCmd,
		&InstallHelpersCmd,
	)
}
