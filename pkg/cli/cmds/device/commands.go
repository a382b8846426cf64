package device

import (
	"encoding/json"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/picoboot.go/pkg/cli/sh"
	"github.com/robotalks/picoboot.go/pkg/serialport"
	"github.com/robotalks/picoboot.go/pkg/switcher"
	"github.com/robotalks/picoboot.go/pkg/trigger"
)

var (
	// PortsCmd lists candidate serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"p"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			ports, err := serialport.List()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if ports == nil {
					// in case ports is nil, make it empty slice.
					ports = []string{}
				}
				out, err := json.Marshal(ports)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(ports) == 0 {
				c.Println("No ports found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// UseCmd selects the serial port.
	UseCmd = ishell.Cmd{
		Name:    "use",
		Aliases: []string{"u"},
		Help:    "[PORT]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if len(c.Args) > 0 {
				s.UsePort(c.Args[0])
				return
			}
			port, err := s.SelectPort()
			if err != nil {
				c.Err(err)
				return
			}
			if port == "" {
				c.Err(fmt.Errorf("no port found"))
				return
			}
			s.UsePort(port)
		},
	}

	// DetectCmd detects the current firmware mode.
	DetectCmd = ishell.Cmd{
		Name: "detect",
		Help: "",
		Func: sh.MustHavePort(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			mode, err := switcher.Detect(s.Config)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(map[string]switcher.Mode{"mode": mode})
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Println(string(mode))
		}),
	}

	// TriggerCmd sends the bootloader trigger sequence.
	TriggerCmd = ishell.Cmd{
		Name:    "trigger",
		Aliases: []string{"t"},
		Help:    "[KEYS]",
		Func: sh.MustHavePort(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			var keys trigger.Sequence
			if len(c.Args) > 0 {
				keys = trigger.Sequence(c.Args[0])
			}
			if err := switcher.TriggerPort(s.Config.PortConfig(), keys); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	}
)

func init() {
	sh.AddCmds(
		&PortsCmd,
		&UseCmd,
		&DetectCmd,
		&TriggerCmd,
	)
}
