package sh

import (
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/picoboot.go/pkg/serialport"
	"github.com/robotalks/picoboot.go/pkg/switcher"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *switcher.Config
}

const (
	shellKey     = "$shell"
	noPortPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *switcher.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.updatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustHavePort wraps command func requiring a selected port.
func MustHavePort(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Config.Port == "" {
			c.Err(fmt.Errorf("no port selected"))
			return
		}
		fn(c)
	}
}

// UsePort selects the serial port for device commands.
func (s *Shell) UsePort(port string) {
	s.Config.Port = port
	s.updatePrompt()
}

func (s *Shell) updatePrompt() {
	if s.Config.Port == "" {
		s.Shell.SetPrompt(noPortPrompt)
		return
	}
	s.Shell.SetPrompt(fmt.Sprintf("[%s] > ", s.Config.Port))
}

// SelectPort enumerates candidate ports and asks for a choice.
// It returns empty when no port is present.
func (s *Shell) SelectPort() (string, error) {
	ports, err := serialport.List()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", nil
	}
	var index int
	if len(ports) > 1 {
		if !s.Interactive {
			return "", fmt.Errorf("more than 1 ports found in non-interactive mode")
		}
		index = s.Shell.MultiChoice(ports, "Which port to use?")
	}
	return ports[index], nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(switcher.NewConfig()).Run(flag.Args()...)
}
