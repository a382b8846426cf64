package main

import (
	"github.com/robotalks/picoboot.go/pkg/cli/sh"
	"github.com/robotalks/picoboot.go/pkg/switcher"

	_ "github.com/robotalks/picoboot.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	switcher.SetupFlags()
}

func main() {
	sh.Main()
}
