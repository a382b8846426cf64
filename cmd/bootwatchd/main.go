package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"

	"github.com/robotalks/picoboot.go/pkg/console"
	fx "github.com/robotalks/picoboot.go/pkg/framework"
	"github.com/robotalks/picoboot.go/pkg/remote"
	"github.com/robotalks/picoboot.go/pkg/usbboot"
)

func init() {
	remote.SetDeviceType("bootwatch", remote.Meta{Description: "Bootloader Trigger Watcher"})
	remote.SetupFlags()
	console.SetupFlags()
	usbboot.SetupFlags()
}

func main() {
	flag.Parse()

	boot := usbboot.NewConfig().MustNewEntry()
	con := console.NewConfig().MustNewConsole(boot)
	agent := remote.NewConfig().MustNewAgent(con)

	ctx, cancel := context.WithCancel(context.Background())
	runner := fx.NewRunnerWith(ctx).HandleSignals()
	if agent != nil {
		con.Handler = agent
		runner.Go(fx.NamedRun("agent", agent))
	}
	// the watcher going down takes the agent with it
	runner.Go(fx.NamedRun("console", fx.RunnableFunc(func(ctx context.Context) error {
		defer cancel()
		return con.Run(ctx)
	})))
	runner.RunOrFail()
}
