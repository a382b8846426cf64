package remote

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/console"
	"github.com/robotalks/picoboot.go/pkg/trigger"
)

// KeyPresser injects keys into the watcher as if typed on the console.
type KeyPresser interface {
	Press(keys ...byte)
}

// Agent registers the console watcher over MQTT.
type Agent struct {
	Queue   *Queue
	Info    Info
	Console KeyPresser

	metaJSON string
}

// NewAgent creates an Agent.
func NewAgent(brokerURL string, info Info, con KeyPresser) (*Agent, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		panic(err)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("picoboot:" + info.Ref.Name())
	}
	a := &Agent{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		Console:  con,
		metaJSON: string(meta),
	}
	a.Queue.OnConnect = func(*Queue) { a.onConnected() }
	return a, nil
}

// SendEvent publishes one watcher event.
func (a *Agent) SendEvent(ctx context.Context, ev *Event) error {
	encoded, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	a.Queue.Pub(a.Info.Ref.Name()+"/msg", encoded)
	return nil
}

// HandleEvent implements console.EventHandler.
func (a *Agent) HandleEvent(ctx context.Context, r trigger.Result) {
	ev := EventFromResult(r)
	if ev == nil {
		return
	}
	if err := a.SendEvent(ctx, ev); err != nil {
		glog.Errorf("send event error: %v", err)
	}
}

// Run implements Runnable.
func (a *Agent) Run(ctx context.Context) error {
	a.Queue.Sub(a.Info.Ref.Name()+"/cmd", a.handleCommand)
	a.Queue.Connect()
	<-ctx.Done()
	a.Queue.PubWith(a.Info.Ref.Name()+"/meta", nil, 1, true)
	a.Queue.Close()
	return nil
}

func (a *Agent) onConnected() {
	a.Queue.PubWith(a.Info.Ref.Name()+"/meta", []byte(a.metaJSON), 1, true)
	a.SendEvent(context.Background(), &Event{Event: EventBanner, Tag: console.FirmwareTag})
}

func (a *Agent) handleCommand(topic string, payload []byte) {
	cmd, err := DecodeCommand(payload)
	if err != nil {
		glog.Errorf("invalid command: %v", err)
		return
	}
	glog.V(2).Infof("press %q", cmd.Keys)
	if con := a.Console; con != nil {
		con.Press([]byte(cmd.Keys)...)
	}
}
