package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robotalks/picoboot.go/pkg/trigger"
)

// Event kinds published by the agent.
const (
	EventBanner   = "banner"
	EventProgress = "progress"
	EventReset    = "reset"
	EventExpired  = "expired"
	EventFired    = "fired"
)

var (
	// ErrNotEvent indicates the payload is not a watcher event.
	ErrNotEvent = errors.New("not a watcher event")
	// ErrNoKeys indicates a command without keys.
	ErrNoKeys = errors.New("command has no keys")
)

// Event is one watcher event published on the <type>/<id>/msg topic.
type Event struct {
	Event    string `json:"event"`
	Tag      string `json:"tag,omitempty"`
	Key      string `json:"key,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

// String formats the event for monitoring output.
func (e *Event) String() string {
	var w bytes.Buffer
	w.WriteString(e.Event)
	if e.Tag != "" {
		fmt.Fprintf(&w, " tag=%s", e.Tag)
	}
	if e.Key != "" {
		fmt.Fprintf(&w, " key=%q", e.Key)
	}
	if e.Event != EventBanner {
		fmt.Fprintf(&w, " progress=%d", e.Progress)
	}
	return w.String()
}

// EventFromResult converts a watcher transition into an Event.
// A transition that changed nothing converts to nil.
func EventFromResult(r trigger.Result) *Event {
	ev := &Event{Progress: r.Progress}
	if r.Key != 0 {
		ev.Key = string([]byte{r.Key})
	}
	switch r.Event {
	case trigger.EventProgress:
		ev.Event = EventProgress
	case trigger.EventReset:
		ev.Event = EventReset
	case trigger.EventExpired:
		ev.Event = EventExpired
	case trigger.EventConfirmed:
		ev.Event = EventFired
	default:
		return nil
	}
	return ev
}

// DecodeEvent parses an Event payload.
func DecodeEvent(payload []byte) (*Event, error) {
	ev := &Event{}
	if err := json.Unmarshal(payload, ev); err != nil {
		return nil, err
	}
	if ev.Event == "" {
		return nil, ErrNotEvent
	}
	return ev, nil
}

// Command is a key injection request sent on the <type>/<id>/cmd
// topic. The keys pass through the same watcher as keys typed on the
// console, so an incomplete or wrong sequence still never fires.
type Command struct {
	Keys string `json:"keys"`
}

// DecodeCommand parses a Command payload.
func DecodeCommand(payload []byte) (*Command, error) {
	cmd := &Command{}
	if err := json.Unmarshal(payload, cmd); err != nil {
		return nil, err
	}
	if cmd.Keys == "" {
		return nil, ErrNoKeys
	}
	return cmd, nil
}
