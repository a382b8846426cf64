package remote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/picoboot.go/pkg/trigger"
)

func TestEventFromResult(t *testing.T) {
	testCases := []struct {
		name   string
		result trigger.Result
		expect *Event
	}{
		{
			name:   "none",
			result: trigger.Result{},
			expect: nil,
		},
		{
			name:   "progress",
			result: trigger.Result{Event: trigger.EventProgress, Key: 'r', Progress: 1},
			expect: &Event{Event: EventProgress, Key: "r", Progress: 1},
		},
		{
			name:   "reset",
			result: trigger.Result{Event: trigger.EventReset, Key: 'x'},
			expect: &Event{Event: EventReset, Key: "x"},
		},
		{
			name:   "expired",
			result: trigger.Result{Event: trigger.EventExpired},
			expect: &Event{Event: EventExpired},
		},
		{
			name:   "fired",
			result: trigger.Result{Event: trigger.EventConfirmed, Key: 'u', Progress: 2},
			expect: &Event{Event: EventFired, Key: "u", Progress: 2},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, EventFromResult(tc.result))
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"event":"progress","key":"r","progress":1}`))
	require.NoError(t, err)
	require.Equal(t, &Event{Event: EventProgress, Key: "r", Progress: 1}, ev)

	_, err = DecodeEvent([]byte(`{"progress":1}`))
	require.Equal(t, ErrNotEvent, err)

	_, err = DecodeEvent([]byte(`not-json`))
	require.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"keys":"ru"}`))
	require.NoError(t, err)
	require.Equal(t, "ru", cmd.Keys)

	_, err = DecodeCommand([]byte(`{}`))
	require.Equal(t, ErrNoKeys, err)

	_, err = DecodeCommand([]byte(`not-json`))
	require.Error(t, err)
}

func TestEventString(t *testing.T) {
	testCases := []struct {
		name   string
		event  Event
		expect string
	}{
		{
			name:   "banner",
			event:  Event{Event: EventBanner, Tag: "FW:GO"},
			expect: "banner tag=FW:GO",
		},
		{
			name:   "progress",
			event:  Event{Event: EventProgress, Key: "r", Progress: 1},
			expect: `progress key="r" progress=1`,
		},
		{
			name:   "expired",
			event:  Event{Event: EventExpired},
			expect: "expired progress=0",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.event.String())
		})
	}
}

type pressRecorder struct {
	keys []byte
}

func (p *pressRecorder) Press(keys ...byte) {
	p.keys = append(p.keys, keys...)
}

func TestAgentHandleCommand(t *testing.T) {
	presser := &pressRecorder{}
	a := &Agent{Console: presser}
	a.handleCommand("bootwatch/dev0/cmd", []byte(`{"keys":"ru"}`))
	require.Equal(t, []byte("ru"), presser.keys)

	a.handleCommand("bootwatch/dev0/cmd", []byte(`{}`))
	a.handleCommand("bootwatch/dev0/cmd", []byte(`garbage`))
	require.Equal(t, []byte("ru"), presser.keys)
}
