package switcher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/picoboot.go/pkg/trigger"
)

func TestTriggerKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TriggerKeys(&buf, nil))
	require.Equal(t, trigger.DefaultKeys, buf.String())

	buf.Reset()
	require.NoError(t, TriggerKeys(&buf, trigger.Sequence("abc")))
	require.Equal(t, "abc", buf.String())
}

func TestTriggerModes(t *testing.T) {
	conf := NewConfig()
	require.NoError(t, Trigger(conf, ModeBootsel))
	require.Equal(t, ErrUnknownMode, Trigger(conf, ModeUnknown))
}
