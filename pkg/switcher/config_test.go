package switcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigPaths(t *testing.T) {
	conf := NewConfig()
	conf.DataDir = "/opt/pico"
	require.Equal(t, []string{
		"/opt/pico/py/boot.py",
		"/opt/pico/py/bootloader_trigger.py",
	}, conf.HelperFiles())
	require.Equal(t, "/opt/pico/uf2s/"+DefaultPyUF2, conf.DefaultUF2(ModePy))
	require.Equal(t, "/opt/pico/uf2s/"+DefaultCppUF2, conf.DefaultUF2(ModeCpp))
	require.Empty(t, conf.DefaultUF2(ModeGo))
	require.Empty(t, conf.DefaultUF2(ModeBootsel))
}

func TestPortConfig(t *testing.T) {
	conf := NewConfig()
	conf.Port, conf.Baud = "/dev/ttyACM1", 9600
	pc := conf.PortConfig()
	require.Equal(t, "/dev/ttyACM1", pc.Device)
	require.Equal(t, 9600, pc.Baud)
	require.Equal(t, portReadTimeout, pc.ReadTimeout)
}
