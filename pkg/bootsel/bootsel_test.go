package bootsel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		expect map[string]string
	}{
		{
			name: "plain",
			line: `NAME="sda1" LABEL="RPI-RP2" MOUNTPOINT="/mnt/pico"`,
			expect: map[string]string{
				"NAME":       "sda1",
				"LABEL":      "RPI-RP2",
				"MOUNTPOINT": "/mnt/pico",
			},
		},
		{
			name: "empty values",
			line: `NAME="sda" LABEL="" MOUNTPOINT=""`,
			expect: map[string]string{
				"NAME":       "sda",
				"LABEL":      "",
				"MOUNTPOINT": "",
			},
		},
		{
			name: "value with spaces",
			line: `NAME="sdb1" LABEL="RPI-RP2" MOUNTPOINT="/media/user/RPI RP2"`,
			expect: map[string]string{
				"NAME":       "sdb1",
				"LABEL":      "RPI-RP2",
				"MOUNTPOINT": "/media/user/RPI RP2",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := ParseLine(tc.line)
			require.NoError(t, err)
			require.Equal(t, tc.expect, fields)
		})
	}
}

func TestFindIn(t *testing.T) {
	out := []byte(`NAME="nvme0n1" LABEL="" MOUNTPOINT=""
NAME="nvme0n1p1" LABEL="EFI" MOUNTPOINT="/boot/efi"
NAME="sda" LABEL="" MOUNTPOINT=""
NAME="sda1" LABEL="RPI-RP2" MOUNTPOINT="/media/user/RPI-RP2"
`)
	dev, err := FindIn(out)
	require.NoError(t, err)
	require.NotNil(t, dev)
	require.Equal(t, "sda1", dev.Name)
	require.Equal(t, "/media/user/RPI-RP2", dev.Mountpoint)
	require.True(t, dev.Mounted())
}

func TestFindInUnmounted(t *testing.T) {
	out := []byte(`NAME="sda1" LABEL="RPI-RP2" MOUNTPOINT=""` + "\n")
	dev, err := FindIn(out)
	require.NoError(t, err)
	require.NotNil(t, dev)
	require.Equal(t, "sda1", dev.Name)
	require.False(t, dev.Mounted())
}

func TestFindInAbsent(t *testing.T) {
	out := []byte(`NAME="nvme0n1p1" LABEL="EFI" MOUNTPOINT="/boot/efi"` + "\n\n")
	dev, err := FindIn(out)
	require.NoError(t, err)
	require.Nil(t, dev)

	dev, err = FindIn(nil)
	require.NoError(t, err)
	require.Nil(t, dev)
}
