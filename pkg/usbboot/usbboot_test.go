package usbboot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryFunc(t *testing.T) {
	var gotA, gotD uint32
	entry := EntryFunc(func(activityMask, disableMask uint32) error {
		gotA, gotD = activityMask, disableMask
		return nil
	})
	require.NoError(t, entry.EnterBootloader(0, 0))
	require.Equal(t, uint32(0), gotA)
	require.Equal(t, uint32(0), gotD)
}

func TestExecEntryArgv(t *testing.T) {
	testCases := []struct {
		name   string
		entry  ExecEntry
		expect []string
	}{
		{
			name:   "plain",
			entry:  ExecEntry{Argv: []string{"reboot", "bootloader"}},
			expect: []string{"reboot", "bootloader"},
		},
		{
			name:   "masks appended",
			entry:  ExecEntry{Argv: []string{"picotool", "reboot", "-u"}, AppendMasks: true},
			expect: []string{"picotool", "reboot", "-u", "0", "0"},
		},
		{
			name:  "empty",
			entry: ExecEntry{AppendMasks: true},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.entry.argv(0, 0))
		})
	}
}

func TestExecEntry(t *testing.T) {
	require.NoError(t, NewExecEntry("true").EnterBootloader(0, 0))
	require.Error(t, NewExecEntry("false").EnterBootloader(0, 0))
	require.Equal(t, ErrNoCommand, NewExecEntry().EnterBootloader(0, 0))
}

func TestConfigNewEntry(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, "reboot bootloader", conf.BootCmd)
	entry, err := conf.NewEntry()
	require.NoError(t, err)
	require.Equal(t, []string{"reboot", "bootloader"}, entry.(*ExecEntry).Argv)

	conf.BootCmd = `picotool reboot -u "f 2"`
	entry, err = conf.NewEntry()
	require.NoError(t, err)
	require.Equal(t, []string{"picotool", "reboot", "-u", "f 2"}, entry.(*ExecEntry).Argv)

	conf.BootCmd = ""
	_, err = conf.NewEntry()
	require.Equal(t, ErrNoCommand, err)
}
