package bootsel

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/picoboot.go/pkg/uf2"
)

func testUF2(t *testing.T, dir string) string {
	raw := make([]byte, uf2.BlockSize)
	le := binary.LittleEndian
	le.PutUint32(raw, 0x0a324655)
	le.PutUint32(raw[4:], 0x9e5d5157)
	le.PutUint32(raw[8:], 0x00002000)
	le.PutUint32(raw[12:], 0x10000000)
	le.PutUint32(raw[16:], 4)
	le.PutUint32(raw[20:], 0)
	le.PutUint32(raw[24:], 1)
	le.PutUint32(raw[28:], uf2.FamilyRP2040)
	copy(raw[32:], []byte{1, 2, 3, 4})
	le.PutUint32(raw[uf2.BlockSize-4:], 0x0ab16f30)

	path := filepath.Join(dir, "firmware.uf2")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func TestCopyUF2(t *testing.T) {
	dir := t.TempDir()
	src := testUF2(t, dir)
	mountpoint := filepath.Join(dir, "mnt")
	require.NoError(t, os.MkdirAll(mountpoint, 0755))

	info, err := CopyUF2(src, mountpoint)
	require.NoError(t, err)
	require.Equal(t, 1, info.Blocks)
	require.True(t, info.HasFamily(uf2.FamilyRP2040))

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(mountpoint, "firmware.uf2"))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCopyUF2Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.uf2")
	require.NoError(t, os.WriteFile(bad, []byte("not a firmware"), 0644))
	_, err := CopyUF2(bad, dir)
	require.Error(t, err)

	_, err = CopyUF2(filepath.Join(dir, "missing.uf2"), dir)
	require.Error(t, err)
}
