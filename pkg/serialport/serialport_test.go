package serialport

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig("/dev/ttyACM0")
	require.Equal(t, "/dev/ttyACM0", conf.Device)
	require.Equal(t, DefaultBaud, conf.Baud)
	require.Equal(t, 10*time.Millisecond, conf.ReadTimeout)
}

type fakePort struct {
	reads []struct {
		n   int
		err error
	}
}

func (p *fakePort) Read(b []byte) (int, error) {
	r := p.reads[0]
	p.reads = p.reads[1:]
	if r.n > 0 {
		b[0] = 'x'
	}
	return r.n, r.err
}

func (p *fakePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *fakePort) Close() error                { return nil }
func (p *fakePort) Flush() error                { return nil }

func (p *fakePort) expect(n int, err error) *fakePort {
	p.reads = append(p.reads, struct {
		n   int
		err error
	}{n, err})
	return p
}

func TestTimeoutPortRead(t *testing.T) {
	fake := (&fakePort{}).
		expect(0, io.EOF). // expired read timeout
		expect(1, nil).
		expect(1, io.EOF). // data plus stream end stays an error
		expect(0, os.ErrPermission)
	port := timeoutPort{fake}
	buf := make([]byte, 1)

	n, err := port.Read(buf)
	require.Zero(t, n)
	require.NoError(t, err)

	n, err = port.Read(buf)
	require.Equal(t, 1, n)
	require.NoError(t, err)

	n, err = port.Read(buf)
	require.Equal(t, 1, n)
	require.Equal(t, io.EOF, err)

	_, err = port.Read(buf)
	require.Equal(t, os.ErrPermission, err)
}

func TestWait(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "ttyACM0")
	require.NoError(t, os.WriteFile(present, nil, 0644))
	require.NoError(t, Wait(context.Background(), present, time.Second))

	missing := filepath.Join(dir, "ttyACM1")
	err := Wait(context.Background(), missing, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ttyACM1")
}

func TestWaitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Wait(ctx, filepath.Join(t.TempDir(), "nope"), time.Minute)
	require.Equal(t, context.Canceled, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ttyACM1", "ttyACM0", "ttyS0"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	ports, err := List(filepath.Join(dir, "ttyACM*"))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "ttyACM0"),
		filepath.Join(dir, "ttyACM1"),
	}, ports)

	ports, err = List(filepath.Join(dir, "ttyXXX*"))
	require.NoError(t, err)
	require.Empty(t, ports)
}
