package switcher

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	testCases := []struct {
		name   string
		in     string
		expect Mode
		fail   bool
	}{
		{name: "empty", in: "", expect: ModeUnknown},
		{name: "auto", in: "auto", expect: ModeUnknown},
		{name: "py", in: "py", expect: ModePy},
		{name: "cpp", in: "cpp", expect: ModeCpp},
		{name: "go", in: "go", expect: ModeGo},
		{name: "bootsel", in: "bootsel", expect: ModeBootsel},
		{name: "invalid", in: "rust", expect: ModeUnknown, fail: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := ParseMode(tc.in)
			if tc.fail {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expect, mode)
		})
	}
}

func TestDetectBanner(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expect   Mode
		lastLine string
	}{
		{
			name:     "cpp banner",
			in:       "Bootloader trigger ready\nFW:CPP build 7\nmore output\n",
			expect:   ModeCpp,
			lastLine: "FW:CPP build 7",
		},
		{
			name:     "py banner crlf",
			in:       "MicroPython v1.25.0; FW:PY\r\n",
			expect:   ModePy,
			lastLine: "MicroPython v1.25.0; FW:PY",
		},
		{
			name:     "go banner unterminated",
			in:       "noise\nFW:GO",
			expect:   ModeGo,
			lastLine: "FW:GO",
		},
		{
			name:     "no marker",
			in:       "hello\nworld\n",
			expect:   ModeUnknown,
			lastLine: "world",
		},
		{
			name:   "empty stream",
			in:     "",
			expect: ModeUnknown,
		},
		{
			name:     "blank lines skipped",
			in:       "\n\n   \nFW:PY\n",
			expect:   ModePy,
			lastLine: "FW:PY",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mode, last := DetectBanner(strings.NewReader(tc.in), time.Second)
			require.Equal(t, tc.expect, mode)
			require.Equal(t, tc.lastLine, last)
		})
	}
}

type idleReader struct{}

func (idleReader) Read([]byte) (int, error) { return 0, nil }

func TestDetectBannerTimeout(t *testing.T) {
	start := time.Now()
	mode, last := DetectBanner(idleReader{}, 30*time.Millisecond)
	require.Equal(t, ModeUnknown, mode)
	require.Empty(t, last)
	require.True(t, time.Since(start) >= 30*time.Millisecond)
}
