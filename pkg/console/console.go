package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/picoboot.go/pkg/trigger"
	"github.com/robotalks/picoboot.go/pkg/usbboot"
)

// FirmwareTag identifies this firmware flavor in the banner.
const FirmwareTag = "FW:GO"

// Default timings of the console loop.
const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultFlushDelay   = 100 * time.Millisecond
)

// EventHandler is called after each watcher step.
type EventHandler interface {
	HandleEvent(context.Context, trigger.Result)
}

// HandleEventFunc is func type of EventHandler.
type HandleEventFunc func(context.Context, trigger.Result)

// HandleEvent implements EventHandler.
func (f HandleEventFunc) HandleEvent(ctx context.Context, r trigger.Result) {
	f(ctx, r)
}

// Console watches a console stream for the trigger sequence and
// enters the bootloader when it completes.
type Console struct {
	ReadWriter   io.ReadWriter
	Watcher      *trigger.Watcher
	Boot         usbboot.Entry
	Handler      EventHandler
	PollInterval time.Duration
	FlushDelay   time.Duration
	IdleReset    time.Duration // 0 means partial progress never expires
	ReadTimeout  bool          // set to true if ReadWriter already supports timeout with Read

	keyCh     chan byte
	idleTimer <-chan time.Time
}

// NewConsole creates a Console.
func NewConsole(rw io.ReadWriter, w *trigger.Watcher, boot usbboot.Entry) *Console {
	return &Console{
		ReadWriter:   rw,
		Watcher:      w,
		Boot:         boot,
		PollInterval: DefaultPollInterval,
		FlushDelay:   DefaultFlushDelay,
		keyCh:        make(chan byte, 16),
	}
}

// Press injects keys as if typed on the console.
// It blocks when the console is not running and the buffer is full.
func (c *Console) Press(keys ...byte) {
	for _, b := range keys {
		c.keyCh <- b
	}
}

// Close closes the underlying ReadWriter if it is closable.
func (c *Console) Close() error {
	if closer, ok := c.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Run watches the console until the context is canceled.
func (c *Console) Run(ctx context.Context) error {
	if err := c.greet(); err != nil {
		return err
	}

	poll := c.PollInterval
	if poll == 0 {
		poll = DefaultPollInterval
	}

	if c.ReadTimeout {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case b := <-c.keyCh:
				if err := c.feed(ctx, b); err != nil {
					return err
				}
			case <-c.idleTimer:
				if err := c.expire(ctx); err != nil {
					return err
				}
			default:
				n, err := c.ReadWriter.Read(buf)
				if err != nil && !os.IsTimeout(err) {
					return err
				}
				if n == 0 {
					if err = c.waitIdle(ctx, poll); err != nil {
						return err
					}
					continue
				}
				if err = c.feed(ctx, buf[0]); err != nil {
					return err
				}
			}
		}
	}

	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			if err := c.feed(ctx, b); err != nil {
				return err
			}
		case b := <-c.keyCh:
			if err := c.feed(ctx, b); err != nil {
				return err
			}
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-c.idleTimer:
			if err := c.expire(ctx); err != nil {
				return err
			}
		}
	}
}

func (c *Console) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			n, err := c.ReadWriter.Read(buf)
			if err != nil {
				errCh <- err
				return
			}
			if n > 0 {
				byteCh <- buf[0]
			}
		}
	}
}

// waitIdle yields between polls while nothing is readable.
func (c *Console) waitIdle(ctx context.Context, poll time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case b := <-c.keyCh:
		return c.feed(ctx, b)
	case <-c.idleTimer:
		return c.expire(ctx)
	case <-time.After(poll):
	}
	return nil
}

func (c *Console) feed(ctx context.Context, b byte) error {
	prior := c.Watcher.Progress()
	return c.apply(ctx, prior, c.Watcher.Feed(b))
}

func (c *Console) expire(ctx context.Context) error {
	prior := c.Watcher.Progress()
	return c.apply(ctx, prior, c.Watcher.Timeout())
}

func (c *Console) greet() error {
	if err := c.say(FirmwareTag); err != nil {
		return err
	}
	return c.say("%s", promptText(c.Watcher.Keys()))
}

func (c *Console) apply(ctx context.Context, prior int, r trigger.Result) error {
	var err error
	switch r.Event {
	case trigger.EventProgress:
		if err = c.say("You pressed: '%c'", r.Key); err != nil {
			return err
		}
		err = c.say("Now press '%c' to confirm reboot.", c.Watcher.Expect())
	case trigger.EventReset:
		if err = c.say("You pressed: '%c'", r.Key); err != nil {
			return err
		}
		if prior == 0 {
			err = c.say("Incorrect first key. Please press '%c' first.", c.Watcher.Expect())
		} else {
			err = c.say("Incorrect key. Start over.")
		}
	case trigger.EventExpired:
		err = c.say("Confirmation timed out. Start over.")
	case trigger.EventConfirmed:
		if err = c.say("You pressed: '%c'", r.Key); err != nil {
			return err
		}
		err = c.say("Rebooting into UF2 bootloader mode...")
	}
	if err != nil {
		return err
	}

	if c.IdleReset > 0 {
		if c.Watcher.Progress() > 0 {
			c.idleTimer = time.After(c.IdleReset)
		} else {
			c.idleTimer = nil
		}
	}

	if h := c.Handler; h != nil {
		h.HandleEvent(ctx, r)
	}

	if r.Fired() {
		glog.Infof("trigger sequence %q confirmed, entering bootloader", string(c.Watcher.Keys()))
		if err = c.sleep(ctx, c.FlushDelay); err != nil {
			return err
		}
		if err = c.Boot.EnterBootloader(0, 0); err != nil {
			glog.Errorf("bootloader entry failed: %v", err)
			return c.say("Bootloader entry failed.")
		}
	}
	return nil
}

func (c *Console) say(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(c.ReadWriter, format+"\n", args...)
	return err
}

func (c *Console) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// promptText spells out the trigger sequence,
// e.g. "Press 'r' then 'u' to reboot into UF2 bootloader mode."
func promptText(keys trigger.Sequence) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "Press '%c'", keys[0])
	for _, b := range keys[1:] {
		fmt.Fprintf(&w, " then '%c'", b)
	}
	w.WriteString(" to reboot into UF2 bootloader mode.")
	return w.String()
}
