// Package console runs the trigger watcher over a serial console.
package console

// The console is the device-side I/O shell around trigger.Watcher:
// it greets with the firmware banner, polls the console for keys one
// byte at a time, echoes what it saw, and enters the bootloader when
// the watcher confirms the full sequence. There is no command
// interpreter and no framing; the stream is raw keys.
//
// Producer: serial console (or remote key injection)
// Consumer: usbboot.Entry
