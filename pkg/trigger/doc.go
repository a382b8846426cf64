// Package trigger provides the bootloader confirmation state machine.
package trigger

// The watcher consumes keys typed on the device console one at a time
// and counts how far they got through the compiled-in trigger
// sequence. Only the exact sequence, unbroken, reaches the end and
// confirms bootloader entry; any wrong key discards all progress.
// The watcher is pure state: it does no I/O, owns no timers and never
// invokes the bootloader itself, so a single instance fully defines
// the confirmation behavior and is trivially testable.
//
// Producer: device console
// Consumer: bootloader entry
