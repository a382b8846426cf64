package trigger

// DefaultKeys is the compiled-in trigger sequence: 'r' requests the
// reboot, 'u' confirms entering the UF2 bootloader.
const DefaultKeys = "ru"

// Sequence is an ordered list of trigger keys.
type Sequence []byte

// Event indicates the kind of transition caused by one input.
type Event int

const (
	// EventNone means nothing changed.
	EventNone Event = iota
	// EventProgress means the key matched and the sequence advanced.
	EventProgress
	// EventReset means the key mismatched and progress was discarded.
	EventReset
	// EventExpired means idle expiry discarded partial progress.
	EventExpired
	// EventConfirmed means the full sequence matched.
	EventConfirmed
)

// Result indicates the outcome of one watcher step.
type Result struct {
	Event    Event
	Key      byte
	Progress int
}

// Fired indicates the bootloader entry is due.
func (r Result) Fired() bool {
	return r.Event == EventConfirmed
}

// Discarded indicates partial progress was thrown away.
func (r Result) Discarded() bool {
	return r.Event == EventReset || r.Event == EventExpired
}

// Watcher tracks progress through the trigger sequence.
type Watcher struct {
	keys     Sequence
	progress int
}

// NewWatcher creates a Watcher over a copy of keys.
// An empty sequence falls back to DefaultKeys.
func NewWatcher(keys Sequence) *Watcher {
	if len(keys) == 0 {
		keys = Sequence(DefaultKeys)
	}
	return &Watcher{keys: append(Sequence(nil), keys...)}
}

// Keys retrieves a copy of the trigger sequence.
func (w *Watcher) Keys() Sequence {
	return append(Sequence(nil), w.keys...)
}

// Len retrieves the length of the trigger sequence.
func (w *Watcher) Len() int {
	return len(w.keys)
}

// Progress retrieves the count of keys matched so far.
func (w *Watcher) Progress() int {
	return w.progress
}

// Expect retrieves the next key to be matched.
func (w *Watcher) Expect() byte {
	return w.keys[w.progress]
}

// Feed consumes one key. A mismatched key discards all progress and
// is itself discarded: it is never re-examined as the start of a new
// attempt, even if it equals the first trigger key. After a confirm
// the watcher restarts from zero, so the sequence can fire again.
func (w *Watcher) Feed(b byte) (r Result) {
	r.Key = b
	if b != w.keys[w.progress] {
		w.progress = 0
		r.Event = EventReset
		return
	}
	w.progress++
	r.Progress = w.progress
	if w.progress == len(w.keys) {
		w.progress = 0
		r.Event = EventConfirmed
		return
	}
	r.Event = EventProgress
	return
}

// Reset restarts the sequence from the beginning.
func (w *Watcher) Reset() (r Result) {
	if w.progress != 0 {
		w.progress = 0
		r.Event = EventReset
	}
	return
}

// Timeout notifies the watcher the idle timer expired.
func (w *Watcher) Timeout() (r Result) {
	if w.progress != 0 {
		w.progress = 0
		r.Event = EventExpired
	}
	return
}
