// Package narration collects the announcements the focus manager makes.
// A speech backend, if any, reads them from here.
package narration

import (
	"log/slog"
	"slices"
	"sync"
	"time"
)

// KindNarrate is the log type of accessibility announcements.
const KindNarrate = "narrate"

// Entry is one log line.
type Entry struct {
	Time    time.Time `yaml:"time"    json:"time"`
	Kind    string    `yaml:"kind"    json:"kind"`
	Message string    `yaml:"message" json:"message"`
}

// Recorder keeps the most recent entries and mirrors them to a logger.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	logger  *slog.Logger
	now     func() time.Time
	watch   []func(Entry)
}

// NewRecorder keeps up to limit entries. logger may be nil.
func NewRecorder(limit int, logger *slog.Logger) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{limit: limit, logger: logger, now: time.Now}
}

// AddLog records a message of the given kind.
func (r *Recorder) AddLog(kind, message string) {
	r.mu.Lock()
	e := Entry{Time: r.now(), Kind: kind, Message: message}
	r.entries = append(r.entries, e)
	if over := len(r.entries) - r.limit; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	watch := slices.Clone(r.watch)
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Debug("hud log", "kind", kind, "message", message)
	}
	for _, fn := range watch {
		fn(e)
	}
}

// Watch calls fn for every entry added after this call.
func (r *Recorder) Watch(fn func(Entry)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watch = append(r.watch, fn)
}

// Entries returns a copy of the retained entries, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the retained messages of kind, oldest first.
func (r *Recorder) Messages(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e.Message)
		}
	}
	return out
}

// Last returns the newest entry.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Reset drops all entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
