// Package autosave debounces Document writes and tracks the save status shown
// in the status line.
//
// The Scheduler holds no timers. Schedule hands back a Ticket; the caller arms
// a timer (tea.Tick in the TUI) and calls Fire with the ticket's generation when
// it expires. Only the newest generation fires, so a burst of edits collapses
// into one write.
package autosave

import "time"

const (
	DefaultDelay        = 500 * time.Millisecond
	DefaultSavedDisplay = 1500 * time.Millisecond

	// LegacyDelay is the delay used by the single-textarea popup.
	LegacyDelay = 1000 * time.Millisecond
)

type Status int

const (
	StatusReady Status = iota
	StatusTyping
	StatusSaved
	StatusLoadFailed
	StatusSaveFailed
	StatusCleared
)

func (s Status) String() string {
	switch s {
	case StatusTyping:
		return "Typing..."
	case StatusSaved:
		return "Saved!"
	case StatusLoadFailed:
		return "Error loading data"
	case StatusSaveFailed:
		return "Save failed"
	case StatusCleared:
		return "All cleared"
	default:
		return "Ready"
	}
}

// Ticket is a pending save. Fire(Gen) after Delay.
type Ticket struct {
	Gen   int
	Delay time.Duration
}

// StatusTicket reverts a transient status. ResetStatus(Gen) after Delay.
type StatusTicket struct {
	Gen   int
	Delay time.Duration
}

type Options struct {
	Delay        time.Duration
	SavedDisplay time.Duration
}

type Scheduler struct {
	delay        time.Duration
	savedDisplay time.Duration

	gen     int
	pending bool

	status    Status
	statusGen int
}

func New(opts Options) *Scheduler {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	saved := opts.SavedDisplay
	if saved <= 0 {
		saved = DefaultSavedDisplay
	}
	return &Scheduler{delay: delay, savedDisplay: saved}
}

func (s *Scheduler) Delay() time.Duration { return s.delay }

// Schedule supersedes any outstanding ticket and starts a new one.
func (s *Scheduler) Schedule() Ticket {
	s.gen++
	s.pending = true
	s.setStatus(StatusTyping)
	return Ticket{Gen: s.gen, Delay: s.delay}
}

// Fire reports whether the ticket with gen should write now. Stale tickets
// and tickets already consumed by SaveNow return false.
func (s *Scheduler) Fire(gen int) bool {
	if !s.pending || gen != s.gen {
		return false
	}
	s.pending = false
	return true
}

// SaveNow cancels the pending ticket, if any. The caller writes immediately.
func (s *Scheduler) SaveNow() {
	s.gen++
	s.pending = false
}

// Pending reports whether a scheduled write has not fired yet.
func (s *Scheduler) Pending() bool { return s.pending }

func (s *Scheduler) Status() Status { return s.status }

// Saved records a successful write. A newer Schedule keeps its Typing status.
func (s *Scheduler) Saved() StatusTicket {
	if s.pending {
		return StatusTicket{}
	}
	s.setStatus(StatusSaved)
	return StatusTicket{Gen: s.statusGen, Delay: s.savedDisplay}
}

// ResetStatus returns to Ready if no status change happened since the ticket.
func (s *Scheduler) ResetStatus(gen int) bool {
	if gen == 0 || gen != s.statusGen || s.status != StatusSaved {
		return false
	}
	s.setStatus(StatusReady)
	return true
}

func (s *Scheduler) Failed()     { s.setStatus(StatusSaveFailed) }
func (s *Scheduler) LoadFailed() { s.setStatus(StatusLoadFailed) }
func (s *Scheduler) Cleared()    { s.setStatus(StatusCleared) }
func (s *Scheduler) Ready()      { s.setStatus(StatusReady) }

func (s *Scheduler) setStatus(st Status) {
	s.status = st
	s.statusGen++
}
