package garden

import (
	"sync"
	"time"
)

// DefaultStatusDelay is how long a status message stays visible.
const DefaultStatusDelay = 2 * time.Second

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Status is a transient user-facing message that clears itself after a delay.
// Each Set cancels the pending clear and schedules a new one keyed to that
// message, so an old timer can never wipe a newer message.
type Status struct {
	mu       sync.Mutex
	text     string
	seq      uint64
	timer    Timer
	delay    time.Duration
	sched    Scheduler
	onChange func(string)
}

func newStatus(sched Scheduler, delay time.Duration) *Status {
	if sched == nil {
		sched = realScheduler{}
	}
	if delay <= 0 {
		delay = DefaultStatusDelay
	}
	return &Status{sched: sched, delay: delay}
}

// Text returns the message currently shown.
func (s *Status) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Set shows msg and schedules it to clear.
func (s *Status) Set(msg string) {
	s.mu.Lock()
	s.seq++
	key := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.text = msg
	s.timer = s.sched.AfterFunc(s.delay, func() { s.expire(key) })
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(msg)
	}
}

// Clear hides the message now and cancels its timer.
func (s *Status) Clear() {
	s.mu.Lock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	changed := s.text != ""
	s.text = ""
	notify := s.onChange
	s.mu.Unlock()

	if changed && notify != nil {
		notify("")
	}
}

func (s *Status) expire(key uint64) {
	s.mu.Lock()
	if key != s.seq {
		s.mu.Unlock()
		return
	}
	s.text = ""
	s.timer = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify("")
	}
}

// OnChange registers fn to be called with every new message. It may be called
// from a timer goroutine.
func (s *Status) OnChange(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}
