package matchmaker

import "time"

// Task is a scheduled callback that can be cancelled
type Task interface {
	// Stop cancels the task, returning false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs a callback after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timeScheduler struct{}

// AfterFunc wraps time.AfterFunc
func (timeScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// RealTime returns a scheduler backed by the runtime timers
func RealTime() Scheduler {
	return timeScheduler{}
}
