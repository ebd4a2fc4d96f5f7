package vizmatch

import (
	"fmt"
	"time"
)

// Status is the state of one pair while a run is in flight.
type Status uint8

const (
	StatusStarted Status = iota
	StatusDone
	StatusFailed
)

// Event reports a pair state change. Events carry no ordering guarantee when
// the pipeline runs in parallel.
type Event struct {
	Pair    Pair
	Status  Status
	Elapsed time.Duration
	Err     error
}

// FormatEvent renders an event as a human readable status line.
func FormatEvent(event Event) string {
	switch event.Status {
	case StatusStarted:
		return fmt.Sprintf("Exporting matches between %s and %s", event.Pair.I0.Name, event.Pair.I1.Name)
	case StatusDone:
		return fmt.Sprintf("Done %s (%s)", event.Pair, event.Elapsed)
	case StatusFailed:
		return fmt.Sprintf("Failed %s: %v", event.Pair, event.Err)
	default:
		return fmt.Sprintf("? %s (unknown status)", event.Pair)
	}
}
