// Package scheduling holds the pure core of the show scheduling engine:
// end-time arithmetic, interval-overlap detection, candidate validation and
// the typed errors the engine reports with.
package scheduling

import (
	"time"
)

// Policy groups the configurable business constants of the engine.
type Policy struct {
	// BufferMinutes is the mandatory cleaning/turnaround time appended to a
	// movie's runtime when computing the hall-occupied interval.
	BufferMinutes int
	// MaxBasePrice is the business ceiling for a screening's base price.
	MaxBasePrice float64
}

// ComputeEndTime returns the instant at which a screening releases its hall:
// start plus movie runtime plus the cleaning buffer.
func ComputeEndTime(start time.Time, durationMinutes, bufferMinutes int) time.Time {
	total := durationMinutes + bufferMinutes
	return start.Add(time.Duration(total) * time.Minute)
}

// IntervalsOverlap reports whether [startA, endA) and [startB, endB) share
// any instant. Half-open semantics: intervals that exactly abut do not
// overlap, which deliberately permits back-to-back scheduling at the
// buffer-adjusted end time.
func IntervalsOverlap(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
