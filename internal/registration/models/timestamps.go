package models

import "time"

// Timestamps are the two instants every registration writes.
type Timestamps struct {
	Now       time.Time
	RenewalAt time.Time
}

// DeriveTimestamps computes the renewal date durationDays calendar days after
// now. Day arithmetic happens in now's location, so a renewal never drifts by
// an hour across a DST change.
func DeriveTimestamps(now time.Time, durationDays int) Timestamps {
	return Timestamps{
		Now:       now,
		RenewalAt: now.AddDate(0, 0, durationDays),
	}
}
