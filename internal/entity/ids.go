// Package entity holds the immutable value types the solver core operates on:
// workers, shift types, availability, requests, frequency requirements,
// constraint configuration, and the schedule produced by a solve.
package entity

import "time"

// Now returns the current instant truncated to UTC, following this
// lineage's convention of never storing local time.
func Now() time.Time {
	return time.Now().UTC()
}

// NowPtr is Now, but boxed — used for optional timestamp fields.
func NowPtr() *time.Time {
	now := Now()
	return &now
}
