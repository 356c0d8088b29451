// Package metrics computes per-listing values that are never stored:
// utilization, revenue and the synthesized display status.
package metrics

import (
	"math"
	"time"
)

// Display statuses.
const (
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusUnknown  = "UNKNOWN"
)

const day = 24 * time.Hour

// DaysSince returns whole days elapsed between createdAt and now, never
// negative. A zero createdAt counts as created now.
func DaysSince(createdAt, now time.Time) int64 {
	if createdAt.IsZero() || !now.After(createdAt) {
		return 0
	}
	return int64(now.Sub(createdAt) / day)
}

// UtilizationRate is bookings per day of listing age as a percentage,
// clamped to [0, 100]. Ages below one day use a one-day floor.
func UtilizationRate(bookings int64, createdAt, now time.Time) float64 {
	if bookings <= 0 {
		return 0
	}
	days := max(DaysSince(createdAt, now), 1)
	rate := float64(bookings) / float64(days) * 100
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return math.Min(rate, 100)
}

// DisplayStatus folds approval and availability into one status. PENDING and
// REJECTED win regardless of availability.
func DisplayStatus(approval string, available bool) string {
	switch approval {
	case "PENDING":
		return StatusPending
	case "REJECTED":
		return StatusRejected
	case "APPROVED":
		if available {
			return StatusActive
		}
		return StatusInactive
	}
	return StatusUnknown
}

// Round2 rounds to two decimals for display.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
