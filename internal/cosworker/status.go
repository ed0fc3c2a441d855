package cosworker

import (
	"math"
	"time"
)

// DaysLeft is the number of 24h periods between now and the contract end,
// rounded up. A contract ending later today still counts one day left.
func DaysLeft(contractEnd, now time.Time) int {
	return int(math.Ceil(contractEnd.Sub(now).Hours() / 24))
}

// ComputeStatus derives the contract status from the end date: past contracts
// are expired, contracts within the threshold are expiring, the rest active.
func ComputeStatus(contractEnd, now time.Time) string {
	days := DaysLeft(contractEnd, now)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringThresholdDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}
