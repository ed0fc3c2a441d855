package cosworker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		contractEnd time.Time
		want        string
	}{
		{
			name:        "ended yesterday is expired",
			contractEnd: now.Add(-36 * time.Hour),
			want:        StatusExpired,
		},
		{
			name:        "ends later today is expiring",
			contractEnd: now.Add(6 * time.Hour),
			want:        StatusExpiring,
		},
		{
			name:        "ends exactly at the threshold is expiring",
			contractEnd: now.Add(30 * 24 * time.Hour),
			want:        StatusExpiring,
		},
		{
			name:        "ends just past the threshold is active",
			contractEnd: now.Add(31 * 24 * time.Hour),
			want:        StatusActive,
		},
		{
			name:        "ends next year is active",
			contractEnd: now.AddDate(1, 0, 0),
			want:        StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.contractEnd, now))
		})
	}
}

func TestDaysLeftRoundsUp(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysLeft(now.Add(6*time.Hour), now))
	assert.Equal(t, 2, DaysLeft(now.Add(25*time.Hour), now))
	assert.Equal(t, 0, DaysLeft(now, now))
	assert.Equal(t, -1, DaysLeft(now.Add(-36*time.Hour), now))
}
