package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "full monday to friday week",
			start: date(2025, time.June, 2),
			end:   date(2025, time.June, 6),
			want:  5,
		},
		{
			name:  "weekend only counts zero",
			start: date(2025, time.June, 7),
			end:   date(2025, time.June, 8),
			want:  0,
		},
		{
			name:  "single weekday",
			start: date(2025, time.June, 4),
			end:   date(2025, time.June, 4),
			want:  1,
		},
		{
			name:  "single saturday",
			start: date(2025, time.June, 7),
			end:   date(2025, time.June, 7),
			want:  0,
		},
		{
			name:  "two full weeks spanning weekends",
			start: date(2025, time.June, 2),
			end:   date(2025, time.June, 13),
			want:  10,
		},
		{
			name:  "friday through monday",
			start: date(2025, time.June, 6),
			end:   date(2025, time.June, 9),
			want:  2,
		},
		{
			name:  "end before start",
			start: date(2025, time.June, 9),
			end:   date(2025, time.June, 6),
			want:  0,
		},
		{
			name:  "crosses month boundary",
			start: date(2025, time.June, 30),
			end:   date(2025, time.July, 4),
			want:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWorkingDays(tt.start, tt.end))
		})
	}
}
