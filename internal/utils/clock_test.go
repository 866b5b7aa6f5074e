package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthAfterNextEnd(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "mid month",
			now:      time.Date(2026, time.January, 15, 10, 30, 0, 0, jst),
			expected: "2026/03/31",
		},
		{
			name:     "thirty day target month",
			now:      time.Date(2026, time.July, 1, 0, 0, 0, 0, jst),
			expected: "2026/09/30",
		},
		{
			name:     "year rollover",
			now:      time.Date(2026, time.November, 30, 23, 59, 59, 0, jst),
			expected: "2027/01/31",
		},
		{
			name:     "february target",
			now:      time.Date(2026, time.December, 1, 0, 0, 0, 0, jst),
			expected: "2027/02/28",
		},
		{
			name:     "leap year february",
			now:      time.Date(2027, time.December, 15, 12, 0, 0, 0, jst),
			expected: "2028/02/29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(MonthAfterNextEnd(tt.now)))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2026, time.March, 5, 9, 8, 7, 0, jst)

	assert.Equal(t, "2026/03/05 09:08:07", FormatTimestamp(ts))
	assert.Equal(t, "2026/03/05", FormatDate(ts))
}

func TestNewClock_FallsBackToJST(t *testing.T) {
	clock := NewClock("Not/AZone")

	_, offset := clock.Now().Zone()
	assert.Equal(t, 9*60*60, offset)
}
