package utils

import "time"

// Sheet cell time formats used by the previous system.
const (
	TimestampFormat = "2006/01/02 15:04:05"
	DateFormat      = "2006/01/02"
)

// Clock provides zone-pinned time for sheet timestamps. All stored
// timestamps are JST regardless of server locale.
type Clock struct {
	loc *time.Location
}

func NewClock(timezone string) *Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// MonthAfterNextEnd returns the last calendar day of the month after next,
// the default transfer schedule for conversion rewards.
func MonthAfterNextEnd(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+3, 0, 0, 0, 0, 0, now.Location())
}
