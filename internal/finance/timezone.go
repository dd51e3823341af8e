package finance

import "time"

// tradingDay maps a bar timestamp to its calendar day in the exchange's local
// time, returned as UTC midnight. Daily bars of US listings are stamped at the
// session open, crypto bars at 00:00 UTC, so both land on the same day key.
func tradingDay(ts int64, gmtOffset int) time.Time {
	t := time.Unix(ts+int64(gmtOffset), 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayStart truncates t to its UTC calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
