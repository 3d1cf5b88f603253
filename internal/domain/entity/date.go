package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TradeDateOf truncates t to a date-only value in UTC. All writers and
// readers go through this helper so that trade_date equality comparisons
// behave the same across drivers.
func TradeDateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ISODate formats a trade date as YYYY-MM-DD.
func ISODate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
