package dates

import (
	"fmt"
	"time"

	"hn_daily/internal/models"
)

// Yesterday returns the calendar date one day before now, in now's location.
func Yesterday(now time.Time) models.DateInfo {
	y := now.AddDate(0, 0, -1)
	return models.DateInfo{
		Year:  fmt.Sprintf("%04d", y.Year()),
		Month: fmt.Sprintf("%02d", int(y.Month())),
		Day:   fmt.Sprintf("%02d", y.Day()),
	}
}
