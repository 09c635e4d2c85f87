package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// the dining hall publishes menus relative to US eastern time, so all
// day/week arithmetic has to happen in that zone no matter where the
// server ends up running
func Now() time.Time {
	return time.Now().In(Location)
}

// GetCurrentWeek returns the Monday and Sunday bounding the week
// containing `now`, at midnight in the zone `now` is expressed in.
func GetCurrentWeek(now time.Time) (start time.Time, stop time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// time.Weekday has Sunday = 0, the menu week starts on Monday
	sinceMonday := (int(midnight.Weekday()) + 6) % 7
	start = midnight.AddDate(0, 0, -sinceMonday)
	stop = start.AddDate(0, 0, 6)
	return start, stop
}
