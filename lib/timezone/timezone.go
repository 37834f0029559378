package timezone

import (
	"fmt"
	"time"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Manila")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in Manila regardless of where the host machine
// sits, so that "updated X ago" strings don't drift when the crawler
// runs on a server in another region
func Now() time.Time {
	return time.Now().In(Location)
}

// RelativeAge renders the age of t relative to now as
// "D day(s) H hour(s) and M minute(s) ago". Seconds are discarded.
// A timestamp in the future of now clamps to a zero age instead of
// rendering negative components.
func RelativeAge(now, t time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	days := int64(d / (time.Hour * 24))
	rem := int64(d%(time.Hour*24)) / int64(time.Second)
	hours := rem / 3600
	minutes := rem % 3600 / 60

	return fmt.Sprintf(
		"%d day(s) %d hour(s) and %d minute(s) ago",
		days, hours, minutes,
	)
}
