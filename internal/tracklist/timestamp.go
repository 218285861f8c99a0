package tracklist

import (
	"strconv"
	"strings"
)

// weights holds the seconds contributed by one unit of each timestamp
// group, indexed from the rightmost group: seconds, minutes, hours, days.
var weights = [...]int{1, 60, 3600, 86400}

// Seconds converts a timestamp of one to four colon-separated integer
// groups into a total second count. Groups are weighted purely by position
// from the right:
//
//	Seconds("59")         // 59
//	Seconds("02:03")      // 123
//	Seconds("01:02:03")   // 3723
//	Seconds("1:02:03:04") // 93784 (1 day, 2 hours, 3 minutes, 4 seconds)
//
// No range validation is applied to individual groups: a minutes group of
// 90 is accepted and contributes 5400 seconds.
//
// Returns a *TimestampError when the group count is outside 1 to 4 or a
// group is not a non-negative integer.
func Seconds(timestamp string) (int, error) {
	groups := strings.Split(timestamp, ":")
	if len(groups) > len(weights) {
		return 0, &TimestampError{Timestamp: timestamp}
	}

	total := 0
	for i, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil || n < 0 {
			return 0, &TimestampError{Timestamp: timestamp}
		}
		total += n * weights[len(groups)-1-i]
	}

	return total, nil
}
