package provider

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// TimestampLabel converts an ISO 8601 duration ("PT1H2M3S") into the
// clock label shown next to search results ("1:02:03", "4:05").
// Unparsable input is returned unchanged.
func TimestampLabel(iso string) string {
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	days, _ := strconv.Atoi(nonEmpty(m[1]))
	hours, _ := strconv.Atoi(nonEmpty(m[2]))
	minutes, _ := strconv.Atoi(nonEmpty(m[3]))
	seconds, _ := strconv.Atoi(nonEmpty(m[4]))

	hours += days * 24
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func nonEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
