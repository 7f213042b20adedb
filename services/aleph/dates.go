package aleph

import (
	"regexp"

	"github.com/pumlitsch/vufind-kvo/pkg/dateconv"
)

// The three date shapes the Aleph server emits.
var (
	dateYmd     = regexp.MustCompile(`^[0-9]{8}$`)                    // 20120725
	dateDayMonY = regexp.MustCompile(`^[0-9]+/[A-Za-z]{3}/[0-9]{4}$`) // 13/jan/2012
	dateDayNumY = regexp.MustCompile(`^[0-9]+/[0-9]+/[0-9]{4}$`)      // 13/7/2012
)

// parseDate normalizes a remote date value to the display format d.m.Y.
// Empty and zero values pass through as the empty string; any other
// unrecognized shape is a *dateconv.ParseError.
func parseDate(date string) (string, error) {
	switch {
	case date == "" || date == "0":
		return "", nil
	case dateYmd.MatchString(date):
		return dateconv.Convert("Ymd", "d.m.Y", date)
	case dateDayMonY.MatchString(date):
		return dateconv.Convert("d/M/Y", "d.m.Y", date)
	case dateDayNumY.MatchString(date):
		return dateconv.Convert("d/m/Y", "d.m.Y", date)
	default:
		return "", &dateconv.ParseError{Value: date}
	}
}
