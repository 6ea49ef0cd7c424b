package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ParsedDate is a date argument and the precision it was given with.
type ParsedDate struct {
	Date time.Time

	Year  bool
	Month bool
	Day   bool

	// Relative dates ("30d", "6m") count back from now and run until now.
	Relative bool
}

var relativeDatePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseDateRangeFromArgs turns zero, one or two date arguments into a
// [start, end) range in loc. No arguments means all time, which is the zero
// range.
func parseDateRangeFromArgs(args []string, loc *time.Location) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:

	case 1:
		start, end, err = getImplicitDateRange(args[0], loc)

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1], loc)

	default:
		err = fmt.Errorf("Expected at most two date arguments")
	}
	return
}

func getImplicitDateRange(ds string, loc *time.Location) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds, loc)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Relative:
		end = time.Now()

	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string, loc *time.Location) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString, loc)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString, loc)
	if err != nil {
		return
	}
	end = endParsed.Date

	if !end.After(start) {
		err = fmt.Errorf("End date %q is not after start date %q", endString, startString)
	}
	return
}

func parseSingleDatestring(ds string, loc *time.Location) (date ParsedDate, err error) {
	if m := relativeDatePattern.FindStringSubmatch(ds); m != nil {
		amount, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			err = fmt.Errorf("Parsing relative datestring: %w", convErr)
			return
		}
		now := time.Now().In(loc)
		switch m[2] {
		case "d":
			date.Date = now.AddDate(0, 0, -amount)
		case "w":
			date.Date = now.AddDate(0, 0, -amount*7)
		case "m":
			date.Date = now.AddDate(0, -amount, 0)
		case "y":
			date.Date = now.AddDate(-amount, 0, 0)
		}
		date.Relative = true
		return
	}

	matched, err := regexp.Match(`^\d{4}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as year: %w", err)
		return
	}
	if matched {
		date.Date, err = time.ParseInLocation("2006", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as month: %w", err)
		return
	}
	if matched {
		date.Date, err = time.ParseInLocation("2006-01", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as day: %w", err)
		return
	}
	if matched {
		date.Date, err = time.ParseInLocation("2006-01-02", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
