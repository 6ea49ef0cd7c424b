package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

const hoursPerDay = 24

// WeekdayHourGrid holds hours played per (day of week, hour of day). Every
// cell is present; a cell with no listening is 0.
type WeekdayHourGrid struct {
	// Row order of Hours.
	Days  [7]time.Weekday
	Hours [7][hoursPerDay]float64
}

// Cell returns the hours played on day at hour.
func (m WeekdayHourGrid) Cell(day time.Weekday, hour int) float64 {
	if hour < 0 || hour >= hoursPerDay {
		return 0
	}
	return m.Hours[m.row(day)][hour]
}

func (m WeekdayHourGrid) row(day time.Weekday) int {
	return (int(day) - int(m.Days[0]) + 7) % 7
}

// WeekOrder lists the days of the week beginning with start.
func WeekOrder(start time.Weekday) [7]time.Weekday {
	var days [7]time.Weekday
	for i := range days {
		days[i] = time.Weekday((int(start) + i) % 7)
	}
	return days
}

// ParseWeekday accepts English day names or their three letter prefixes.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid day of week %q", s)
}

// HourByWeekdayMatrix sums hours into the 7x24 grid, rows starting at
// weekStart.
func HourByWeekdayMatrix(events *history.Collection, weekStart time.Weekday) WeekdayHourGrid {
	m := WeekdayHourGrid{Days: WeekOrder(weekStart)}
	for cell, hours := range TotalHoursByKey(events, ByWeekdayHour) {
		m.Hours[m.row(cell.Day)][cell.Hour] += hours
	}
	return m
}

// YearMonthGrid holds hours played per (year, month). Rows cover every
// year from the first to the last year with listening; columns are January
// through December.
type YearMonthGrid struct {
	Years []int         `json:"years" yaml:"years"`
	Hours [][12]float64 `json:"hours" yaml:"hours"`
}

// Cell returns the hours played in month of year, or 0 outside the matrix.
func (m YearMonthGrid) Cell(year int, month time.Month) float64 {
	if len(m.Years) == 0 || month < time.January || month > time.December {
		return 0
	}
	i := year - m.Years[0]
	if i < 0 || i >= len(m.Years) {
		return 0
	}
	return m.Hours[i][month-1]
}

// MonthNames are the column labels of a YearMonthGrid.
func MonthNames() [12]string {
	var names [12]string
	for i := range names {
		names[i] = time.Month(i + 1).String()
	}
	return names
}

// YearMonthMatrix sums hours into a year by month grid.
func YearMonthMatrix(events *history.Collection) YearMonthGrid {
	totals := TotalHoursByKey(events, ByYearMonth)
	if len(totals) == 0 {
		return YearMonthGrid{}
	}

	first, last := yearRange(totals)
	m := YearMonthGrid{
		Years: make([]int, 0, last-first+1),
		Hours: make([][12]float64, last-first+1),
	}
	for y := first; y <= last; y++ {
		m.Years = append(m.Years, y)
	}
	for ym, hours := range totals {
		m.Hours[ym.Year-first][ym.Month-1] += hours
	}
	return m
}

func yearRange(totals map[history.YearMonth]float64) (first, last int) {
	started := false
	for ym := range totals {
		if !started || ym.Year < first {
			first = ym.Year
		}
		if !started || ym.Year > last {
			last = ym.Year
		}
		started = true
	}
	return first, last
}

// MonthHours is one point of a monthly series.
type MonthHours struct {
	Month history.YearMonth `json:"month" yaml:"month"`
	Hours float64           `json:"hours" yaml:"hours"`
}

// MonthlySeries lists hours per month in chronological order, including
// the months without listening between the first and last month.
func MonthlySeries(events *history.Collection) []MonthHours {
	totals := TotalHoursByKey(events, ByYearMonth)
	if len(totals) == 0 {
		return nil
	}

	var first, last history.YearMonth
	started := false
	for ym := range totals {
		if !started || ym.Compare(first) < 0 {
			first = ym
		}
		if !started || ym.Compare(last) > 0 {
			last = ym
		}
		started = true
	}

	var series []MonthHours
	for ym := first; ym.Compare(last) <= 0; ym = ym.Next() {
		series = append(series, MonthHours{Month: ym, Hours: totals[ym]})
	}
	return series
}
