package history

import (
	"fmt"
	"iter"
	"time"
)

const msPerHour = 3_600_000

// YearMonth identifies a calendar month, used as the monthly bucketing key.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Compare orders months chronologically.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	}
	return 0
}

// Next returns the month after ym.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// PlayEvent is one listening record. The derived fields are filled in by
// NewPlayEvent and never change afterwards.
type PlayEvent struct {
	PlayedAt   time.Time
	DurationMs int64

	// Empty means the export had null or no value, e.g. podcast episodes.
	TrackName  string
	ArtistName string
	AlbumName  string
	Platform   string
	Skipped    bool

	HoursPlayed float64
	HourOfDay   int
	DayOfWeek   time.Weekday
	Month       time.Month
	Year        int
	YearMonth   YearMonth
}

// NewPlayEvent derives the time features of an event in loc. A nil loc
// means UTC.
func NewPlayEvent(playedAt time.Time, durationMs int64, track, artist string, loc *time.Location) PlayEvent {
	if loc == nil {
		loc = time.UTC
	}
	local := playedAt.In(loc)
	return PlayEvent{
		PlayedAt:    playedAt,
		DurationMs:  durationMs,
		TrackName:   track,
		ArtistName:  artist,
		HoursPlayed: float64(durationMs) / msPerHour,
		HourOfDay:   local.Hour(),
		DayOfWeek:   local.Weekday(),
		Month:       local.Month(),
		Year:        local.Year(),
		YearMonth:   YearMonth{Year: local.Year(), Month: local.Month()},
	}
}

func (e PlayEvent) HasTrack() bool {
	return e.TrackName != ""
}

func (e PlayEvent) HasArtist() bool {
	return e.ArtistName != ""
}

// MonthName is the English month name, e.g. "January".
func (e PlayEvent) MonthName() string {
	return e.Month.String()
}

// Collection is an ordered, read-only sequence of play events.
type Collection struct {
	events []PlayEvent
}

// NewCollection copies events into a new Collection.
func NewCollection(events []PlayEvent) *Collection {
	c := &Collection{events: make([]PlayEvent, len(events))}
	copy(c.events, events)
	return c
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.events)
}

// At returns a copy of the i'th event.
func (c *Collection) At(i int) PlayEvent {
	return c.events[i]
}

// All iterates over the events in load order.
func (c *Collection) All() iter.Seq[PlayEvent] {
	return func(yield func(PlayEvent) bool) {
		if c == nil {
			return
		}
		for _, e := range c.events {
			if !yield(e) {
				return
			}
		}
	}
}

// Filter returns a new Collection with the events for which keep returns
// true, in the same order.
func (c *Collection) Filter(keep func(PlayEvent) bool) *Collection {
	out := &Collection{}
	for e := range c.All() {
		if keep(e) {
			out.events = append(out.events, e)
		}
	}
	return out
}

// TotalHours sums HoursPlayed over every event.
func (c *Collection) TotalHours() float64 {
	var total float64
	for e := range c.All() {
		total += e.HoursPlayed
	}
	return total
}

// MarshalText encodes ym as "2006-01".
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}
