package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// ErrEmptyQuery is returned for a blank artist query.
var ErrEmptyQuery = errors.New("please enter an artist name")

// FilterByArtistSubstring keeps the events whose artist name contains query,
// ignoring case. Events without an artist never match.
func FilterByArtistSubstring(events *history.Collection, query string) (*history.Collection, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, ErrEmptyQuery
	}
	return events.Filter(func(e history.PlayEvent) bool {
		return e.HasArtist() && strings.Contains(strings.ToLower(e.ArtistName), needle)
	}), nil
}

// FilterByYears keeps the events played in one of years. No years means no
// filtering.
func FilterByYears(events *history.Collection, years []int) *history.Collection {
	if len(years) == 0 {
		return events
	}
	return events.Filter(func(e history.PlayEvent) bool {
		return slices.Contains(years, e.Year)
	})
}

// FilterByRange keeps the events played in [start, end). A zero start or end
// leaves that side open.
func FilterByRange(events *history.Collection, start, end time.Time) *history.Collection {
	if start.IsZero() && end.IsZero() {
		return events
	}
	return events.Filter(func(e history.PlayEvent) bool {
		if !start.IsZero() && e.PlayedAt.Before(start) {
			return false
		}
		if !end.IsZero() && !e.PlayedAt.Before(end) {
			return false
		}
		return true
	})
}

// Years lists the distinct years with listening, ascending.
func Years(events *history.Collection) []int {
	totals := TotalHoursByKey(events, ByYear)
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// TrackHours is one row of an artist query.
type TrackHours struct {
	Track string  `json:"track"`
	Hours float64 `json:"hours"`
}

// QueryResult is the outcome of an artist query. When nothing matched,
// Rows is empty and Message says so.
type QueryResult struct {
	Query   string       `json:"query"`
	Rows    []TrackHours `json:"rows"`
	Message string       `json:"message,omitempty"`
}

func (r *QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// ArtistTracks groups the events of every artist matching query by track,
// ordered by track name.
func ArtistTracks(events *history.Collection, query string) (*QueryResult, error) {
	matched, err := FilterByArtistSubstring(events, query)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Query: query}
	totals := TotalHoursByKey(matched, ByTrack)
	for track, hours := range totals {
		result.Rows = append(result.Rows, TrackHours{Track: track, Hours: hours})
	}
	slices.SortFunc(result.Rows, func(a, b TrackHours) int {
		return strings.Compare(a.Track, b.Track)
	})

	if result.Empty() {
		result.Message = fmt.Sprintf("No data found for artist '%s'.", query)
	}
	return result, nil
}
