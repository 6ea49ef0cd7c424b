// Package analysis derives listening aggregates from a history.Collection.
// Every function here is a pure read of its arguments.
package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// KeyFunc extracts the grouping key of an event. It returns false when the
// event has no value for the key, in which case the event is left out of
// the grouping.
type KeyFunc[K comparable] func(history.PlayEvent) (K, bool)

// WeekdayHour is one cell of the day-of-week by hour-of-day grid.
type WeekdayHour struct {
	Day  time.Weekday
	Hour int
}

func ByTrack(e history.PlayEvent) (string, bool) {
	return e.TrackName, e.HasTrack()
}

func ByArtist(e history.PlayEvent) (string, bool) {
	return e.ArtistName, e.HasArtist()
}

// Album identifies an album by its name and the album artist.
type Album struct {
	Artist string `json:"artist" yaml:"artist"`
	Name   string `json:"name" yaml:"name"`
}

func (a Album) Compare(other Album) int {
	if c := cmp.Compare(a.Artist, other.Artist); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, other.Name)
}

func ByAlbum(e history.PlayEvent) (Album, bool) {
	return Album{Artist: e.ArtistName, Name: e.AlbumName}, e.AlbumName != ""
}

func ByYear(e history.PlayEvent) (int, bool) {
	return e.Year, true
}

func ByYearMonth(e history.PlayEvent) (history.YearMonth, bool) {
	return e.YearMonth, true
}

func ByWeekdayHour(e history.PlayEvent) (WeekdayHour, bool) {
	return WeekdayHour{Day: e.DayOfWeek, Hour: e.HourOfDay}, true
}

// TotalHoursByKey sums HoursPlayed per key.
func TotalHoursByKey[K comparable](events *history.Collection, key KeyFunc[K]) map[K]float64 {
	totals := make(map[K]float64)
	for e := range events.All() {
		k, ok := key(e)
		if !ok {
			continue
		}
		totals[k] += e.HoursPlayed
	}
	return totals
}

// Ranked is one entry of a top-N list.
type Ranked[K any] struct {
	Key   K       `json:"key" yaml:"key"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// TopN ranks an aggregate by hours, largest first, breaking ties by
// ascending key. n <= 0 returns the full ranking.
func TopN[K cmp.Ordered](agg map[K]float64, n int) []Ranked[K] {
	return TopNFunc(agg, n, cmp.Compare[K])
}

// TopNFunc is TopN with a caller supplied tie-break order on keys.
func TopNFunc[K comparable](agg map[K]float64, n int, tieBreak func(a, b K) int) []Ranked[K] {
	ranked := make([]Ranked[K], 0, len(agg))
	for k, hours := range agg {
		ranked = append(ranked, Ranked[K]{Key: k, Hours: hours})
	}
	slices.SortFunc(ranked, func(a, b Ranked[K]) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return tieBreak(a.Key, b.Key)
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopArtists is the n artists with the most hours played.
func TopArtists(events *history.Collection, n int) []Ranked[string] {
	return TopN(TotalHoursByKey(events, ByArtist), n)
}

// TopTracks is the n tracks with the most hours played. Tracks are keyed by
// name alone, so same-named tracks by different artists are merged.
func TopTracks(events *history.Collection, n int) []Ranked[string] {
	return TopN(TotalHoursByKey(events, ByTrack), n)
}

// TopAlbums is the n albums with the most hours played.
func TopAlbums(events *history.Collection, n int) []Ranked[Album] {
	return TopNFunc(TotalHoursByKey(events, ByAlbum), n, Album.Compare)
}
