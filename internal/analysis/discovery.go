package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// DiscoveryOptions decides which keys count as new in a period.
type DiscoveryOptions struct {
	// Keys with more hours than this before the period are not new.
	MaxPriorHours float64
	// Keys need more than this many hours in the period.
	MinHours float64
}

var DefaultDiscoveryOptions = DiscoveryOptions{MaxPriorHours: 0.25, MinHours: 0.25}

// NewByKey ranks the keys first listened to in [start, end): those with
// little listening before start and enough inside the period.
func NewByKey[K comparable](events *history.Collection, start, end time.Time, key KeyFunc[K], opts DiscoveryOptions, tieBreak func(a, b K) int) []Ranked[K] {
	prior := TotalHoursByKey(FilterByRange(events, time.Time{}, start), key)
	current := TotalHoursByKey(FilterByRange(events, start, end), key)

	fresh := make(map[K]float64)
	for k, hours := range current {
		if prior[k] <= opts.MaxPriorHours && hours > opts.MinHours {
			fresh[k] = hours
		}
	}
	return TopNFunc(fresh, 0, tieBreak)
}

func NewArtists(events *history.Collection, start, end time.Time, opts DiscoveryOptions) []Ranked[string] {
	return NewByKey(events, start, end, ByArtist, opts, cmp.Compare[string])
}

func NewAlbums(events *history.Collection, start, end time.Time, opts DiscoveryOptions) []Ranked[Album] {
	return NewByKey(events, start, end, ByAlbum, opts, Album.Compare)
}

// Band classifies how heavily something was listened to.
type Band string

const (
	BandObsession Band = "Obsession"
	BandStrong    Band = "Strong"
	BandModerate  Band = "Moderate"
)

// Bands lists the bands from heaviest to lightest.
var Bands = []Band{BandObsession, BandStrong, BandModerate}

// Minimum hours for each band.
var (
	ArtistBandHours = map[Band]float64{BandObsession: 50, BandStrong: 20, BandModerate: 5}
	AlbumBandHours  = map[Band]float64{BandObsession: 25, BandStrong: 10, BandModerate: 3}
)

func bandFor(hours float64, thresholds map[Band]float64) Band {
	for _, b := range Bands {
		if hours >= thresholds[b] {
			return b
		}
	}
	return ""
}

type ForgottenOptions struct {
	// Only keys not played since this time are forgotten. Defaults to 90
	// days before Now.
	LastPlayedBefore time.Time
	// Only keys first played inside this range, when set.
	FirstPlayedAfter  time.Time
	FirstPlayedBefore time.Time

	ResultsPerBand int
	// "dormancy" (default) puts the longest unplayed first; "hours" the most
	// played.
	SortBy string

	Now time.Time
}

// Forgotten is something listened to heavily that has not been played since.
type Forgotten[K any] struct {
	Key           K
	Hours         float64
	Plays         int
	FirstPlayed   time.Time
	LastPlayed    time.Time
	DaysSinceLast int
	Band          Band
}

type playStats struct {
	hours       float64
	plays       int
	first, last time.Time
}

func statsByKey[K comparable](events *history.Collection, key KeyFunc[K]) map[K]*playStats {
	stats := make(map[K]*playStats)
	for e := range events.All() {
		k, ok := key(e)
		if !ok {
			continue
		}
		s, ok := stats[k]
		if !ok {
			s = &playStats{first: e.PlayedAt, last: e.PlayedAt}
			stats[k] = s
		}
		s.hours += e.HoursPlayed
		s.plays++
		if e.PlayedAt.Before(s.first) {
			s.first = e.PlayedAt
		}
		if e.PlayedAt.After(s.last) {
			s.last = e.PlayedAt
		}
	}
	return stats
}

func forgottenByKey[K comparable](events *history.Collection, key KeyFunc[K], thresholds map[Band]float64, opts ForgottenOptions) map[Band][]Forgotten[K] {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	lastBefore := opts.LastPlayedBefore
	if lastBefore.IsZero() {
		lastBefore = now.AddDate(0, 0, -90)
	}

	results := make(map[Band][]Forgotten[K])
	for k, s := range statsByKey(events, key) {
		if !s.last.Before(lastBefore) {
			continue
		}
		if !opts.FirstPlayedAfter.IsZero() && s.first.Before(opts.FirstPlayedAfter) {
			continue
		}
		if !opts.FirstPlayedBefore.IsZero() && !s.first.Before(opts.FirstPlayedBefore) {
			continue
		}
		band := bandFor(s.hours, thresholds)
		if band == "" {
			continue
		}
		results[band] = append(results[band], Forgotten[K]{
			Key:           k,
			Hours:         s.hours,
			Plays:         s.plays,
			FirstPlayed:   s.first,
			LastPlayed:    s.last,
			DaysSinceLast: int(now.Sub(s.last).Hours() / 24),
			Band:          band,
		})
	}

	for band, items := range results {
		slices.SortFunc(items, func(a, b Forgotten[K]) int {
			if opts.SortBy == "hours" {
				if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
					return c
				}
			}
			if c := a.LastPlayed.Compare(b.LastPlayed); c != 0 {
				return c
			}
			return cmp.Compare(b.Hours, a.Hours)
		})
		if opts.ResultsPerBand > 0 && len(items) > opts.ResultsPerBand {
			results[band] = items[:opts.ResultsPerBand]
		}
	}
	return results
}

// ForgottenArtists groups artists not played since opts.LastPlayedBefore by
// how heavily they were played before.
func ForgottenArtists(events *history.Collection, opts ForgottenOptions) map[Band][]Forgotten[string] {
	return forgottenByKey(events, ByArtist, ArtistBandHours, opts)
}

func ForgottenAlbums(events *history.Collection, opts ForgottenOptions) map[Band][]Forgotten[Album] {
	return forgottenByKey(events, ByAlbum, AlbumBandHours, opts)
}
