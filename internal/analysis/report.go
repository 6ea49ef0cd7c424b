package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// SummaryOptions sizes the ranked sections of a Report.
type SummaryOptions struct {
	TopArtists      int
	TopTracks       int
	TracksPerArtist int

	// Records the loader skipped, copied into the report totals.
	SkippedRecords int

	// Shown in the report metadata; zero values mean "all time".
	Start time.Time
	End   time.Time
	Years []int

	// Generation time; defaults to time.Now.
	Now time.Time
}

// Summarize builds a listening report for events.
func Summarize(events *history.Collection, opts SummaryOptions) *Report {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedDate: now.Format("2006-01-02"),
			Period:        describePeriod(opts.Start, opts.End),
			Years:         opts.Years,
		},
		Totals: computeTotals(events),
	}
	report.Totals.SkippedRecords = opts.SkippedRecords

	for _, artist := range TopArtists(events, opts.TopArtists) {
		stat := ArtistStat{Name: artist.Key, Hours: round2(artist.Hours)}
		if opts.TracksPerArtist > 0 {
			byArtist := events.Filter(func(e history.PlayEvent) bool {
				return e.ArtistName == artist.Key
			})
			for _, track := range TopTracks(byArtist, opts.TracksPerArtist) {
				stat.TopTracks = append(stat.TopTracks, fmt.Sprintf("%s (%.1fh)", track.Key, track.Hours))
			}
		}
		report.TopArtists = append(report.TopArtists, stat)
	}

	for _, track := range TopTracks(events, opts.TopTracks) {
		report.TopTracks = append(report.TopTracks, TrackStat{Name: track.Key, Hours: round2(track.Hours)})
	}

	for _, point := range MonthlySeries(events) {
		report.Monthly = append(report.Monthly, MonthStat{Month: point.Month.String(), Hours: round2(point.Hours)})
	}

	report.Patterns = computePatterns(events)
	return report
}

func computeTotals(events *history.Collection) Totals {
	t := Totals{Plays: events.Len()}
	artists := make(map[string]bool)
	tracks := make(map[string]bool)
	var first, last time.Time
	for e := range events.All() {
		t.Hours += e.HoursPlayed
		if e.HasArtist() {
			artists[e.ArtistName] = true
		}
		if e.HasTrack() {
			tracks[e.TrackName] = true
		}
		if first.IsZero() || e.PlayedAt.Before(first) {
			first = e.PlayedAt
		}
		if last.IsZero() || e.PlayedAt.After(last) {
			last = e.PlayedAt
		}
	}
	t.Hours = round2(t.Hours)
	t.DistinctArtists = len(artists)
	t.DistinctTracks = len(tracks)
	if !first.IsZero() {
		t.FirstPlayed = first.UTC().Format(time.RFC3339)
		t.LastPlayed = last.UTC().Format(time.RFC3339)
	}
	return t
}

func computePatterns(events *history.Collection) Patterns {
	var p Patterns
	if events.Len() == 0 {
		return p
	}

	weekdays := TopNFunc(TotalHoursByKey(events, func(e history.PlayEvent) (time.Weekday, bool) {
		return e.DayOfWeek, true
	}), 1, func(a, b time.Weekday) int { return int(a) - int(b) })
	if len(weekdays) > 0 {
		p.BusiestWeekday = weekdays[0].Key.String()
	}

	hours := TopN(TotalHoursByKey(events, func(e history.PlayEvent) (int, bool) {
		return e.HourOfDay, true
	}), 1)
	if len(hours) > 0 {
		p.BusiestHour = hours[0].Key
	}

	months := TopNFunc(TotalHoursByKey(events, ByYearMonth), 1, history.YearMonth.Compare)
	if len(months) > 0 {
		p.BusiestMonth = months[0].Key.String()
	}

	zero := 0
	for e := range events.All() {
		if e.DurationMs == 0 {
			zero++
		}
	}
	p.ZeroLengthRate = math.Round(float64(zero)/float64(events.Len())*100) / 100
	return p
}

func describePeriod(start, end time.Time) string {
	const dateFormat = "2006-01-02"
	switch {
	case start.IsZero() && end.IsZero():
		return "all time"
	case end.IsZero():
		return fmt.Sprintf("from %s", start.Format(dateFormat))
	case start.IsZero():
		return fmt.Sprintf("until %s", end.Format(dateFormat))
	}
	return fmt.Sprintf("%s to %s", start.Format(dateFormat), end.Format(dateFormat))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
