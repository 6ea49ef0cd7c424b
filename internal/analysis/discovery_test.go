package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

func hoursOf(artist, album string, day time.Time, hours float64) history.PlayEvent {
	e := history.NewPlayEvent(day, int64(hours*3_600_000), "t", artist, time.UTC)
	e.AlbumName = album
	return e
}

func TestNewArtists(t *testing.T) {
	jan := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)
	events := history.NewCollection([]history.PlayEvent{
		hoursOf("Old Favourite", "", jan, 3),
		hoursOf("Old Favourite", "", feb, 2),
		hoursOf("Discovery", "", feb, 1),
		hoursOf("Barely", "", feb, 0.1),
		hoursOf("Sampled", "", jan, 0.2),
		hoursOf("Sampled", "", feb, 0.5),
	})

	start := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	got := NewArtists(events, start, end, DefaultDiscoveryOptions)
	assert.Equal(t, []Ranked[string]{{"Discovery", 1}, {"Sampled", 0.5}}, got)
}

func TestNewAlbums(t *testing.T) {
	feb := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)
	events := history.NewCollection([]history.PlayEvent{
		hoursOf("A", "Debut", feb, 1),
		hoursOf("A", "", feb, 5),
	})
	got := NewAlbums(events, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), time.Time{}, DefaultDiscoveryOptions)
	require.Len(t, got, 1)
	assert.Equal(t, Album{Artist: "A", Name: "Debut"}, got[0].Key)
}

func TestForgottenArtists(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	events := history.NewCollection([]history.PlayEvent{
		hoursOf("Obsessed", "", older, 60),
		hoursOf("Liked", "", old, 25),
		hoursOf("Also Liked", "", older, 21),
		hoursOf("Casual", "", old, 1),
		hoursOf("Current", "", now.AddDate(0, 0, -3), 100),
	})

	got := ForgottenArtists(events, ForgottenOptions{Now: now})
	require.Len(t, got[BandObsession], 1)
	assert.Equal(t, "Obsessed", got[BandObsession][0].Key)
	assert.Equal(t, BandObsession, got[BandObsession][0].Band)

	// Longest dormant first.
	require.Len(t, got[BandStrong], 2)
	assert.Equal(t, "Also Liked", got[BandStrong][0].Key)
	assert.Equal(t, "Liked", got[BandStrong][1].Key)
	assert.Equal(t, 517, got[BandStrong][1].DaysSinceLast)
	assert.Empty(t, got[BandModerate])

	byHours := ForgottenArtists(events, ForgottenOptions{Now: now, SortBy: "hours", ResultsPerBand: 1})
	require.Len(t, byHours[BandStrong], 1)
	assert.Equal(t, "Liked", byHours[BandStrong][0].Key)
}

func TestForgottenAlbumsFirstPlayedRange(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := history.NewCollection([]history.PlayEvent{
		hoursOf("A", "Early", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 5),
		hoursOf("A", "Later", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 5),
	})
	got := ForgottenAlbums(events, ForgottenOptions{
		Now:              now,
		FirstPlayedAfter: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Len(t, got[BandModerate], 1)
	assert.Equal(t, "Later", got[BandModerate][0].Key.Name)
}
