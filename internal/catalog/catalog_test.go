package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"
)

type fakeAPI struct {
	artists   []spotify.FullArtist
	playlists []spotify.SimplePlaylist
	pageSize  int
	// Errors returned, in order, before any successful call.
	failures []error
	calls    int
	served   int
}

func (f *fakeAPI) fail() error {
	f.calls++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return err
	}
	return nil
}

func (f *fakeAPI) CurrentUsersTopArtists(ctx context.Context, opts ...spotify.RequestOption) (*spotify.FullArtistPage, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	start := f.served
	end := min(start+f.pageSize, len(f.artists))
	f.served = end
	page := &spotify.FullArtistPage{Artists: f.artists[start:end]}
	if end < len(f.artists) {
		page.Next = fmt.Sprintf("https://api.spotify.com/v1/me/top/artists?offset=%d", end)
	}
	return page, nil
}

func (f *fakeAPI) GetPlaylistsForUser(ctx context.Context, userID string, opts ...spotify.RequestOption) (*spotify.SimplePlaylistPage, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	start := f.served
	end := min(start+f.pageSize, len(f.playlists))
	f.served = end
	page := &spotify.SimplePlaylistPage{Playlists: f.playlists[start:end]}
	if end < len(f.playlists) {
		page.Next = fmt.Sprintf("https://api.spotify.com/v1/users/%s/playlists?offset=%d", userID, end)
	}
	return page, nil
}

func newTestClient(api API) *Client {
	return New(api, WithLimiter(rate.NewLimiter(rate.Inf, 1)), WithRetry(3, time.Millisecond))
}

func artists(names ...string) []spotify.FullArtist {
	var out []spotify.FullArtist
	for i, name := range names {
		out = append(out, spotify.FullArtist{
			SimpleArtist: spotify.SimpleArtist{Name: name, ID: spotify.ID(fmt.Sprintf("id%d", i))},
			Genres:       []string{"rock"},
		})
	}
	return out
}

func TestTopArtistsPages(t *testing.T) {
	api := &fakeAPI{artists: artists("A", "B", "C", "D", "E"), pageSize: 2}
	got, err := newTestClient(api).TopArtists(context.Background(), spotify.ShortTermRange, 0)
	require.NoError(t, err)

	require.Len(t, got, 5)
	assert.Equal(t, 3, api.calls)
	assert.Equal(t, Artist{Rank: 1, Name: "A", ID: "id0", Genres: []string{"rock"}}, got[0])
	assert.Equal(t, 5, got[4].Rank)
}

func TestTopArtistsStopsAtLimit(t *testing.T) {
	api := &fakeAPI{artists: artists("A", "B", "C", "D", "E"), pageSize: 2}
	got, err := newTestClient(api).TopArtists(context.Background(), spotify.LongTermRange, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, api.calls)
}

func TestRetriesServerErrors(t *testing.T) {
	api := &fakeAPI{
		playlists: []spotify.SimplePlaylist{{Name: "Mix", URI: "spotify:playlist:1"}},
		pageSize:  50,
		failures: []error{
			spotify.Error{Status: http.StatusBadGateway, Message: "bad gateway"},
			spotify.Error{Status: http.StatusTooManyRequests, Message: "slow down"},
		},
	}
	got, err := newTestClient(api).Playlists(context.Background(), "1230948981")
	require.NoError(t, err)
	assert.Equal(t, []Playlist{{Index: 1, URI: "spotify:playlist:1", Name: "Mix"}}, got)
	assert.Equal(t, 3, api.calls)
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	api := &fakeAPI{
		pageSize: 50,
		failures: []error{spotify.Error{Status: http.StatusNotFound, Message: "no such user"}},
	}
	_, err := newTestClient(api).Playlists(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 1, api.calls)

	var apiErr spotify.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestGivesUpAfterAttempts(t *testing.T) {
	unavailable := spotify.Error{Status: http.StatusServiceUnavailable, Message: "down"}
	api := &fakeAPI{pageSize: 50, failures: []error{unavailable, unavailable, unavailable, unavailable}}
	_, err := newTestClient(api).TopArtists(context.Background(), spotify.MediumTermRange, 10)
	require.Error(t, err)
	assert.Equal(t, 3, api.calls)
	assert.Contains(t, err.Error(), "medium_term")
}

func TestParseTimeRange(t *testing.T) {
	for in, want := range map[string]spotify.Range{
		"short":       spotify.ShortTermRange,
		"medium_term": spotify.MediumTermRange,
		" Long ":      spotify.LongTermRange,
	} {
		got, err := ParseTimeRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseTimeRange("forever")
	assert.Error(t, err)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Credentials{ClientID: "id"})
	assert.ErrorContains(t, err, "missing Spotify credentials")

	c, err := NewClient(context.Background(), Credentials{AccessToken: "token"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
