// Package catalog reads a user's top artists and playlists from the Spotify
// Web API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// Largest page the Web API returns.
	maxPageSize = 50

	defaultAttempts = 5
	defaultDelay    = time.Second
)

// TimeRanges are the windows Spotify computes top items over, shortest first.
var TimeRanges = []spotify.Range{spotify.ShortTermRange, spotify.MediumTermRange, spotify.LongTermRange}

// ParseTimeRange accepts "short", "medium", "long" or the full API names.
func ParseTimeRange(s string) (spotify.Range, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range TimeRanges {
		if s == string(r) || s+"_term" == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid time range %q, want short, medium or long", s)
}

// API is the part of *spotify.Client used by Client.
type API interface {
	CurrentUsersTopArtists(ctx context.Context, opts ...spotify.RequestOption) (*spotify.FullArtistPage, error)
	GetPlaylistsForUser(ctx context.Context, userID string, opts ...spotify.RequestOption) (*spotify.SimplePlaylistPage, error)
}

type Credentials struct {
	ClientID     string
	ClientSecret string
	// A user access token. Required for top artists, which client
	// credentials cannot read.
	AccessToken string
}

type Artist struct {
	Rank   int      `json:"rank" yaml:"rank"`
	Name   string   `json:"name" yaml:"name"`
	ID     string   `json:"id" yaml:"id"`
	Genres []string `json:"genres,omitempty" yaml:"genres,omitempty"`
}

type Playlist struct {
	Index int    `json:"index" yaml:"index"`
	URI   string `json:"uri" yaml:"uri"`
	Name  string `json:"name" yaml:"name"`
}

// Client paces and retries calls to the Web API.
type Client struct {
	api      API
	limiter  *rate.Limiter
	attempts uint
	delay    time.Duration
}

type Option func(*Client)

// WithLimiter replaces the default one request per second pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetry sets how many times a call is attempted and the initial delay
// between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient authenticates with creds and returns a Web API client.
func NewClient(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	var httpClient *http.Client
	switch {
	case creds.AccessToken != "":
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken}))
	case creds.ClientID != "" && creds.ClientSecret != "":
		config := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     spotifyauth.TokenURL,
		}
		httpClient = config.Client(ctx)
	default:
		return nil, errors.New("missing Spotify credentials: set --token, or --client_id and --client_secret")
	}
	return New(spotify.New(httpClient), opts...), nil
}

// New wraps api.
func New(api API, opts ...Option) *Client {
	c := &Client{
		api:      api,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryable reports whether err is a server side or rate limit failure.
func retryable(err error) bool {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status/100 == 5 || apiErr.Status == http.StatusTooManyRequests
	}
	var apiErrPtr *spotify.Error
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Status/100 == 5 || apiErrPtr.Status == http.StatusTooManyRequests
	}
	return false
}

func (c *Client) call(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			return fn()
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
	)
}

// TopArtists returns up to limit of the current user's top artists over
// timeRange.
func (c *Client) TopArtists(ctx context.Context, timeRange spotify.Range, limit int) ([]Artist, error) {
	var artists []Artist
	for offset := 0; limit <= 0 || len(artists) < limit; {
		size := maxPageSize
		if limit > 0 && limit-len(artists) < size {
			size = limit - len(artists)
		}

		var page *spotify.FullArtistPage
		err := c.call(ctx, func() error {
			var err error
			page, err = c.api.CurrentUsersTopArtists(ctx,
				spotify.Timerange(timeRange), spotify.Limit(size), spotify.Offset(offset))
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("fetching %s top artists: %w", timeRange, err)
		}

		for _, a := range page.Artists {
			if limit > 0 && len(artists) == limit {
				break
			}
			artists = append(artists, Artist{
				Rank:   len(artists) + 1,
				Name:   a.Name,
				ID:     string(a.ID),
				Genres: a.Genres,
			})
		}
		if len(page.Artists) == 0 || page.Next == "" {
			break
		}
		offset += len(page.Artists)
	}
	return artists, nil
}

// Playlists returns every public playlist of userID.
func (c *Client) Playlists(ctx context.Context, userID string) ([]Playlist, error) {
	var playlists []Playlist
	for offset := 0; ; {
		var page *spotify.SimplePlaylistPage
		err := c.call(ctx, func() error {
			var err error
			page, err = c.api.GetPlaylistsForUser(ctx, userID, spotify.Limit(maxPageSize), spotify.Offset(offset))
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("fetching playlists for %q: %w", userID, err)
		}

		for _, p := range page.Playlists {
			playlists = append(playlists, Playlist{
				Index: len(playlists) + 1,
				URI:   string(p.URI),
				Name:  p.Name,
			})
		}
		if len(page.Playlists) == 0 || page.Next == "" {
			break
		}
		offset += len(page.Playlists)
	}
	return playlists, nil
}
