// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1/"
	defaultTimeout = 10 * time.Second
)

// SpotifyOpts configures a [SpotifyService]. Empty URLs fall back to the public Spotify hosts.
type SpotifyOpts struct {
	Credentials shared.SpotifyConfig
	AuthURL     string
	TokenURL    string
	APIURL      string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// SpotifyService implements the Service interface for Spotify API interactions.
// Uses [oauth2] for the refresh-token exchange and [spotify.Client] for player lookups.
//
// All fields are read-only after construction, so one instance serves concurrent requests.
type SpotifyService struct {
	config      *oauth2.Config
	credentials shared.SpotifyConfig
	apiURL      string
	timeout     time.Duration
	httpClient  *http.Client
}

// NewSpotifyService creates a new Spotify service from opts.
//
// Missing credentials do not fail construction; [SpotifyService.AccessToken] reports them when called.
func NewSpotifyService(opts SpotifyOpts) *SpotifyService {
	if opts.AuthURL == "" {
		opts.AuthURL = spotifyauth.AuthURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyauth.TokenURL
	}
	if opts.APIURL == "" {
		opts.APIURL = spotifyBaseURL
	}
	if !strings.HasSuffix(opts.APIURL, "/") {
		opts.APIURL += "/"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	redirectURI := opts.Credentials.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://127.0.0.1:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     opts.Credentials.ClientID,
		ClientSecret: opts.Credentials.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadPlaybackState,
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:   opts.AuthURL,
			TokenURL:  opts.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyService{
		config:      config,
		credentials: opts.Credentials,
		apiURL:      opts.APIURL,
		timeout:     opts.Timeout,
		httpClient:  opts.HTTPClient,
	}
}

// NewSpotifyServiceFromConfig builds a [SpotifyService] from the application config.
func NewSpotifyServiceFromConfig(config *shared.Config) *SpotifyService {
	return NewSpotifyService(SpotifyOpts{
		Credentials: config.Credentials.Spotify,
		AuthURL:     config.Upstream.AuthURL,
		TokenURL:    config.Upstream.TokenURL,
		APIURL:      config.Upstream.APIURL,
		Timeout:     config.Upstream.Timeout(),
	})
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the underlying OAuth2 configuration.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// AccessToken performs the refresh_token grant against the token endpoint.
//
// The request carries HTTP Basic client authentication and is bounded by the configured timeout.
// A new exchange happens on every call.
func (s *SpotifyService) AccessToken(ctx context.Context) (*oauth2.Token, error) {
	if err := s.credentials.Validate(); err != nil {
		return nil, &UpstreamError{Op: OpToken, Kind: shared.ErrMissingCredentials, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	seed := &oauth2.Token{RefreshToken: s.credentials.RefreshToken}
	token, err := s.config.TokenSource(ctx, seed).Token()
	if err != nil {
		return nil, tokenError(err)
	}

	return token, nil
}

// CurrentlyPlaying queries me/player/currently-playing with token as the bearer credential.
func (s *SpotifyService) CurrentlyPlaying(ctx context.Context, token *oauth2.Token) (*NowPlaying, error) {
	if token == nil || token.AccessToken == "" {
		return nil, &UpstreamError{Op: OpCurrentlyPlaying, Kind: shared.ErrAuthFailed, Err: fmt.Errorf("no access token")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client := s.client(ctx, token)
	current, err := client.PlayerCurrentlyPlaying(ctx)
	if errors.Is(err, io.EOF) {
		// 200 with an empty body: nothing is playing
		return nil, nil
	}
	if err != nil {
		return nil, playerError(err)
	}

	return convertCurrentlyPlaying(current), nil
}

// client returns a [spotify.Client] that sends token as a bearer header on s.httpClient's transport.
func (s *SpotifyService) client(ctx context.Context, token *oauth2.Token) *spotify.Client {
	bearer := &oauth2.Token{AccessToken: token.AccessToken, TokenType: "Bearer"}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(bearer))

	return spotify.New(httpClient, spotify.WithBaseURL(s.apiURL))
}

// convertCurrentlyPlaying maps the player response, returning nil when there is no item.
func convertCurrentlyPlaying(current *spotify.CurrentlyPlaying) *NowPlaying {
	if current == nil || current.Item == nil {
		return nil
	}

	artists := make([]string, len(current.Item.Artists))
	for i, a := range current.Item.Artists {
		artists[i] = a.Name
	}

	return &NowPlaying{
		Track:     current.Item.Name,
		Artist:    strings.Join(artists, ", "),
		Artists:   artists,
		Album:     current.Item.Album.Name,
		IsPlaying: current.Playing,
	}
}
