// package testing contains shared testing utilities
package testing

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Paths served by [SpotifyStub].
const (
	StubTokenPath  = "/api/token"
	StubPlayerPath = "/v1/me/player/currently-playing"
)

// Canned upstream bodies.
const (
	TokenOK          = `{"access_token":"stub_access_token","token_type":"Bearer","expires_in":3600,"scope":"user-read-currently-playing"}`
	TokenInvalid     = `{"error":"invalid_grant","error_description":"Invalid refresh token"}`
	TokenNoAccess    = `{"token_type":"Bearer"}`
	PlayerTwoArtists = `{"is_playing":true,"item":{"name":"Song A","artists":[{"name":"Artist X"},{"name":"Artist Y"}],"album":{"name":"Album Z"}}}`
	PlayerNullItem   = `{"is_playing":false,"item":null}`
	PlayerError      = `{"error":{"status":502,"message":"Bad gateway"}}`
)

// StubResponse is a canned status and body.
type StubResponse struct {
	Status int
	Body   string
}

// SpotifyStub fakes the Spotify token endpoint and player API, counting calls to each.
type SpotifyStub struct {
	Server *httptest.Server

	TokenCalls  atomic.Int32
	PlayerCalls atomic.Int32

	mu     sync.Mutex
	token  StubResponse
	player StubResponse

	lastForm       map[string]string
	lastBearer     string
	lastTokenBasic [2]string

	playerBlock chan struct{}
}

// NewSpotifyStub starts a stub that answers with a valid token and a two-artist track.
// The server is closed when the test finishes.
func NewSpotifyStub(t *testing.T) *SpotifyStub {
	t.Helper()

	s := &SpotifyStub{
		token:  StubResponse{Status: http.StatusOK, Body: TokenOK},
		player: StubResponse{Status: http.StatusOK, Body: PlayerTwoArtists},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(StubTokenPath, s.serveToken)
	mux.HandleFunc(StubPlayerPath, s.servePlayer)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)

	return s
}

// TokenURL is the stub's token endpoint.
func (s *SpotifyStub) TokenURL() string { return s.Server.URL + StubTokenPath }

// APIURL is the stub's Web API base URL.
func (s *SpotifyStub) APIURL() string { return s.Server.URL + "/v1/" }

// SetToken replaces the token endpoint response.
func (s *SpotifyStub) SetToken(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = StubResponse{Status: status, Body: body}
}

// SetPlayer replaces the player endpoint response. A 204 status sends no body.
func (s *SpotifyStub) SetPlayer(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = StubResponse{Status: status, Body: body}
}

// BlockPlayer makes the player endpoint hang until the client gives up or the test ends.
func (s *SpotifyStub) BlockPlayer(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerBlock = block
}

// LastForm returns the form values of the most recent token request.
func (s *SpotifyStub) LastForm() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastForm
}

// LastBasicAuth returns the decoded client id and secret of the most recent token request.
func (s *SpotifyStub) LastBasicAuth() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTokenBasic[0], s.lastTokenBasic[1]
}

// LastBearer returns the bearer token of the most recent player request.
func (s *SpotifyStub) LastBearer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBearer
}

func (s *SpotifyStub) serveToken(w http.ResponseWriter, r *http.Request) {
	s.TokenCalls.Add(1)

	_ = r.ParseForm()
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}

	var basic [2]string
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Basic ") {
		if raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic ")); err == nil {
			id, secret, _ := strings.Cut(string(raw), ":")
			basic = [2]string{id, secret}
		}
	}

	s.mu.Lock()
	s.lastForm = form
	s.lastTokenBasic = basic
	resp := s.token
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}

func (s *SpotifyStub) servePlayer(w http.ResponseWriter, r *http.Request) {
	s.PlayerCalls.Add(1)

	s.mu.Lock()
	s.lastBearer = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	resp := s.player
	block := s.playerBlock
	s.mu.Unlock()

	if block != nil {
		select {
		case <-r.Context().Done():
		case <-block:
		}
		return
	}

	if resp.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    atomic.Int32
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.calls.Add(1)
	return m.response, m.err
}

// Calls returns how many requests reached the round tripper.
func (m *MockRoundTripper) Calls() int {
	return int(m.calls.Load())
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
