package web

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/server"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/services"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/charmbracelet/log"
)

const (
	noTrackPlaying   = "No track playing"
	fetchTrackFailed = "Failed to fetch track"
	credentialsValid = "Spotify credentials are valid!"
	noAuthCode       = "No authorization code received"
)

// HandlersOpts contains the dependencies for [NewHandlers].
type HandlersOpts struct {
	Config  *shared.Config
	Service services.Service
	Static  fs.FS
	Logger  *log.Logger
	Now     func() time.Time
}

// Handlers serves the track proxy routes. It holds no per-request state.
type Handlers struct {
	config  *shared.Config
	service services.Service
	static  fs.FS
	logger  *log.Logger
	now     func() time.Time
}

// NewHandlers creates the route handlers. Config is shared, not copied, and must not be mutated afterwards.
func NewHandlers(opts HandlersOpts) *Handlers {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Static == nil {
		opts.Static, _ = StaticFS("")
	}

	return &Handlers{
		config:  opts.Config,
		service: opts.Service,
		static:  opts.Static,
		logger:  shared.WithLogger(opts.Logger, "component", "web"),
		now:     opts.Now,
	}
}

// Register adds the routes for the configured mode to router.
func (h *Handlers) Register(router server.Router) {
	router.Handle(http.MethodGet, "/", http.FileServerFS(h.static))
	router.Handle(http.MethodGet, "/current-track", http.HandlerFunc(h.CurrentTrack))

	if !h.config.Server.Verbose() {
		return
	}

	router.Handle(http.MethodGet, "/test-spotify", http.HandlerFunc(h.TestSpotify))
	router.Handle(http.MethodGet, "/callback", http.HandlerFunc(h.Callback))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(h.Health))
}

type verboseTrack struct {
	Track     string `json:"track"`
	Artist    string `json:"artist"`
	IsPlaying bool   `json:"is_playing"`
	Success   bool   `json:"success"`
}

type minimalTrack struct {
	Track  *string `json:"track"`
	Artist *string `json:"artist"`
}

type trackError struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
	Reason  string `json:"reason,omitempty"`
	Success *bool  `json:"success,omitempty"`
}

// CurrentTrack exchanges the refresh token and relays the account's current item.
func (h *Handlers) CurrentTrack(w http.ResponseWriter, r *http.Request) {
	verbose := h.config.Server.Verbose()

	h.logger.Info("fetching currently playing track")
	np, err := services.CurrentTrack(r.Context(), h.service)
	if err != nil {
		h.trackFailed(w, err, verbose)
		return
	}
	h.logger.Info("track fetched", "playing", np.String())

	switch {
	case np == nil && verbose:
		h.writeJSON(w, http.StatusOK, verboseTrack{Track: noTrackPlaying, Artist: "", IsPlaying: false, Success: true})
	case np == nil:
		h.writeJSON(w, http.StatusOK, minimalTrack{})
	case verbose:
		h.writeJSON(w, http.StatusOK, verboseTrack{Track: np.Track, Artist: np.Artist, IsPlaying: true, Success: true})
	default:
		h.writeJSON(w, http.StatusOK, minimalTrack{Track: &np.Track, Artist: &np.Artist})
	}
}

func (h *Handlers) trackFailed(w http.ResponseWriter, err error, verbose bool) {
	details := services.Details(err)
	h.logger.Error("failed to fetch track", "error", err, "reason", services.Reason(err), "details", details)

	body := trackError{Error: fetchTrackFailed, Details: details}
	if verbose {
		success := false
		body.Reason = services.Reason(err)
		body.Success = &success
	}
	h.writeJSON(w, http.StatusInternalServerError, body)
}

// TestSpotify runs only the token exchange so an operator can validate credentials.
func (h *Handlers) TestSpotify(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("testing spotify credentials")

	token, err := h.service.AccessToken(r.Context())
	if err != nil {
		details := services.Details(err)
		h.logger.Error("spotify credential test failed", "error", err, "details", details)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   details,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      credentialsValid,
		"access_token": token.AccessToken,
	})
}

var callbackPage = template.Must(template.New("callback").Parse(`
<h2>Auth successful!</h2>
<p>Your authorization code:</p>
<textarea style="width: 100%; height: 50px;">{{.}}</textarea>
<p>Copy this code and use it to get your refresh token.</p>
`))

// Callback echoes an OAuth authorization code for manual copy-paste. It performs no exchange.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(noAuthCode))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := callbackPage.Execute(w, code); err != nil {
		h.logger.Error("failed to render callback page", "error", err)
	}
}

// Health reports process status and whether each credential is configured, never the values.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	creds := h.config.Credentials.Spotify

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		"environment": map[string]string{
			"client_id":     shared.Presence(creds.ClientID),
			"client_secret": shared.Presence(creds.ClientSecret),
			"refresh_token": shared.Presence(creds.RefreshToken),
		},
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
