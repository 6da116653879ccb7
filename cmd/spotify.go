package main

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/server"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/services"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const authTimeout = 2 * time.Minute

type currentTrackOutput struct {
	Track     string   `json:"track"`
	Artist    string   `json:"artist"`
	Artists   []string `json:"artists"`
	Album     string   `json:"album"`
	IsPlaying bool     `json:"is_playing"`
}

// Check performs one token exchange and reports the outcome.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	creds := config.Credentials.Spotify
	r.writePlain("%s\n\n", r.palette.CredentialReport(
		[]string{"client_id", "client_secret", "refresh_token"},
		map[string]bool{
			"client_id":     creds.ClientID != "",
			"client_secret": creds.ClientSecret != "",
			"refresh_token": creds.RefreshToken != "",
		},
	))

	r.logger.Info("testing spotify credentials")
	token, err := r.service(config).AccessToken(ctx)
	if err != nil {
		r.writePlain("%s\n", r.palette.StatusLine(false, "Spotify rejected the token exchange"))
		r.logger.Error("spotify test failed", "reason", services.Reason(err), "details", services.Details(err))
		return err
	}

	r.writePlain("%s\n", r.palette.StatusLine(true, "Spotify credentials are valid!"))
	if cmd.Bool("show-token") {
		r.writePlain("access_token: %s\n", token.AccessToken)
	}
	return nil
}

// Current runs the token exchange and now-playing lookup once.
func (r *Runner) Current(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	np, err := services.CurrentTrack(ctx, r.service(config))
	if err != nil {
		r.logger.Error("failed to fetch track", "reason", services.Reason(err), "details", services.Details(err))
		return err
	}

	if cmd.Bool("json") || cmd.Bool("pretty") {
		if np == nil {
			return r.writeJSON(currentTrackOutput{Track: "No track playing"}, cmd.Bool("pretty"))
		}
		return r.writeJSON(currentTrackOutput{
			Track:     np.Track,
			Artist:    np.Artist,
			Artists:   np.Artists,
			Album:     np.Album,
			IsPlaying: np.IsPlaying,
		}, cmd.Bool("pretty"))
	}

	if np == nil {
		return r.writePlain("%s\n", r.palette.Help("No track playing"))
	}

	status := "▶"
	if !np.IsPlaying {
		status = "⏸"
	}
	return r.writePlain("%s %s\n", status, r.palette.Title(np.String()))
}

// Login runs the authorization code flow and prints the issued refresh token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	creds := config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set before login", shared.ErrMissingCredentials)
	}

	spotifyService := services.NewSpotifyServiceFromConfig(config)

	var token *oauth2.Token
	if code := cmd.String("code"); code != "" {
		token, err = server.NewOAuthHandler(spotifyService.GetOAuthConfig(), "").Exchange(ctx, code)
	} else {
		token, err = r.doOAuth(ctx, config, spotifyService)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	if token.RefreshToken == "" {
		return fmt.Errorf("%w: no refresh token issued", shared.ErrAuthFailed)
	}

	r.writePlainln("%s", r.palette.StatusLine(true, "Authorization successful"))
	r.writePlain("SPOTIFY_REFRESH_TOKEN=%s\n", token.RefreshToken)

	if !cmd.Bool("save") {
		return nil
	}

	configPath := cmd.String("config")
	if err := saveRefreshToken(configPath, token.RefreshToken); err != nil {
		return err
	}
	r.writePlain("%s\n", r.palette.StatusLine(true, "Refresh token saved to "+configPath))
	return nil
}

// saveRefreshToken writes only the refresh token into the config file at path, so values that came from
// .env, the environment or flags stay out of it.
func saveRefreshToken(path, refreshToken string) error {
	fileConfig := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		fileConfig = loaded
	}

	fileConfig.Credentials.Spotify.RefreshToken = refreshToken
	if err := shared.SaveConfig(path, fileConfig); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// doOAuth serves the redirect URI's /callback, opens the browser and waits for the code exchange.
func (r *Runner) doOAuth(ctx context.Context, config *shared.Config, srv *services.SpotifyService) (*oauth2.Token, error) {
	redirect, err := url.Parse(srv.GetOAuthConfig().RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, config.Credentials.Spotify.RedirectURI)
	}

	state := shared.GenerateID()
	authURL := srv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(srv.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	httpServer := server.New(redirect.Host, router, r.logger)
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", redirect.Host)
		serverErrors <- httpServer.Serve(serveCtx, ln)
	}()

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
