package main

import (
	"context"
	"fmt"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/server"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve starts the track proxy and blocks until ctx is canceled.
//
// Missing credentials are logged but do not stop startup; they surface on the first request.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	r.logEnvironment(config)

	static, err := web.StaticFS(config.Server.StaticDir)
	if err != nil {
		return fmt.Errorf("%w: static_dir: %v", shared.ErrInvalidConfig, err)
	}

	handlers := web.NewHandlers(web.HandlersOpts{
		Config:  config,
		Service: r.service(config),
		Static:  static,
		Logger:  r.logger,
	})

	router := server.NewBasicRouter()
	router.Use(server.DefaultMiddleware(r.logger)...)
	router.Use(server.CORS(config.Server.AllowedOrigins))
	handlers.Register(router)

	srv := server.New(config.Server.Addr(), router, r.logger)

	base := fmt.Sprintf("http://localhost:%d", config.Server.Port)
	r.logger.Info("server running", "addr", srv.Addr(), "mode", config.Server.Mode)
	r.logger.Info("current track", "url", base+"/current-track")
	if config.Server.Verbose() {
		r.logger.Info("health check", "url", base+"/health")
		r.logger.Info("spotify test", "url", base+"/test-spotify")
	}

	return srv.Run(ctx)
}

func (r *Runner) logEnvironment(config *shared.Config) {
	creds := config.Credentials.Spotify
	r.logger.Info("environment check",
		"port", config.Server.Port,
		"client_id", loadedOrMissing(creds.ClientID),
		"client_secret", loadedOrMissing(creds.ClientSecret),
		"refresh_token", loadedOrMissing(creds.RefreshToken),
	)

	if err := creds.Validate(); err != nil {
		r.logger.Warn("spotify credentials incomplete; /current-track will fail until they are set", "error", err)
	}
}

func loadedOrMissing(v string) string {
	if v == "" {
		return "✗ missing"
	}
	return "✓ loaded"
}
