// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a .env file with SPOTIFY_* variables",
			Value: ".env",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

func serveFlags() []cli.Flag {
	return append(configFlags(),
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on (overrides PORT)",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "Response mode: verbose or minimal",
		},
		&cli.StringFlag{
			Name:  "static-dir",
			Usage: "Directory holding index.html (default: embedded page)",
		},
	)
}

// serveCommand runs the HTTP proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the now-playing HTTP proxy",
		Flags:  serveFlags(),
		Action: r.Serve,
	}
}

// checkCommand validates Spotify credentials with a single token exchange
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Exchange the refresh token once and report whether the credentials work",
		Flags: append(configFlags(),
			&cli.BoolFlag{
				Name:  "show-token",
				Usage: "Print the issued access token",
			},
		),
		Action: r.Check,
	}
}

// currentCommand prints the currently playing track
func currentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "current",
		Aliases: []string{"now"},
		Usage:   "Print the track currently playing",
		Flags: append(configFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		),
		Action: r.Current,
	}
}

// loginCommand obtains a refresh token through the authorization code flow
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authorize with Spotify and print a refresh token",
		Flags: append(configFlags(),
			&cli.StringFlag{
				Name:  "code",
				Usage: "Exchange an authorization code copied from the /callback page instead of opening a browser",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Write the refresh token to the config file",
			},
		),
		Action: r.Login,
	}
}

// setupCommand handles configuration file operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
