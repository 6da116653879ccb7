package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/services"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/WolvTMG/tmgmidvite-xyz/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	spotify     services.Service
	logger      *log.Logger
	output      io.Writer
	palette     *ui.Palette
	openBrowser func(string) error
	lookupEnv   func(string) (string, bool)
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from flags, the .env file and the environment on first use.
// A nil Spotify service is built from that config.
type RunnerOpts struct {
	Config      *shared.Config
	Spotify     services.Service
	Logger      *log.Logger
	Output      io.Writer
	Palette     *ui.Palette
	OpenBrowser func(string) error
	LookupEnv   func(string) (string, bool)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = ui.Default
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	return &Runner{
		config:      opts.Config,
		spotify:     opts.Spotify,
		logger:      opts.Logger,
		output:      opts.Output,
		palette:     opts.Palette,
		openBrowser: opts.OpenBrowser,
		lookupEnv:   opts.LookupEnv,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, checkCommand, currentCommand, loginCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration once: defaults, then the TOML file, then .env and
// environment variables, then command flags.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if err := shared.LoadDotEnv(cmd.String("env-file")); err != nil {
		r.logger.Warn("failed to load .env file", "error", err)
	}

	config := shared.DefaultConfig()
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
		r.logger.Debug("loaded config file", "path", configPath)
	}

	if err := shared.ApplyEnv(config, r.lookupEnv); err != nil {
		return nil, err
	}

	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("mode") {
		config.Server.Mode = cmd.String("mode")
	}
	if cmd.IsSet("static-dir") {
		config.Server.StaticDir = cmd.String("static-dir")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	r.config = config
	return config, nil
}

// service returns the injected [services.Service] or builds a Spotify one from config.
func (r *Runner) service(config *shared.Config) services.Service {
	if r.spotify != nil {
		return r.spotify
	}
	r.spotify = services.NewSpotifyServiceFromConfig(config)
	return r.spotify
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
