package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	tu "github.com/WolvTMG/tmgmidvite-xyz/internal/testing"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func stubConfig(stub *tu.SpotifyStub) *shared.Config {
	config := shared.DefaultConfig()
	config.Server.Host = "127.0.0.1"
	config.Server.Port = 0
	config.Credentials.Spotify = shared.SpotifyConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		RefreshToken: "test_refresh_token",
		RedirectURI:  "http://127.0.0.1:3000/callback",
	}
	if stub != nil {
		config.Upstream.TokenURL = stub.TokenURL()
		config.Upstream.APIURL = stub.APIURL()
	}
	return config
}

func noEnv(string) (string, bool) { return "", false }

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config != nil {
				t.Error("expected config to be loaded lazily")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
			if runner.palette == nil {
				t.Error("expected default palette to be set")
			}
			if runner.openBrowser == nil || runner.lookupEnv == nil {
				t.Error("expected browser and env hooks to be set")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil)})
		commands := runner.register()

		want := []string{"serve", "check", "current", "login", "config"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("command %d: expected %q, got %q", i, name, commands[i].Name)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(nil)})

			if err := runner.writeJSON(map[string]string{"track": "Song A"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := output.String(); got != "{\"track\":\"Song A\"}\n" {
				t.Errorf("unexpected output %q", got)
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(nil)})

			if err := runner.writeJSON(map[string]string{"track": "Song A"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output.String(), "\n  \"track\"") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("unmarshalable value", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})
			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: shared.NewLogger(nil)})
			if err := runner.writeJSON("x", false); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(nil)})

		runner.writePlain("a=%d\n", 1)
		runner.writePlainln("b=%d", 2)

		if got := output.String(); got != "a=1\n\nb=2\n" {
			t.Errorf("unexpected output %q", got)
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: shared.NewLogger(nil)})
		if err := failing.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
		if err := failing.writePlainln("x"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	run := func(t *testing.T, runner *Runner, args ...string) (*shared.Config, error) {
		t.Helper()
		var config *shared.Config
		cmd := &cli.Command{
			Name:   "serve",
			Flags:  serveFlags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				var err error
				config, err = runner.loadConfig(c)
				return err
			},
		}
		err := cmd.Run(context.Background(), append([]string{"serve", "--env-file", ""}, args...))
		return config, err
	}

	t.Run("defaults when no config file exists", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil), LookupEnv: noEnv})

		config, err := run(t, runner, "--config", filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected default port 3000, got %d", config.Server.Port)
		}
		if config.Server.Mode != shared.ModeVerbose {
			t.Errorf("expected verbose mode, got %q", config.Server.Mode)
		}
	})

	t.Run("file, then environment, then flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
port = 4000
mode = "minimal"

[credentials.spotify]
client_id = "file_id"
client_secret = "file_secret"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		env := map[string]string{
			shared.EnvPort:         "5000",
			shared.EnvRefreshToken: "env_refresh",
		}
		runner := NewRunner(RunnerOpts{
			Logger:    shared.NewLogger(nil),
			LookupEnv: func(k string) (string, bool) {
				v, ok := env[k]
				return v, ok
			},
		})

		config, err := run(t, runner, "--config", path, "--mode", "verbose")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected env port 5000, got %d", config.Server.Port)
		}
		if config.Server.Mode != shared.ModeVerbose {
			t.Errorf("expected flag to override mode, got %q", config.Server.Mode)
		}
		if config.Credentials.Spotify.ClientID != "file_id" {
			t.Errorf("expected client id from file, got %q", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.RefreshToken != "env_refresh" {
			t.Errorf("expected refresh token from env, got %q", config.Credentials.Spotify.RefreshToken)
		}
		if config.Upstream.TokenURL == "" {
			t.Error("expected upstream defaults to survive a partial file")
		}
		if runner.config != config {
			t.Error("expected config to be cached on the runner")
		}
	})

	t.Run("debug flag lowers log level", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), LookupEnv: noEnv})

		if _, err := run(t, runner, "--config", filepath.Join(t.TempDir(), "none.toml"), "--debug"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
		}
	})

	t.Run("port flag wins", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil), LookupEnv: noEnv})

		config, err := run(t, runner, "--config", filepath.Join(t.TempDir(), "none.toml"), "--port", "8080")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil), LookupEnv: noEnv})

		_, err := run(t, runner, "--config", filepath.Join(t.TempDir(), "none.toml"), "--mode", "loud")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid PORT", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Logger:    shared.NewLogger(nil),
			LookupEnv: func(k string) (string, bool) {
				if k == shared.EnvPort {
					return "abc", true
				}
				return "", false
			},
		})

		_, err := run(t, runner, "--config", filepath.Join(t.TempDir(), "none.toml"))
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[server\nport ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil), LookupEnv: noEnv})

		if _, err := run(t, runner, "--config", path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestCheck(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: output, Logger: shared.NewLogger(nil)})

		if err := checkCommand(runner).Run(context.Background(), []string{"check", "--show-token"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := output.String()
		for _, want := range []string{"client_id:", "✓ loaded", "Spotify credentials are valid!", "access_token: stub_access_token"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected output to contain %q, got %q", want, got)
			}
		}
		if stub.TokenCalls.Load() != 1 {
			t.Errorf("expected 1 token call, got %d", stub.TokenCalls.Load())
		}
		if stub.PlayerCalls.Load() != 0 {
			t.Error("check must not query the player")
		}
	})

	t.Run("rejected refresh token", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetToken(http.StatusBadRequest, tu.TokenInvalid)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: output, Logger: shared.NewLogger(nil)})

		err := checkCommand(runner).Run(context.Background(), []string{"check"})
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if !strings.Contains(output.String(), "✗") {
			t.Errorf("expected failure marker, got %q", output.String())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		config := stubConfig(stub)
		config.Credentials.Spotify.RefreshToken = ""
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(nil)})

		err := checkCommand(runner).Run(context.Background(), []string{"check"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if !strings.Contains(output.String(), "refresh_token: ✗ missing") {
			t.Errorf("expected missing refresh token line, got %q", output.String())
		}
		if stub.TokenCalls.Load() != 0 {
			t.Error("expected no upstream call without credentials")
		}
	})
}

func TestCurrent(t *testing.T) {
	t.Run("plain output", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: output, Logger: shared.NewLogger(nil)})

		if err := currentCommand(runner).Run(context.Background(), []string{"current"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Song A - Artist X, Artist Y") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: output, Logger: shared.NewLogger(nil)})

		if err := currentCommand(runner).Run(context.Background(), []string{"current", "--json"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got currentTrackOutput
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", output.String(), err)
		}
		if got.Track != "Song A" || got.Artist != "Artist X, Artist Y" || got.Album != "Album Z" || !got.IsPlaying {
			t.Errorf("unexpected track %+v", got)
		}
	})

	t.Run("nothing playing", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetPlayer(http.StatusNoContent, "")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: output, Logger: shared.NewLogger(nil)})

		if err := currentCommand(runner).Run(context.Background(), []string{"now"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "No track playing") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("player failure", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetPlayer(http.StatusBadGateway, tu.PlayerError)
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		if err := currentCommand(runner).Run(context.Background(), []string{"current"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestServe(t *testing.T) {
	t.Run("stops when context is canceled", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: stubConfig(nil), Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := serveCommand(runner).Run(ctx, []string{"serve"}); err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	})

	t.Run("missing static dir", func(t *testing.T) {
		config := stubConfig(nil)
		config.Server.StaticDir = filepath.Join(t.TempDir(), "nope")
		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		err := serveCommand(runner).Run(context.Background(), []string{"serve"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

const tokenWithRefresh = `{"access_token":"new_access","token_type":"Bearer","expires_in":3600,"refresh_token":"new_refresh_token"}`

func TestLogin(t *testing.T) {
	t.Run("exchanges a pasted code and saves it", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetToken(http.StatusOK, tokenWithRefresh)
		config := stubConfig(stub)
		config.Credentials.Spotify.RefreshToken = ""
		path := filepath.Join(t.TempDir(), "config.toml")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(nil)})

		err := loginCommand(runner).Run(context.Background(), []string{"login", "--code", "auth_code", "--save", "--config", path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if form := stub.LastForm(); form["grant_type"] != "authorization_code" || form["code"] != "auth_code" {
			t.Errorf("unexpected token request form %v", form)
		}
		if !strings.Contains(output.String(), "SPOTIFY_REFRESH_TOKEN=new_refresh_token") {
			t.Errorf("expected refresh token in output, got %q", output.String())
		}

		saved, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to reload saved config: %v", err)
		}
		if saved.Credentials.Spotify.RefreshToken != "new_refresh_token" {
			t.Errorf("expected saved refresh token, got %q", saved.Credentials.Spotify.RefreshToken)
		}
		if config.Credentials.Spotify.RefreshToken != "" {
			t.Error("expected in-memory config to be left untouched")
		}
	})

	t.Run("save keeps environment values out of the file", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetToken(http.StatusOK, tokenWithRefresh)
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
port = 4000

[credentials.spotify]
client_id = "file_id"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config := stubConfig(stub)
		config.Server.Port = 5000
		config.Server.Mode = shared.ModeMinimal
		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}, Logger: shared.NewLogger(io.Discard)})

		err := loginCommand(runner).Run(context.Background(), []string{"login", "--code", "auth_code", "--save", "--config", path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		saved, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to reload saved config: %v", err)
		}
		spotify := saved.Credentials.Spotify
		if spotify.RefreshToken != "new_refresh_token" {
			t.Errorf("expected saved refresh token, got %q", spotify.RefreshToken)
		}
		if spotify.ClientID != "file_id" {
			t.Errorf("expected client id from the file, got %q", spotify.ClientID)
		}
		if spotify.ClientSecret != "" {
			t.Errorf("expected client secret to stay out of the file, got %q", spotify.ClientSecret)
		}
		if saved.Server.Port != 4000 || saved.Server.Mode != shared.ModeVerbose {
			t.Errorf("expected file server settings to be kept, got %+v", saved.Server)
		}
	})

	t.Run("requires client credentials", func(t *testing.T) {
		config := stubConfig(nil)
		config.Credentials.Spotify.ClientSecret = ""
		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		err := loginCommand(runner).Run(context.Background(), []string{"login", "--code", "x"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("no refresh token issued", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		runner := NewRunner(RunnerOpts{Config: stubConfig(stub), Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		err := loginCommand(runner).Run(context.Background(), []string{"login", "--code", "x"})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("browser flow", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.SetToken(http.StatusOK, tokenWithRefresh)
		config := stubConfig(stub)
		config.Credentials.Spotify.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t))

		var opened string
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config:      config,
			Output:      output,
			Logger:      shared.NewLogger(nil),
			OpenBrowser: func(authURL string) error {
				opened = authURL
				u, err := url.Parse(authURL)
				if err != nil {
					return err
				}
				callback := config.Credentials.Spotify.RedirectURI + "?code=browser_code&state=" + url.QueryEscape(u.Query().Get("state"))
				resp, err := http.Get(callback)
				if err != nil {
					return err
				}
				resp.Body.Close()
				return nil
			},
		})

		if err := loginCommand(runner).Run(context.Background(), []string{"login"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(opened, "client_id=test_client_id") {
			t.Errorf("expected auth URL to carry the client id, got %q", opened)
		}
		if stub.LastForm()["code"] != "browser_code" {
			t.Errorf("expected browser code to be exchanged, got %v", stub.LastForm())
		}
		if !strings.Contains(output.String(), "SPOTIFY_REFRESH_TOKEN=new_refresh_token") {
			t.Errorf("expected refresh token in output, got %q", output.String())
		}
	})

	t.Run("browser flow with bad state", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		config := stubConfig(stub)
		config.Credentials.Spotify.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t))

		runner := NewRunner(RunnerOpts{
			Config:      config,
			Output:      &bytes.Buffer{},
			Logger:      shared.NewLogger(nil),
			OpenBrowser: func(string) error {
				resp, err := http.Get(config.Credentials.Spotify.RedirectURI + "?code=c&state=forged")
				if err != nil {
					return err
				}
				resp.Body.Close()
				return nil
			},
		})

		err := loginCommand(runner).Run(context.Background(), []string{"login"})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if stub.TokenCalls.Load() != 0 {
			t.Error("expected no code exchange for a forged state")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		config := stubConfig(nil)
		config.Credentials.Spotify.RedirectURI = fmt.Sprintf("http://127.0.0.1:%d/callback", freePort(t))

		ctx, cancel := context.WithCancel(context.Background())
		runner := NewRunner(RunnerOpts{
			Config:      config,
			Output:      &bytes.Buffer{},
			Logger:      shared.NewLogger(nil),
			OpenBrowser: func(string) error {
				cancel()
				return errors.New("no browser")
			},
		})

		err := loginCommand(runner).Run(ctx, []string{"login"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestConfigInit(t *testing.T) {
	t.Run("writes example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(nil)})

		if err := setupCommand(runner).Run(context.Background(), []string{"config", "init", "--config", path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load written config: %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected port 3000, got %d", config.Server.Port)
		}
		if !strings.Contains(output.String(), "Next steps") {
			t.Errorf("expected next steps, got %q", output.String())
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(nil)})

		err := setupCommand(runner).Run(context.Background(), []string{"config", "init", "--config", path})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "keep" {
			t.Error("expected existing file to be preserved")
		}
	})
}
