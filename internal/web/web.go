// Package web implements the track proxy's HTTP surface.
//
// # Routes
//
//	GET /               → landing page and static assets
//	GET /current-track  → token exchange + now-playing lookup, simplified JSON
//	GET /test-spotify   → token exchange only (verbose mode)
//	GET /callback       → echoes an OAuth authorization code (verbose mode)
//	GET /health         → status and credential presence (verbose mode)
//
// # Response Modes
//
// The server has two response shapes, selected by [shared.ServerConfig.Mode]:
//
//   - verbose: {track, artist, is_playing, success}; failures add reason and success:false
//   - minimal: {track, artist}, with null fields when nothing is playing
//
// Minimal mode registers only the landing page and /current-track.
//
// # Request Flow
//
// Each /current-track request runs [services.CurrentTrack]: a fresh token exchange followed by the
// player lookup. No token outlives the request. Every upstream failure becomes a 500 whose details
// carry the upstream body when there is one.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:static
var staticFS embed.FS

// StaticFS returns the landing page files: dir when set, otherwise the embedded page.
func StaticFS(dir string) (fs.FS, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(staticFS, "static")
}
