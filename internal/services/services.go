package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Service defines the interface for a music provider that can report what an account is playing.
type Service interface {
	// AccessToken exchanges the stored refresh credential for a fresh access token.
	AccessToken(ctx context.Context) (*oauth2.Token, error)

	// CurrentlyPlaying returns the active item for the account that owns token.
	// A nil result with a nil error means nothing is playing.
	CurrentlyPlaying(ctx context.Context, token *oauth2.Token) (*NowPlaying, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// NowPlaying represents the item an account is currently playing
type NowPlaying struct {
	Track     string
	Artist    string // Artist names joined with ", "
	Artists   []string
	Album     string
	IsPlaying bool // false when the item is paused
}

// CurrentTrack runs the two-step chain: token exchange, then the now-playing lookup.
//
// A token failure returns before the lookup is attempted. Nothing is cached between calls.
func CurrentTrack(ctx context.Context, svc Service) (*NowPlaying, error) {
	token, err := svc.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	np, err := svc.CurrentlyPlaying(ctx, token)
	if err != nil {
		return nil, err
	}

	return np, nil
}

// String formats the item as "Track - Artist".
func (n *NowPlaying) String() string {
	if n == nil {
		return "nothing playing"
	}
	return fmt.Sprintf("%s - %s", n.Track, n.Artist)
}
