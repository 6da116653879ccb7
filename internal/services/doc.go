// Package services defines the [Service] interface for music streaming providers and implements it for Spotify.
//
// # Service Interface
//
// A provider exposes two calls that are always made in order: [Service.AccessToken] and
// [Service.CurrentlyPlaying]. [CurrentTrack] chains them for a single request.
//
// # Spotify Implementation
//
// [SpotifyService] exchanges a long-lived refresh token for an access token with the refresh_token
// grant of [oauth2.Config], using HTTP Basic client authentication. The token is used once for a
// call to me/player/currently-playing through [spotify.Client] and then discarded.
//
// Nothing is cached: every call to [CurrentTrack] performs a fresh exchange.
//
// # Error Handling
//
// Every failure is returned as an [UpstreamError] whose Kind is one of the shared sentinels:
//   - [shared.ErrMissingCredentials] : client id, secret or refresh token not configured
//   - [shared.ErrInvalidCredentials] : token endpoint rejected the client or refresh token
//   - [shared.ErrRefreshFailed] : any other token endpoint failure
//   - [shared.ErrTimeout] : the per-call deadline expired
//   - [shared.ErrAPIRequest] : the Web API call failed
//
// [UpstreamError.Details] keeps the upstream body so handlers can relay it.
package services
