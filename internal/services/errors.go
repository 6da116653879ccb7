package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Upstream operations named in [UpstreamError.Op].
const (
	OpToken            = "token"
	OpCurrentlyPlaying = "currently-playing"
)

// UpstreamError describes a failed call to the token endpoint or the Web API.
//
// It unwraps to both Kind (one of the shared sentinels) and the underlying cause.
type UpstreamError struct {
	Op     string
	Status int    // HTTP status, 0 when no response was received
	Body   []byte // raw upstream response body, if any
	Kind   error
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v: status %d: %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Details returns the most useful payload to show a caller: the upstream JSON body, the raw body text, or the error message.
func (e *UpstreamError) Details() any {
	if len(e.Body) > 0 {
		if json.Valid(e.Body) {
			return json.RawMessage(e.Body)
		}
		return string(e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

// Details extracts a caller-facing payload from any error returned by a [Service].
func Details(err error) any {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Details()
	}
	return err.Error()
}

// Reason classifies err into a short machine-readable label.
func Reason(err error) string {
	switch {
	case errors.Is(err, shared.ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, shared.ErrTimeout):
		return "timeout"
	default:
		return "upstream_error"
	}
}

// tokenError classifies a failed refresh. OAuth errors invalid_grant and invalid_client mean the stored credentials are bad.
func tokenError(err error) error {
	upErr := &UpstreamError{Op: OpToken, Kind: shared.ErrRefreshFailed, Err: err}

	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if re.Response != nil {
			upErr.Status = re.Response.StatusCode
		}
		upErr.Body = re.Body
		switch re.ErrorCode {
		case "invalid_grant", "invalid_client":
			upErr.Kind = shared.ErrInvalidCredentials
		}
		return upErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		upErr.Kind = shared.ErrTimeout
	}
	return upErr
}

// playerError converts a Web API failure, keeping Spotify's error object as the body.
func playerError(err error) error {
	upErr := &UpstreamError{Op: OpCurrentlyPlaying, Kind: shared.ErrAPIRequest, Err: err}

	var spErr spotify.Error
	if errors.As(err, &spErr) {
		upErr.Status = spErr.Status
		body, mErr := json.Marshal(map[string]any{
			"error": map[string]any{"status": spErr.Status, "message": spErr.Message},
		})
		if mErr == nil {
			upErr.Body = body
		}
		if spErr.Status == 401 {
			upErr.Kind = shared.ErrInvalidCredentials
		}
		return upErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		upErr.Kind = shared.ErrTimeout
	}
	return upErr
}
