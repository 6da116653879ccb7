// Package server provides HTTP routing, middleware, lifecycle and OAuth callback handling for the CLI and the track proxy.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// Because [Middleware] has the same shape as chi's middleware, the chi request ID, real IP and recoverer
// handlers plug straight into [BasicRouter.Use]; see [DefaultMiddleware].
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Lifecycle
//
// [Server.Run] listens, serves until its context is canceled, then shuts down with a ten second grace period.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// The login command starts a temporary server on the configured host and port, handles the callback,
// prints the refresh token and shuts down.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
