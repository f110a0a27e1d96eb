/*
Package snapsdk is a typed client for the SnapTranslate backend.

# Overview

The backend exposes authentication (login, registration, email
verification, password reset, token refresh, profile), the translation
features (image analysis and image generation), the language catalogue and
a set of admin and statistics endpoints. SDKClient wraps each endpoint in a
method that encodes the request the way the backend expects (form, JSON or
multipart) and decodes the response into the types in this package.

	client := snapsdk.NewSDKClient("http://localhost:8000")

	pair, err := client.Login(ctx, "alice", "Secr3t!pw")
	profile, err := client.Profile(ctx, pair.AccessToken)

# Tokens

SDKClient is stateless. Authenticated methods take the bearer access token
as an explicit argument; holding, persisting and refreshing tokens is the
caller's job (see internal/client/session in this repository).

# Errors

Any non-2xx response becomes an *APIError carrying the status code and the
backend's "detail" message, which may be a plain string or a list of
validation problems:

	_, err := client.Profile(ctx, token)
	if snapsdk.IsUnauthorized(err) {
		// refresh and retry
	}

Errors that are not *APIError are transport failures (backend unreachable,
timeouts, cancelled contexts).
*/
package snapsdk
