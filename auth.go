package opensubtitles

import (
	"context"
	"net/http"
)

// Methods related to authentication (Login, Logout, GetUserInfo)

// Login authenticates the user with username and password, retrieving an API token.
// The token and the base URL the API assigns (e.g. vip-api.opensubtitles.com) are
// kept by the client for subsequent requests.
func (c *Client) Login(ctx context.Context, params LoginRequest) (*LoginResponse, error) {
	c.credentials.SetLogin(params.Username, params.Password)

	response, err := call[LoginResponse](ctx, c, http.MethodPost, "/login", params)
	if err != nil {
		// Drop any stale token if login fails
		_ = c.SetAuthToken("", "")
		return nil, err
	}

	if err := c.SetAuthToken(response.Token, response.BaseURL); err != nil {
		return nil, err
	}
	c.log.WithField("base_url", c.GetCurrentBaseURL()).Debug("Logged in")
	return response, nil
}

// LoginWithStoredCredentials logs in with the username and password last given to Login
// or set on the credential manager.
func (c *Client) LoginWithStoredCredentials(ctx context.Context) (*LoginResponse, error) {
	creds := c.credentials.UserCredentials()
	return c.Login(ctx, LoginRequest{Username: creds.Username, Password: creds.Password})
}

// Logout invalidates the current API token.
// The local token is only cleared when the API confirms; a failed call leaves it in place.
func (c *Client) Logout(ctx context.Context) (*LogoutResponse, error) {
	response, err := call[LogoutResponse](ctx, c, http.MethodDelete, "/logout", nil)
	if err != nil {
		return nil, err
	}
	_ = c.SetAuthToken("", "")
	return response, nil
}

// GetUserInfo retrieves information about the currently authenticated user.
// Without a token the API answers 401, which surfaces as an *errors.HTTPError.
func (c *Client) GetUserInfo(ctx context.Context) (*GetUserInfoResponse, error) {
	return get[GetUserInfoResponse](ctx, c, "/infos/user", nil)
}
