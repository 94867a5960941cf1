package backend

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"
)

// Session holds the tokens returned by a successful sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

// User identifies the signed-in account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

// SignIn exchanges credentials for a session and installs its access token on
// the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, errors.New("email and password are required")
	}
	query := url.Values{"grant_type": {"password"}}
	var sess Session
	if err := c.do(ctx, "POST", "/auth/v1/token", query, passwordGrant{Email: email, Password: password}, &sess); err != nil {
		return Session{}, errors.Wrap(err, "sign-in failed")
	}
	c.SetAccessToken(sess.AccessToken)
	return sess, nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	var sess Session
	if err := c.do(ctx, "POST", "/auth/v1/token", query, refreshGrant{RefreshToken: refreshToken}, &sess); err != nil {
		return Session{}, errors.Wrap(err, "token refresh failed")
	}
	c.SetAccessToken(sess.AccessToken)
	return sess, nil
}
