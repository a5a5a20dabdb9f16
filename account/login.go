package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// loginResponse is the login endpoint's body. Success is signalled inside
// the body, not by the HTTP status line.
type loginResponse struct {
	Status      int    `json:"status"`
	StatusStr   string `json:"status_str"`
	UserID      string `json:"userid"`
	AccessToken string `json:"oauth_accesstoken"`
}

// Login authenticates with the platform using form-encoded credentials.
// A rejected login yields an AuthError carrying the body's status and
// reason; network failures yield a TransportError.
func Login(ctx context.Context, baseURL, username, password string) (Session, error) {
	form := url.Values{}
	form.Set("okc_api", "1")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, &TransportError{Op: "login", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(platformHeader, platformValue)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Session{}, &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Session{}, &TransportError{Op: "login", Err: err}
	}

	if body.AccessToken == "" || body.Status != 0 {
		return Session{}, &AuthError{Status: body.Status, Reason: body.StatusStr}
	}

	return Session{
		Token:     body.AccessToken,
		AccountID: body.UserID,
		Cookie:    resp.Header.Get("Set-Cookie"),
	}, nil
}
