package ogurydomain

import "time"

// AccessToken is a bearer token issued by the client-credentials exchange.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// ValidAt reports whether the token can still be used at now, keeping buffer of headroom.
func (t *AccessToken) ValidAt(now time.Time, buffer time.Duration) bool {
	if t == nil || t.Token == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-buffer))
}

// TokenResponse is the body returned by the OAuth2 token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
