package ogurydomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessToken_ValidAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	buffer := 5 * time.Minute

	tests := []struct {
		name  string
		token *AccessToken
		want  bool
	}{
		{name: "nil token", token: nil, want: false},
		{name: "empty token", token: &AccessToken{ExpiresAt: now.Add(time.Hour)}, want: false},
		{name: "far from expiry", token: &AccessToken{Token: "t", ExpiresAt: now.Add(time.Hour)}, want: true},
		{name: "inside buffer", token: &AccessToken{Token: "t", ExpiresAt: now.Add(4 * time.Minute)}, want: false},
		{name: "exactly at buffer", token: &AccessToken{Token: "t", ExpiresAt: now.Add(buffer)}, want: false},
		{name: "expired", token: &AccessToken{Token: "t", ExpiresAt: now.Add(-time.Minute)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.ValidAt(now, buffer))
		})
	}
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "authentication failed: 401 Unauthorized", (&AuthError{StatusCode: 401, Status: "401 Unauthorized"}).Error())
	assert.Equal(t, "api request failed: 500 Internal Server Error", (&APIError{StatusCode: 500, Status: "500 Internal Server Error"}).Error())
}
