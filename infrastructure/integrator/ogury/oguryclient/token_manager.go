package oguryclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ogurydomain "github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/domain"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// A cached token is only served while it has at least this much validity left.
const tokenExpiryBuffer = 5 * time.Minute

const tokenPath = "/oauth2/token"

// TokenManager owns the client-credentials exchange and the in-memory bearer token.
type TokenManager struct {
	cfg        *config.Config
	httpClient *http.Client

	mu    sync.Mutex
	token *ogurydomain.AccessToken

	// Concurrent callers hitting an expired token share one exchange.
	refresh singleflight.Group

	now func() time.Time
}

func NewTokenManager(cfg *config.Config, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Ogury.HTTPTimeout}
	}

	return &TokenManager{
		cfg:        cfg,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// AccessToken returns a bearer token, exchanging credentials only when the
// cached one is missing or within tokenExpiryBuffer of expiring.
func (tm *TokenManager) AccessToken(ctx context.Context) (string, error) {
	if token, ok := tm.cached(); ok {
		logrus.Debug("oguryclient: using cached access token")
		return token, nil
	}

	// The exchange outlives a single caller's cancellation since other callers may be waiting on it.
	exchangeCtx := context.WithoutCancel(ctx)

	v, err, shared := tm.refresh.Do("token", func() (interface{}, error) {
		if token, ok := tm.cached(); ok {
			return token, nil
		}

		token, err := tm.exchange(exchangeCtx)
		if err != nil {
			return "", err
		}

		tm.mu.Lock()
		tm.token = token
		tm.mu.Unlock()

		return token.Token, nil
	})
	if err != nil {
		return "", err
	}

	if shared {
		logrus.Debug("oguryclient: joined in-flight token exchange")
	}

	return v.(string), nil
}

// Invalidate drops the cached token so the next call performs an exchange.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	tm.token = nil
	tm.mu.Unlock()
}

func (tm *TokenManager) cached() (string, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token.ValidAt(tm.now(), tokenExpiryBuffer) {
		return tm.token.Token, true
	}
	return "", false
}

func (tm *TokenManager) exchange(ctx context.Context) (token *ogurydomain.AccessToken, err error) {
	defer func() {
		metrics.TokenExchangesTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	endpoint := tm.cfg.Ogury.BaseURL + tokenPath

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ogurydomain.AuthError{Err: errors.Wrap(err, "build token request")}
	}
	req.SetBasicAuth(tm.cfg.Ogury.ClientID, tm.cfg.Ogury.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	logrus.WithField("endpoint", endpoint).Debug("oguryclient: requesting access token")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, &ogurydomain.AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Warn("oguryclient: token exchange rejected")

		return nil, &ogurydomain.AuthError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var tokenResp ogurydomain.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, &ogurydomain.AuthError{StatusCode: resp.StatusCode, Status: resp.Status, Err: errors.Wrap(err, "decode token response")}
	}

	if tokenResp.AccessToken == "" {
		return nil, &ogurydomain.AuthError{StatusCode: resp.StatusCode, Status: resp.Status, Err: errors.New("token endpoint returned an empty access_token")}
	}

	token = &ogurydomain.AccessToken{
		Token:     tokenResp.AccessToken,
		ExpiresAt: tm.now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}

	logrus.WithField("expires_in", FormatDuration(tokenResp.ExpiresIn)).Info("oguryclient: access token obtained")

	return token, nil
}

// FormatDuration renders a number of seconds for logs.
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	hours := duration / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
