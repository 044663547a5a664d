package oguryclient

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	ogurydomain "github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/domain"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetCampaignDetails(ctx context.Context, query ogurydomain.CampaignQuery) (*ogurydomain.CampaignRecord, error)
	GetCampaignsReport(ctx context.Context, query ogurydomain.ReportQuery) ([]ogurydomain.CampaignRecord, error)
}

// TokenSource yields the bearer token attached to reporting calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	// Invalidate drops a token the reporting API rejected.
	Invalidate()
}

type OguryClient struct {
	cfg        *config.Config
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(cfg *config.Config, tokens TokenSource, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Ogury.HTTPTimeout}
	}

	return &OguryClient{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
	}
}
