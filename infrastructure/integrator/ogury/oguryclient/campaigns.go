package oguryclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ogurydomain "github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/domain"
)

const campaignsReportPath = "/v1/reporting/campaigns"

var errNoCampaignData = errors.New("no campaign data found")

func (c *OguryClient) GetCampaignDetails(ctx context.Context, query ogurydomain.CampaignQuery) (*ogurydomain.CampaignRecord, error) {
	records, err := c.fetchCampaigns(ctx, query.Values())
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch campaign details")
	}

	if len(records) == 0 {
		return nil, errors.Wrap(errNoCampaignData, "failed to fetch campaign details")
	}

	return &records[0], nil
}

func (c *OguryClient) GetCampaignsReport(ctx context.Context, query ogurydomain.ReportQuery) ([]ogurydomain.CampaignRecord, error) {
	records, err := c.fetchCampaigns(ctx, query.Values())
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch campaigns report")
	}

	return records, nil
}

func (c *OguryClient) fetchCampaigns(ctx context.Context, params url.Values) ([]ogurydomain.CampaignRecord, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(c.cfg.Ogury.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	endpoint.Path = path.Join(endpoint.Path, campaignsReportPath)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"path":        endpoint.Path,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
	}).Debug("oguryclient: reporting request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ogurydomain.APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	records, err := ogurydomain.DecodeCampaignRecords(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	return records, nil
}
