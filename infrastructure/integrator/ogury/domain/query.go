package ogurydomain

import (
	"net/url"
	"strconv"
)

// CampaignQuery holds the parameters of the campaign details lookup.
type CampaignQuery struct {
	CampaignID int64
	StartDate  string
	EndDate    string
	AccountID  string
	BrandID    string
}

// Values builds the reporting query string. Empty optional fields are left out.
func (q CampaignQuery) Values() url.Values {
	params := url.Values{}
	params.Set("startDate", q.StartDate)
	params.Set("endDate", q.EndDate)
	params.Set("campaignId", strconv.FormatInt(q.CampaignID, 10))

	setIfPresent(params, "accountId", q.AccountID)
	setIfPresent(params, "brandId", q.BrandID)

	return params
}

// ReportQuery holds the parameters of the campaigns report.
type ReportQuery struct {
	StartDate   string
	EndDate     string
	AccountID   string
	BrandID     string
	CampaignID  *int64
	Identifier1 string
	Identifier2 string
	Identifier3 string
}

func (q ReportQuery) Values() url.Values {
	params := url.Values{}
	params.Set("startDate", q.StartDate)
	params.Set("endDate", q.EndDate)

	setIfPresent(params, "accountId", q.AccountID)
	setIfPresent(params, "brandId", q.BrandID)
	if q.CampaignID != nil {
		params.Set("campaignId", strconv.FormatInt(*q.CampaignID, 10))
	}
	setIfPresent(params, "identifier1", q.Identifier1)
	setIfPresent(params, "identifier2", q.Identifier2)
	setIfPresent(params, "identifier3", q.Identifier3)

	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
