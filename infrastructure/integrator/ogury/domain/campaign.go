package ogurydomain

import (
	"bytes"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Text is an optional textual field of a reporting record.
// Strings and numeric literals are accepted; anything else is treated as absent.
type Text struct {
	Value string
	Valid bool
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = Text{Value: s, Valid: s != ""}
	case isNumberLiteral(data):
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil
		}
		// 42.0 and 4.2e1 both read as "42"
		*t = Text{Value: strconv.FormatFloat(v, 'f', -1, 64), Valid: true}
	}

	return nil
}

// Or returns the value or the fallback when the field is absent.
func (t Text) Or(fallback string) string {
	if !t.Valid {
		return fallback
	}
	return t.Value
}

// Number is an optional numeric metric. Only JSON numbers are valid.
type Number struct {
	Value float64
	Valid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if !isNumberLiteral(data) {
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}
	*n = Number{Value: v, Valid: true}

	return nil
}

func isNumberLiteral(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	c := data[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// CampaignRecord is one row of the Ogury campaign reporting endpoint.
// Every field is optional upstream.
type CampaignRecord struct {
	CampaignID     Text   `json:"campaignId"`
	Campaign       Text   `json:"campaign"`
	Brand          Text   `json:"brand"`
	Strategy       Text   `json:"strategy"`
	CostModel      Text   `json:"costModel"`
	CampaignGoal   Text   `json:"campaignGoal"`
	Impressions    Number `json:"impressions"`
	Clicks         Number `json:"clicks"`
	CTR            Number `json:"ctr"`
	VideoCompletes Number `json:"videoCompletes"`
	VTR            Number `json:"vtr"`
	Engagement     Number `json:"engagement"`
	EngagementRate Number `json:"engagementRate"`
	Reach          Number `json:"reach"`
	Frequency      Number `json:"frequency"`
	Spend          Number `json:"spend"`
	Currency       Text   `json:"currency"`
	Identifier1    Text   `json:"identifier1"`
	Identifier2    Text   `json:"identifier2"`
	Identifier3    Text   `json:"identifier3"`
}

// Identifiers returns the external identifiers in order, absent ones included as invalid.
func (c *CampaignRecord) Identifiers() []Text {
	return []Text{c.Identifier1, c.Identifier2, c.Identifier3}
}

// DecodeCampaignRecords accepts either a single record object or an array of records.
func DecodeCampaignRecords(body []byte) ([]CampaignRecord, error) {
	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		var records []CampaignRecord
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, err
		}
		if records == nil {
			records = []CampaignRecord{}
		}
		return records, nil
	}

	var record CampaignRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, err
	}

	return []CampaignRecord{record}, nil
}
