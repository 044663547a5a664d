package reporting

import "github.com/google/jsonschema-go/jsonschema"

const (
	ToolGetCampaignDetails = "get_campaign_details"
	ToolGetCampaignsReport = "get_campaigns_report"
)

// ToolDefinition describes a tool to both transports.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

func stringProperty(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func numberProperty(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description}
}

// Definitions returns the tool catalogue in listing order.
func Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolGetCampaignDetails,
			Description: "Get campaign performance details by campaign ID",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"campaignId": numberProperty("The campaign ID to retrieve details for"),
					"startDate":  stringProperty("Start date in YYYY-MM-DD format (required)"),
					"endDate":    stringProperty("End date in YYYY-MM-DD format (required)"),
					"accountId":  stringProperty("Optional account ID filter"),
					"brandId":    stringProperty("Optional brand ID filter"),
				},
				Required: []string{"campaignId", "startDate", "endDate"},
			},
		},
		{
			Name:        ToolGetCampaignsReport,
			Description: "Get campaign performance report with flexible filtering",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"startDate":   stringProperty("Start date in YYYY-MM-DD format (required)"),
					"endDate":     stringProperty("End date in YYYY-MM-DD format (required)"),
					"accountId":   stringProperty("Account IDs (comma-separated)"),
					"brandId":     stringProperty("Brand ID"),
					"campaignId":  numberProperty("Campaign ID"),
					"identifier1": stringProperty("External identifier 1"),
					"identifier2": stringProperty("External identifier 2"),
					"identifier3": stringProperty("External identifier 3"),
				},
				Required: []string{"startDate", "endDate"},
			},
		},
	}
}
