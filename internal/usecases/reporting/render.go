package reporting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	ogurydomain "github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/domain"
	"github.com/vfg2006/ogury-mcp-server/pkg/utils"
)

const placeholder = "N/A"

const reportSeparator = "\n---\n"

// formatNumber groups thousands and keeps at most three fraction digits.
func formatNumber(n ogurydomain.Number) string {
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return placeholder
	}
	return humanize.Commaf(utils.Round(n.Value, 3))
}

func formatPercentage(n ogurydomain.Number) string {
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return placeholder
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + "%"
}

func formatText(t ogurydomain.Text) string {
	return t.Or(placeholder)
}

// formatSpend joins the amount and the currency, dropping the currency when absent.
func formatSpend(record *ogurydomain.CampaignRecord) string {
	spend := formatNumber(record.Spend)
	if record.Currency.Valid {
		return spend + " " + record.Currency.Value
	}
	return spend
}

// RenderDetails renders a single campaign for get_campaign_details.
func RenderDetails(record *ogurydomain.CampaignRecord, query ogurydomain.CampaignQuery) string {
	if record == nil {
		record = &ogurydomain.CampaignRecord{}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Campaign Details for ID %d:\n\n", query.CampaignID)

	fmt.Fprintf(&b, "Campaign: %s\n", formatText(record.Campaign))
	fmt.Fprintf(&b, "Brand: %s\n", formatText(record.Brand))
	fmt.Fprintf(&b, "Strategy: %s\n", formatText(record.Strategy))
	fmt.Fprintf(&b, "Cost Model: %s\n", formatText(record.CostModel))
	fmt.Fprintf(&b, "Campaign Goal: %s\n\n", formatText(record.CampaignGoal))

	b.WriteString("Performance Metrics:\n")
	fmt.Fprintf(&b, "• Impressions: %s\n", formatNumber(record.Impressions))
	fmt.Fprintf(&b, "• Clicks: %s\n", formatNumber(record.Clicks))
	fmt.Fprintf(&b, "• CTR: %s\n", formatPercentage(record.CTR))
	fmt.Fprintf(&b, "• Video Completes: %s\n", formatNumber(record.VideoCompletes))
	fmt.Fprintf(&b, "• VTR: %s\n", formatPercentage(record.VTR))
	fmt.Fprintf(&b, "• Engagement: %s\n", formatNumber(record.Engagement))
	fmt.Fprintf(&b, "• Engagement Rate: %s\n", formatPercentage(record.EngagementRate))
	fmt.Fprintf(&b, "• Reach: %s\n", formatNumber(record.Reach))
	fmt.Fprintf(&b, "• Frequency: %s\n\n", formatNumber(record.Frequency))

	b.WriteString("Financial:\n")
	fmt.Fprintf(&b, "• Spend: %s\n\n", formatSpend(record))

	identifiers := 0
	for i, id := range record.Identifiers() {
		if !id.Valid {
			continue
		}
		fmt.Fprintf(&b, "External ID %d: %s\n", i+1, id.Value)
		identifiers++
	}
	if identifiers > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Date Range: %s to %s", query.StartDate, query.EndDate)

	return b.String()
}

func renderReportEntry(record *ogurydomain.CampaignRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Campaign ID: %s | %s\n", formatText(record.CampaignID), formatText(record.Campaign))
	fmt.Fprintf(&b, "Brand: %s | Strategy: %s\n", formatText(record.Brand), formatText(record.Strategy))
	fmt.Fprintf(&b, "Impressions: %s | Clicks: %s | CTR: %s\n",
		formatNumber(record.Impressions), formatNumber(record.Clicks), formatPercentage(record.CTR))
	fmt.Fprintf(&b, "Spend: %s | Reach: %s\n", formatSpend(record), formatNumber(record.Reach))

	return b.String()
}

// RenderReport renders every record as one block followed by the total count.
func RenderReport(records []ogurydomain.CampaignRecord, query ogurydomain.ReportQuery) string {
	entries := make([]string, 0, len(records))
	for i := range records {
		entries = append(entries, renderReportEntry(&records[i]))
	}

	return fmt.Sprintf("Campaigns Report (%s to %s):\n\n%s\n\nTotal campaigns: %d",
		query.StartDate, query.EndDate, strings.Join(entries, reportSeparator), len(records))
}
