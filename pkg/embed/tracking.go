package embed

import (
	"strconv"
	"strings"

	"github.com/matzehuels/pardot/pkg/settings"
)

// CampaignPlaceholder marks where the campaign id goes in the template.
const CampaignPlaceholder = "%%CAMPAIGN_ID%%"

// campaignOffset is added to the campaign id in tracking code.
const campaignOffset = 1000

// TrackingCode fills the tracking-code template for the configured campaign.
// With ForceHTTPS, http:// URLs of Pardot hosts become https://.
func TrackingCode(template string, s settings.Settings) string {
	if template == "" || s.CampaignID == "" {
		return ""
	}
	code := strings.ReplaceAll(template, CampaignPlaceholder, trackingID(s.CampaignID))
	if s.ForceHTTPS {
		code = forceHTTPS(code)
	}
	return code
}

func trackingID(campaignID string) string {
	id, err := strconv.Atoi(campaignID)
	if err != nil {
		return campaignID
	}
	return strconv.Itoa(id + campaignOffset)
}

var pardotHosts = []string{"pi.pardot.com", "go.pardot.com", "cdn.pardot.com"}

func forceHTTPS(code string) string {
	for _, h := range pardotHosts {
		code = strings.ReplaceAll(code, "http://"+h, "https://"+h)
	}
	return code
}
