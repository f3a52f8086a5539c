package pardot

import (
	"context"

	errs "github.com/matzehuels/pardot/pkg/errors"
)

// Resource names used in logs and hooks.
const (
	resourceCredential     = "credential"
	resourceCampaigns      = "campaigns"
	resourceForm           = "form"
	resourceDynamicContent = "dynamic_content"
	resourceTrackingCode   = "tracking_code"
)

// Campaigns returns the account's campaigns in API order.
func (c *Client) Campaigns(ctx context.Context) Result[[]Campaign] {
	return fetch(ctx, c, resource[[]Campaign]{
		name:    resourceCampaigns,
		key:     c.keyer.CampaignsKey(),
		object:  "campaign",
		action:  "query",
		ttl:     CampaignsTTL,
		extract: extractCampaigns,
	})
}

// FormEmbedCode returns the HTML embed code of form id.
// An empty or malformed id is absent without any cache or network access.
func (c *Client) FormEmbedCode(ctx context.Context, id string) Result[string] {
	if !c.validID(resourceForm, id) {
		return Result[string]{}
	}
	return fetch(ctx, c, resource[string]{
		name:   resourceForm,
		key:    c.keyer.FormKey(id),
		object: "form",
		action: "read",
		id:     id,
		ttl:    FormTTL,
		extract: func(status int, body []byte) (string, error) {
			return stringField(status, body, "form", "embedCode")
		},
	})
}

// DynamicContentURL returns the embed URL of dynamic-content item id.
// An empty or malformed id is absent without any cache or network access.
func (c *Client) DynamicContentURL(ctx context.Context, id string) Result[string] {
	if !c.validID(resourceDynamicContent, id) {
		return Result[string]{}
	}
	return fetch(ctx, c, resource[string]{
		name:   resourceDynamicContent,
		key:    c.keyer.DynamicContentKey(id),
		object: "dynamicContent",
		action: "read",
		id:     id,
		ttl:    DynamicContentTTL,
		extract: func(status int, body []byte) (string, error) {
			return stringField(status, body, "dynamicContent", "embedUrl")
		},
	})
}

// TrackingCodeTemplate returns the account's tracking-code template. The
// template still contains the campaign placeholder; see package embed.
func (c *Client) TrackingCodeTemplate(ctx context.Context) Result[string] {
	return fetch(ctx, c, resource[string]{
		name:   resourceTrackingCode,
		key:    c.keyer.TrackingCodeKey(),
		object: "account",
		action: "read/", // the account endpoint is addressed with a trailing slash
		ttl:    TrackingCodeTTL,
		extract: func(status int, body []byte) (string, error) {
			return stringField(status, body, "account", "tracking_code_template")
		},
	})
}

func (c *Client) validID(name, id string) bool {
	if id == "" {
		return false
	}
	if err := errs.ValidateResourceID(id); err != nil {
		c.logger.Warn("rejected resource id", "resource", name, "err", err)
		return false
	}
	return true
}
