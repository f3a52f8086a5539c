package pardot

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	errs "github.com/matzehuels/pardot/pkg/errors"
)

// invalidKeyMessage is the "err" text the API returns for a stale or wrong key.
// Detection is a text match because the API does not document a stable
// error code for this case.
const invalidKeyMessage = "Invalid API key or user key"

// errorBody is the part of every response that carries API errors.
type errorBody struct {
	Err string `json:"err"`
}

// isAuthError reports whether body is an invalid-key response.
func isAuthError(body []byte) bool {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return false
	}
	return e.Err == invalidKeyMessage
}

// apiError returns the API error carried by body, or nil.
func apiError(status int, body []byte) error {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil || e.Err == "" {
		return nil
	}
	return &errs.APIError{Status: status, Message: e.Err}
}

// flexInt decodes a JSON number or numeric string.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

// flexString decodes a JSON string or number as a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type loginResponse struct {
	APIKey  string  `json:"api_key"`
	Version flexInt `json:"version"`
	Err     string  `json:"err"`
}

type apiCampaign struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

// campaignList decodes "campaign", which the API sends as an object when
// there is exactly one result and as an array otherwise.
type campaignList []apiCampaign

func (l *campaignList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case data[0] == '[':
		var list []apiCampaign
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		var one apiCampaign
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = campaignList{one}
		return nil
	}
}

type campaignsResponse struct {
	Result *struct {
		TotalResults flexInt      `json:"total_results"`
		Campaign     campaignList `json:"campaign"`
	} `json:"result"`
}

// extractCampaigns returns the campaigns of a query response in response
// order. Duplicate ids keep their first occurrence; entries without an id
// are dropped.
func extractCampaigns(status int, body []byte) ([]Campaign, error) {
	var resp campaignsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedResponse, err, "decode campaigns")
	}
	if resp.Result == nil {
		return nil, missing("result", status, body)
	}

	seen := make(map[string]bool, len(resp.Result.Campaign))
	campaigns := make([]Campaign, 0, len(resp.Result.Campaign))
	for _, c := range resp.Result.Campaign {
		id := string(c.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		campaigns = append(campaigns, Campaign{ID: id, Name: c.Name})
	}
	if len(campaigns) == 0 {
		return nil, errs.New(errs.ErrCodeMalformedResponse, "no campaigns in response")
	}
	return campaigns, nil
}

// stringField returns body[object][field] as a non-empty string.
func stringField(status int, body []byte, object, field string) (string, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", errs.Wrap(errs.ErrCodeMalformedResponse, err, "decode %s", object)
	}
	raw, ok := outer[object]
	if !ok {
		return "", missing(object, status, body)
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(raw, &inner); err != nil {
		return "", errs.Wrap(errs.ErrCodeMalformedResponse, err, "decode %s", object)
	}
	var value string
	if v, ok := inner[field]; ok {
		if err := json.Unmarshal(v, &value); err != nil {
			return "", errs.Wrap(errs.ErrCodeMalformedResponse, err, "decode %s.%s", object, field)
		}
	}
	if value == "" {
		return "", missing(object+"."+field, status, body)
	}
	return value, nil
}

func missing(field string, status int, body []byte) error {
	return errs.Wrap(errs.ErrCodeMalformedResponse, apiError(status, body), "response has no %s", field)
}
