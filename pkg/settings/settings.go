// Package settings stores the site settings that shape rendered embeds.
//
// Settings are separate from [config] because they are edited at runtime,
// by `pardot settings set` and by the interactive campaign picker, while the
// config file holds credentials and backends.
//
// [config]: github.com/matzehuels/pardot/pkg/config
package settings

import (
	"context"
	"strconv"
	"strings"
)

// Settings are read by the tracking-code renderer.
type Settings struct {
	// CampaignID is the campaign whose visitors the tracking code attributes.
	CampaignID string `json:"campaign_id"`

	// ForceHTTPS rewrites http:// Pardot hosts in tracking code to https://.
	ForceHTTPS bool `json:"force_https"`
}

// Store reads and writes settings.
type Store interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
}

// Keys accepted by [Settings.Apply].
const (
	KeyCampaignID = "campaign_id"
	KeyForceHTTPS = "force_https"
)

// Apply sets one setting from its string form.
func (s *Settings) Apply(key, value string) error {
	switch strings.ToLower(key) {
	case KeyCampaignID:
		s.CampaignID = strings.TrimSpace(value)
	case KeyForceHTTPS:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return &InvalidValueError{Key: key, Value: value}
		}
		s.ForceHTTPS = v
	default:
		return &UnknownKeyError{Key: key}
	}
	return nil
}

// UnknownKeyError is returned by [Settings.Apply] for unsupported keys.
type UnknownKeyError struct{ Key string }

func (e *UnknownKeyError) Error() string {
	return "unknown setting " + strconv.Quote(e.Key)
}

// InvalidValueError is returned by [Settings.Apply] for unparsable values.
type InvalidValueError struct{ Key, Value string }

func (e *InvalidValueError) Error() string {
	return "invalid value " + strconv.Quote(e.Value) + " for " + e.Key
}
