package cache

// ScopedKeyer wraps a Keyer with a prefix.
// This is useful when several sites or environments share one Redis or
// MongoDB store and must not see each other's artifacts.
//
// Example usage:
//
//	// Staging and production share a Redis instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CredentialKey generates a prefixed credential key.
func (k *ScopedKeyer) CredentialKey() string {
	return k.prefix + k.inner.CredentialKey()
}

// CampaignsKey generates a prefixed campaign list key.
func (k *ScopedKeyer) CampaignsKey() string {
	return k.prefix + k.inner.CampaignsKey()
}

// FormKey generates a prefixed form embed key.
func (k *ScopedKeyer) FormKey(id string) string {
	return k.prefix + k.inner.FormKey(id)
}

// DynamicContentKey generates a prefixed dynamic-content key.
func (k *ScopedKeyer) DynamicContentKey(id string) string {
	return k.prefix + k.inner.DynamicContentKey(id)
}

// TrackingCodeKey generates a prefixed tracking-code key.
func (k *ScopedKeyer) TrackingCodeKey() string {
	return k.prefix + k.inner.TrackingCodeKey()
}
