package entity

import "strings"

// MaskMarker is the redaction sequence used when displaying secrets. A value
// that still contains it is a display placeholder, never a real credential.
const MaskMarker = "••••"

// ProviderApollo is the only provider with a live integration; the rest of
// the waterfall is reserved.
const ProviderApollo = "apollo"

// DefaultWaterfall is the provider preference order used until the user
// configures one.
var DefaultWaterfall = []string{"apollo", "contactout", "rocketreach", "hunter"}

// Config is the per-process settings document. It is stored as a singleton
// collection and threaded explicitly into the components that need it.
type Config struct {
	APIKeys        map[string]string `json:"apiKeys"`
	WaterfallOrder []string          `json:"waterfallOrder"`
	SenderEmail    string            `json:"senderEmail"`
	SenderName     string            `json:"senderName"`
}

// DefaultConfig returns a config with empty credentials and the default
// waterfall order.
func DefaultConfig() Config {
	return Config{
		APIKeys:        map[string]string{"apollo": "", "contactout": "", "rocketreach": "", "hunter": ""},
		WaterfallOrder: append([]string(nil), DefaultWaterfall...),
	}
}

// Normalize fills zero-value fields with defaults after loading.
func (c *Config) Normalize() {
	if c.APIKeys == nil {
		c.APIKeys = map[string]string{}
	}
	if len(c.WaterfallOrder) == 0 {
		c.WaterfallOrder = append([]string(nil), DefaultWaterfall...)
	}
}

// HasCredential reports whether any provider key is configured.
func (c *Config) HasCredential() bool {
	for _, v := range c.APIKeys {
		if v != "" {
			return true
		}
	}
	return false
}

// Masked returns a copy safe to return to clients: every non-empty key is
// reduced to its first and last four characters around the mask marker.
func (c *Config) Masked() Config {
	out := *c
	out.APIKeys = make(map[string]string, len(c.APIKeys))
	for k, v := range c.APIKeys {
		out.APIKeys[k] = MaskKey(v)
	}
	return out
}

// MaskKey produces the display form of a secret: first4••••last4, or "" for
// an unset key.
func MaskKey(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 8 {
		return MaskMarker
	}
	return v[:4] + MaskMarker + v[len(v)-4:]
}

// IsMaskedSecret reports whether a submitted value is a display placeholder
// rather than a real credential.
func IsMaskedSecret(v string) bool {
	return strings.Contains(v, MaskMarker)
}
