// Package redact masks secrets before they reach logs or terminal output.
//
// MCP server entries routinely carry bearer tokens in HTTP headers and API
// keys in environment variables; everything printed by install-mcp passes
// through this package first.
package redact

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
	"COOKIE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",    // GitHub personal access token
	"gho_",    // GitHub OAuth token
	"ghu_",    // GitHub user-to-server token
	"ghs_",    // GitHub server-to-server token
	"ghr_",    // GitHub refresh token
	"sk-",     // OpenAI/Anthropic keys
	"AKIA",    // AWS access key prefix
	"xoxb-",   // Slack bot token
	"xoxp-",   // Slack user token
	"Bearer ", // Authorization header values
	"Basic ",
}

// Map masks sensitive values in a header or environment map.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are masked.
// Returns a new map; the input is not modified.
func Map(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}

	masked := make(map[string]string, len(m))
	for k, v := range m {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// URL redacts credentials from URLs.
// URLs with embedded credentials (user:pass@host) become (user:****@host),
// and query parameters whose names look secret (token, api_key) are masked.
// If the URL cannot be parsed, it is returned unchanged.
func URL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	changed := false
	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		q := parsed.Query()
		for k, vs := range q {
			if !ShouldMask(k) {
				continue
			}
			for i, v := range vs {
				vs[i] = MaskValue(v)
			}
			changed = true
		}
		if changed {
			parsed.RawQuery = q.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
// This catches cases where the key name doesn't indicate sensitivity but the value
// is clearly a token (e.g., "X_VAR=ghp_abc123").
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// HeaderArg masks the value part of a "Name: Value" header argument.
func HeaderArg(arg string) string {
	name, value, found := strings.Cut(arg, ":")
	if !found {
		return arg
	}
	value = strings.TrimSpace(value)
	if ShouldMask(name) || ContainsTokenPrefix(value) {
		return name + ": " + MaskValue(value)
	}
	return arg
}
