// Package redact scrubs sensitive substrings from outbound text before it
// reaches the gateway.
package redact

import "regexp"

const ipPlaceholder = "[REDACTED_IP]"

var ipv4Pattern = regexp.MustCompile(`\b(\d{1,3}\.){3}\d{1,3}\b`)

// Redact replaces every IPv4 dotted-quad with a placeholder. Idempotent.
func Redact(s string) string {
	return ipv4Pattern.ReplaceAllString(s, ipPlaceholder)
}
