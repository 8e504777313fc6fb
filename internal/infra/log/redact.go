package logs

import (
	"log/slog"
	"strings"
)

const redactedValue = "***REDACTED***"

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"cookie",
	"authorization",
}

// redact is a slog ReplaceAttr hook. Groups are already walked by the handler,
// so only leaf attributes arrive here.
func redact(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}

	value := a.Value.String()
	if value == "" {
		return a
	}

	if isSensitiveKey(a.Key) || looksLikeJWT(value) {
		return slog.String(a.Key, redactedValue)
	}

	return a
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// looksLikeJWT matches compact JWS: a base64url JSON header and three segments.
func looksLikeJWT(value string) bool {
	return strings.HasPrefix(value, "eyJ") && strings.Count(value, ".") == 2
}
