package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// classify maps a transport or service error onto the reply taxonomy.
// Structured errors from the client library are matched first; the lower-cased
// substring tables are only a fallback for errors the library does not type.
func classify(err error) errorKind {
	if err == nil {
		return kindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return kindTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return kindInvalidKey
		case http.StatusTooManyRequests:
			return kindQuota
		case http.StatusNotFound:
			return kindModelNotFound
		case http.StatusInternalServerError, http.StatusServiceUnavailable:
			return kindServer
		}
	}

	return classifyByMessage(err.Error())
}

var substringTable = []struct {
	kind    errorKind
	needles []string
}{
	{kindInvalidKey, []string{"api key not valid", "api_key_invalid", "invalid api key", "permission denied", "unauthenticated"}},
	{kindQuota, []string{"quota", "resource_exhausted", "resource has been exhausted", "rate limit", "429"}},
	{kindSafety, []string{"safety", "blocked"}},
	{kindModelNotFound, []string{"is not found", "not found for api version", "404"}},
	{kindServer, []string{"503", "500", "internal error", "temporarily unavailable", "overloaded", "unavailable"}},
	{kindTimeout, []string{"deadline", "timeout", "timed out"}},
}

func classifyByMessage(msg string) errorKind {
	msg = strings.ToLower(msg)
	for _, row := range substringTable {
		for _, needle := range row.needles {
			if strings.Contains(msg, needle) {
				return row.kind
			}
		}
	}
	return kindUnknown
}
