package github

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	rateLimitRegex   = regexp.MustCompile(`(?i)(rate limit|API rate limit exceeded|secondary rate limit)`)
	notFoundRegex    = regexp.MustCompile(`(?i)(not found|label does not exist)`)
	authRegex        = regexp.MustCompile(`(?i)(unauthorized|bad credentials|requires authentication|resource not accessible)`)
	networkRegex     = regexp.MustCompile(`(?i)(timeout|connection refused|connection reset|no such host|dial tcp)`)
	serverErrorRegex = regexp.MustCompile(`(?i)(internal server error|bad gateway|service unavailable|gateway timeout)`)
	statusCodeRegex  = regexp.MustCompile(`\b([45]\d{2})\b`)
	retryAfterRegex  = regexp.MustCompile(`(?i)retry.?after:?\s*(\d+)`)
)

// ParseError classifies an error from its message text.
func ParseError(message string, err error) *GitHubError {
	ghErr := &GitHubError{
		Message:     strings.TrimSpace(message),
		OriginalErr: err,
	}

	if matches := statusCodeRegex.FindStringSubmatch(message); len(matches) > 1 {
		if statusCode, convErr := strconv.Atoi(matches[1]); convErr == nil {
			ghErr.StatusCode = statusCode
		}
	}

	switch {
	case rateLimitRegex.MatchString(message):
		ghErr.Type = ErrorTypeRateLimit
		if matches := retryAfterRegex.FindStringSubmatch(message); len(matches) > 1 {
			if seconds, convErr := strconv.Atoi(matches[1]); convErr == nil {
				ghErr.RetryAfter = time.Duration(seconds) * time.Second
			}
		}
	case authRegex.MatchString(message):
		ghErr.Type = ErrorTypeAuthentication
	case notFoundRegex.MatchString(message):
		ghErr.Type = ErrorTypeNotFound
	case networkRegex.MatchString(message):
		ghErr.Type = ErrorTypeNetworkTimeout
	case serverErrorRegex.MatchString(message):
		ghErr.Type = ErrorTypeServerError
	default:
		ghErr.Type = typeForStatus(ghErr.StatusCode)
	}

	return ghErr
}
