package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/go-github/v67/github"
)

// GitHubErrorType represents the type of GitHub API error
type GitHubErrorType int

const (
	// ErrorTypeRateLimit indicates rate limit exceeded
	ErrorTypeRateLimit GitHubErrorType = iota
	// ErrorTypeNetworkTimeout indicates network timeout
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication indicates authentication or permission failure
	ErrorTypeAuthentication
	// ErrorTypeNotFound indicates the issue, repository or label was not found
	ErrorTypeNotFound
	// ErrorTypeServerError indicates server error (5xx)
	ErrorTypeServerError
	// ErrorTypeUnknown indicates unknown error type
	ErrorTypeUnknown
)

// String returns the string representation of the error type
func (t GitHubErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// GitHubError represents a classified GitHub API error.
//
// Classification is descriptive only: every type is handled the same way by LabelRemover.
type GitHubError struct {
	Type        GitHubErrorType
	StatusCode  int
	Message     string
	RetryAfter  time.Duration
	OriginalErr error
}

// Error implements the error interface
func (e *GitHubError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("GitHub API error [%s]: %s (original: %v)", e.Type, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

// Unwrap returns the original error
func (e *GitHubError) Unwrap() error {
	return e.OriginalErr
}

// ClassifyError maps an error returned by go-github onto a GitHubError.
// Errors that carry no HTTP response are classified from their message.
func ClassifyError(err error) *GitHubError {
	if err == nil {
		return nil
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusOf(rateErr.Response),
			Message:     rateErr.Message,
			RetryAfter:  time.Until(rateErr.Rate.Reset.Time),
			OriginalErr: err,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		classified := &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusOf(abuseErr.Response),
			Message:     abuseErr.Message,
			OriginalErr: err,
		}
		if abuseErr.RetryAfter != nil {
			classified.RetryAfter = *abuseErr.RetryAfter
		}
		return classified
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := statusOf(respErr.Response)
		return &GitHubError{
			Type:        typeForStatus(status),
			StatusCode:  status,
			Message:     respErr.Message,
			OriginalErr: err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &GitHubError{Type: ErrorTypeNetworkTimeout, Message: err.Error(), OriginalErr: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &GitHubError{Type: ErrorTypeNetworkTimeout, Message: err.Error(), OriginalErr: err}
	}

	return ParseError(err.Error(), err)
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func typeForStatus(status int) GitHubErrorType {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound, status == http.StatusGone:
		return ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status >= 500 && status < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
