// Package subscription checks the vendor entitlement endpoint before the step runs.
package subscription

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/douhashi/remove-labels/internal/transport"
)

var (
	// ErrSubscriptionInvalid is returned when the endpoint answers 403.
	// Callers must stop before doing any work.
	ErrSubscriptionInvalid = errors.New("subscription is not valid")
)

const (
	// InvalidMessage is shown to the user when the subscription is rejected.
	InvalidMessage = "Subscription is not valid. Reach out to support@stepsecurity.io"
	// UnreachableMessage is logged when the check could not be completed.
	UnreachableMessage = "Timeout or API not reachable. Continuing to next step."
)

// HTTPClient is the subset of *http.Client used by Checker.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier receives the unreachable notice as a plain workflow log line.
type Notifier interface {
	Info(msg string)
}

// Checker performs a single GET against the subscription endpoint.
type Checker struct {
	client   HTTPClient
	endpoint string
	timeout  time.Duration
	logger   logger.Logger
	notifier Notifier
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithLogger sets the logger used for request tracing and the unreachable notice.
func WithLogger(l logger.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithNotifier sends the unreachable notice to n. The logger then keeps the
// failure detail at debug level.
func WithNotifier(n Notifier) Option {
	return func(c *Checker) {
		c.notifier = n
	}
}

// NewChecker creates a Checker for endpoint that gives up after timeout.
func NewChecker(endpoint string, timeout time.Duration, opts ...Option) *Checker {
	c := &Checker{
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{
			Timeout:   timeout,
			Transport: transport.NewLogging(nil, c.logger, "subscription"),
		}
	}
	return c
}

// Check returns ErrSubscriptionInvalid on HTTP 403 and nil otherwise.
// Timeouts, network errors and other error statuses are logged and ignored.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		c.unreachable("error", err.Error())
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.unreachable("error", err.Error())
		return nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return ErrSubscriptionInvalid
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.logger.Debug("subscription check passed", "status_code", resp.StatusCode)
		return nil
	default:
		c.unreachable("status_code", resp.StatusCode)
		return nil
	}
}

func (c *Checker) unreachable(keysAndValues ...interface{}) {
	if c.notifier == nil {
		c.logger.Info(UnreachableMessage, keysAndValues...)
		return
	}
	c.notifier.Info(UnreachableMessage)
	c.logger.Debug(UnreachableMessage, keysAndValues...)
}
