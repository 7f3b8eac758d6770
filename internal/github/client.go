package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/douhashi/remove-labels/internal/transport"
	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Client はGitHub APIクライアントのラッパー
type Client struct {
	github *github.Client
}

type clientOptions struct {
	baseURL   string
	logger    logger.Logger
	transport http.RoundTripper
}

// ClientOption configures NewClient.
type ClientOption func(*clientOptions)

// WithBaseURL points the client at a GitHub Enterprise Server or test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithLogger enables debug logging of every API round trip.
func WithLogger(l logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithTransport replaces the underlying HTTP transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	// oauth2.Transport はコンテキストに入れたクライアントのTransportをベースにする
	base := &http.Client{Transport: transport.NewLogging(o.transport, o.logger, "github_api")}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)

	gh := github.NewClient(oauth2.NewClient(ctx, ts))

	if o.baseURL != "" && strings.TrimSuffix(o.baseURL, "/") != DefaultAPIURL {
		u, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = u
	}

	return &Client{github: gh}, nil
}

// Issues returns the label operations of the Issues API.
func (c *Client) Issues() LabelService {
	return c.github.Issues
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", raw)
	}
	return u, nil
}
