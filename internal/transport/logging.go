// Package transport はHTTPクライアント共通のRoundTripperを提供する
package transport

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/douhashi/remove-labels/internal/logger"
)

const bodyPreviewLimit = 200

// LoggingRoundTripper はHTTPリクエスト/レスポンスをデバッグログに出力するラウンドトリッパー
type LoggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
	prefix string
}

// NewLogging はbaseをラップしたLoggingRoundTripperを返す
//
// prefixはログメッセージの接頭辞（例: "github_api" → "github_api_request"）。
// baseがnilの場合はhttp.DefaultTransportを使う。
func NewLogging(base http.RoundTripper, log logger.Logger, prefix string) *LoggingRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &LoggingRoundTripper{base: base, logger: log, prefix: prefix}
}

// RoundTrip はHTTPリクエストを実行し、リクエスト/レスポンスの詳細をログ出力する
func (rt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	rt.logRequest(req)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Debug(rt.prefix+"_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	rt.logResponse(req, resp, duration)

	return resp, nil
}

func (rt *LoggingRoundTripper) logRequest(req *http.Request) {
	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
		// ヘッダーの値そのものは出さない
		"authenticated", req.Header.Get("Authorization") != "",
	}

	if ua := req.Header.Get("User-Agent"); ua != "" {
		fields = append(fields, "user_agent", ua)
	}

	rt.logger.Debug(rt.prefix+"_request", fields...)
}

func (rt *LoggingRoundTripper) logResponse(req *http.Request, resp *http.Response, duration time.Duration) {
	fields := []interface{}{
		"method", req.Method,
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		fields = append(fields, "rate_limit_remaining", remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		fields = append(fields, "rate_limit_reset", reset)
	}

	if resp.Body != nil && resp.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			rt.logger.Debug(rt.prefix+"_body_read_failed", "error", err.Error())
			resp.Body = io.NopCloser(bytes.NewReader(nil))
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			preview := string(bodyBytes)
			if len(preview) > bodyPreviewLimit {
				preview = preview[:bodyPreviewLimit] + "..."
			}
			fields = append(fields, "body_preview", preview)
		}
	}

	rt.logger.Debug(rt.prefix+"_response", fields...)
}
