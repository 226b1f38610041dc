package logger

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const bodySnippetLimit = 512

// RoundTripper logs every outbound provider request to a zap logger.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger) *RoundTripper {
	return &RoundTripper{
		Logger: logger,
		Proxy:  http.DefaultTransport,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", redactedURL(req)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		l.Logger.Error("failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", redactedURL(req)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	snippet := bodyBytes
	if len(snippet) > bodySnippetLimit {
		snippet = snippet[:bodySnippetLimit]
	}

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", redactedURL(req)),
		zap.ByteString("body_snipped", snippet),
		zap.Int("body_size", len(bodyBytes)),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// redactedURL drops userinfo so basic-auth credentials never reach the log.
func redactedURL(req *http.Request) string {
	u := *req.URL
	u.User = nil
	return u.String()
}
