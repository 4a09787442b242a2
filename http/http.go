package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kabils0918/CryptoTracker/config"
	"github.com/sirupsen/logrus"
)

type Client struct {
	StdClient *http.Client
	UserAgent string
}

func New(cfg *config.Config) *Client {
	stdClient := &http.Client{}
	if cfg.WaitTimeout != 0 {
		logrus.Debugf("HTTP request timeout is set to %s", cfg.WaitTimeout)
		stdClient.Timeout = cfg.WaitTimeout
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			logrus.Warnf("Failed to parse proxy URL: %s, error: %v, using system proxy", cfg.Proxy, err)
		} else {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.Proxy = http.ProxyURL(proxyURL)
			logrus.Debugf("Using proxy %s", cfg.Proxy)
			stdClient.Transport = transport
		}
	}
	return &Client{StdClient: stdClient, UserAgent: cfg.UserAgent}
}

func (c *Client) Get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := c.StdClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("GET %s took %s, %d bytes", rawURL, time.Since(start), len(respBytes))
	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return respBytes, &ResponseError{resp.Status, respBytes}
	}
	return respBytes, nil
}

type ResponseError struct {
	Status string
	Body   []byte
}

func (e *ResponseError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return "HTTP " + e.Status + ", body " + string(body)
}
