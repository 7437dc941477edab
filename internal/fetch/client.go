// Package fetch provides the outbound HTTP layer for TechPulse.
//
// Every adapter goes through Client, which enforces a request timeout,
// routes through a forward proxy when one is configured (honoring NO_PROXY
// style bypass rules), and rate-limits requests per host to stay polite
// toward upstream services.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/biglone/techpulse/internal/config"
)

// perHostInterval is the minimum spacing between requests to one host.
const perHostInterval = 500 * time.Millisecond

// perHostBurst allows short bursts against one host.
const perHostBurst = 3

// maxErrorBody caps how much of an error response body is read for messages.
const maxErrorBody = 1024

// Client issues outbound requests with timeout, proxy routing, and
// per-host rate limiting. Safe for concurrent use.
type Client struct {
	http     *http.Client
	bypass   []string // NO_PROXY style rules
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a Client. A zero timeout defaults to 15 seconds.
func NewClient(timeout time.Duration, proxy config.Proxy) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		bypass:   parseBypassRules(proxy.NoProxy),
		limiters: make(map[string]*rate.Limiter),
	}

	transport := &http.Transport{}
	if proxyURL, err := url.Parse(proxy.URL); err == nil && proxy.URL != "" {
		transport.Proxy = func(req *http.Request) (*url.URL, error) {
			if c.shouldBypass(req.URL.Hostname()) {
				return nil, nil
			}
			return proxyURL, nil
		}
	}

	c.http = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	return c
}

// Text performs a GET and returns the response body as a string.
// Any non-2xx status is an error. Never retries.
func (c *Client) Text(ctx context.Context, rawURL string, header http.Header) (string, error) {
	body, err := c.get(ctx, rawURL, header)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// JSON performs a GET and decodes the response body into v.
func (c *Client) JSON(ctx context.Context, rawURL string, header http.Header, v any) error {
	body, err := c.get(ctx, rawURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if err := c.limiter(req.URL.Hostname()).Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch %s: status %d %s", rawURL, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", rawURL, err)
	}
	return body, nil
}

func (c *Client) limiter(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(perHostInterval), perHostBurst)
		c.limiters[host] = l
	}
	return l
}

// shouldBypass reports whether requests to hostname skip the proxy.
// Rules: "*" bypasses everything, ".suffix" matches by suffix, anything
// else matches the exact host or any of its subdomains.
func (c *Client) shouldBypass(hostname string) bool {
	for _, rule := range c.bypass {
		if rule == "*" {
			return true
		}
		if strings.HasPrefix(rule, ".") {
			if strings.HasSuffix(hostname, rule) {
				return true
			}
			continue
		}
		if hostname == rule || strings.HasSuffix(hostname, "."+rule) {
			return true
		}
	}
	return false
}

func parseBypassRules(noProxy string) []string {
	var rules []string
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			rules = append(rules, entry)
		}
	}
	return rules
}
