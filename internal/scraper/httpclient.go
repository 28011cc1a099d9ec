package scraper

import (
	"fmt"
	"net/http"
	"time"
)

// clientConfig defines the setup for the page fetching client.
type clientConfig struct {
	Timeout      time.Duration
	MaxRedirects int
	Transport    http.RoundTripper
}

// newHTTPClient builds a client with a bounded timeout and redirect policy.
// A negative MaxRedirects disables redirect following.
func newHTTPClient(cfg clientConfig) *http.Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	c := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	}

	if cfg.MaxRedirects >= 0 {
		c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
			}
			return nil
		}
	} else {
		c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return c
}
