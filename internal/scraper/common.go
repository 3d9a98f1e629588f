package scraper

import (
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	defaultBaseURL = "https://www.stepstone.de"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	requestTimeout = 10 * time.Second
)

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept-Language": "de-DE,de;q=0.9,en;q=0.8",
	}
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "www.stepstone.de"
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// normalizeURL drops fragments so the same ad reached from two listing
// pages collapses to one link.
func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	return u
}

// cleanText collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// visit runs one synchronous colly request and reports the first error.
func visit(c *colly.Collector, target string) error {
	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		if reqErr == nil {
			reqErr = err
		}
	})
	if err := c.Visit(target); err != nil {
		return err
	}
	c.Wait()
	return reqErr
}
