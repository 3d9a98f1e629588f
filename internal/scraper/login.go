package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const loginPath = "/candidate/login?login_source=Homepage_top-login&intcid=Button_Homepage-navigation_login"

// LoginCookies signs in with a headless browser and returns the session
// cookies for later plain HTTP requests.
func LoginCookies(ctx context.Context, baseURL, email, password string) ([]*http.Cookie, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("login: missing credentials")
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 45*time.Second)
	defer reqCancel()

	var cookies []*network.Cookie
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(base+loginPath),
		chromedp.WaitVisible("#ccmgt_explicit_accept", chromedp.ByQuery),
		chromedp.Click("#ccmgt_explicit_accept", chromedp.ByQuery),
		chromedp.SendKeys("input[name='email']", email, chromedp.ByQuery),
		chromedp.SendKeys("input[name='password']", password, chromedp.ByQuery),
		chromedp.Click("input[name='rememberMe']", chromedp.ByQuery),
		chromedp.Click("button[type='submit']", chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return httpCookies(cookies), nil
}

func httpCookies(in []*network.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(in))
	for _, c := range in {
		if c == nil || c.Name == "" {
			continue
		}
		hc := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			hc.Expires = time.Unix(int64(c.Expires), 0).UTC()
		}
		out = append(out, hc)
	}
	return out
}
