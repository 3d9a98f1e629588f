package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobad-insights/internal/config"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/pkg/workerpool"

	"github.com/gocolly/colly/v2"
	"golang.org/x/sync/errgroup"
)

// Page selectors of the listing site.
const (
	selTotalResults = ".at-facet-header-total-results"
	selListingItem  = "article"
	selListingLink  = "a[href]"
	selListingPay   = "strong"

	selCompany      = "h1.at-header-company-name"
	selTitle        = "h1.at-header-company-jobTitle"
	selLocation     = "li.at-listing__list-icons_location"
	selContractType = "li.at-listing__list-icons_contract-type"
	selWorkType     = "li.at-listing__list-icons_work-type"
	selContent      = "div[class*='listing-content-provider']"
	selIndustry     = "li[class*='TokenItem']"
	selCompanyLink  = "a.at-company-hub-link"
	selHeaderScript = "script#js-section-preloaded-HeaderStepStoneBlock"
	selCompanyMeta  = "li[class*='StyledMetaDataWrapper']"
)

const pageSize = 25

var onlineDate = regexp.MustCompile(`"onlineDate":"(\d{4}-\d{2}-\d{2})`)

var ErrNoListings = errors.New("no job ads found")

// Stepstone collects job ads for a set of search keywords: listing pages
// for links and salaries, detail pages for the ad itself and company pages
// for the company size.
type Stepstone struct {
	baseURL     string
	allowedHost string
	pages       int
	workers     int
	cookies     []*http.Cookie
	logger      *log.Logger
}

func NewStepstone(cfg config.ScraperConfig, logger *log.Logger) *Stepstone {
	if logger == nil {
		logger = log.Default()
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Stepstone{
		baseURL:     base,
		allowedHost: hostFromBaseURL(base),
		pages:       max(cfg.Pages, 1),
		workers:     max(cfg.Workers, 1),
		logger:      logger,
	}
}

// SetCookies attaches session cookies to listing requests. Salaries are only
// shown to logged-in users.
func (s *Stepstone) SetCookies(cookies []*http.Cookie) {
	s.cookies = cookies
}

type listing struct {
	link   string
	salary string
}

type detail struct {
	raw         jobad.Raw
	companyLink string
}

// Scrape returns one raw ad per distinct link found for keywords.
// Unreachable detail pages still yield a row carrying only link and salary.
func (s *Stepstone) Scrape(ctx context.Context, keywords []string) ([]jobad.Raw, error) {
	started := time.Now()

	var listings []listing
	seen := map[string]bool{}
	for _, kw := range keywords {
		found, err := s.keywordListings(ctx, kw)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Printf("scraper=stepstone keyword=%q status=error err=%v", kw, err)
			continue
		}
		for _, l := range found {
			if seen[l.link] {
				continue
			}
			seen[l.link] = true
			listings = append(listings, l)
		}
		s.logger.Printf("scraper=stepstone keyword=%q links=%d", kw, len(found))
	}
	if len(listings) == 0 {
		return nil, ErrNoListings
	}

	details := make([]detail, len(listings))
	err := s.fanOut(ctx, len(listings), func(ctx context.Context, i int) error {
		d, err := s.detailPage(ctx, listings[i].link)
		if err != nil {
			// retried once
			d, err = s.detailPage(ctx, listings[i].link)
		}
		if err != nil {
			details[i] = detail{raw: jobad.Raw{Link: listings[i].link}}
			return fmt.Errorf("detail %s: %w", listings[i].link, err)
		}
		details[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	var companyLinks []string
	sizes := map[string]string{}
	for _, d := range details {
		if d.companyLink != "" {
			if _, ok := sizes[d.companyLink]; !ok {
				sizes[d.companyLink] = ""
				companyLinks = append(companyLinks, d.companyLink)
			}
		}
	}
	companySizes := make([]string, len(companyLinks))
	err = s.fanOut(ctx, len(companyLinks), func(ctx context.Context, i int) error {
		size, err := s.companySize(ctx, companyLinks[i])
		companySizes[i] = size
		return err
	})
	if err != nil {
		return nil, err
	}
	for i, link := range companyLinks {
		sizes[link] = companySizes[i]
	}

	out := make([]jobad.Raw, len(listings))
	for i, d := range details {
		r := d.raw
		r.Link = listings[i].link
		r.Salary = listings[i].salary
		r.CompanySize = sizes[d.companyLink]
		out[i] = r
	}
	s.logger.Printf("scraper=stepstone ads=%d companies=%d duration=%s", len(out), len(companyLinks), time.Since(started))
	return out, nil
}

// fanOut runs fn for 0..n-1 on the worker pool. Task errors are logged;
// only cancellation fails the batch.
func (s *Stepstone) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	pool := workerpool.New(s.workers, n)
	results := pool.Run(ctx)
	for i := 0; i < n; i++ {
		pool.Submit(func(ctx context.Context) error { return fn(ctx, i) })
	}
	pool.Close()

	for r := range results {
		if r.Err != nil {
			s.logger.Printf("scraper=stepstone status=error err=%v", r.Err)
		}
	}
	return ctx.Err()
}

func (s *Stepstone) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.AllowedDomains(s.allowedHost))
	c.SetRequestTimeout(requestTimeout)
	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})
	return c
}

func (s *Stepstone) searchURL(keyword string, offset int) string {
	q := url.Values{}
	q.Set("what", strings.ReplaceAll(keyword, "_", " "))
	q.Set("searchOrigin", "Resultlist_top-search")
	if offset > 0 {
		q.Set("of", strconv.Itoa(offset))
	}
	return s.baseURL + "/5/ergebnisliste.html?" + q.Encode()
}

// keywordListings reads the first result page for the total count, then
// fetches the remaining pages up to the configured limit concurrently.
// Listings keep page order.
func (s *Stepstone) keywordListings(ctx context.Context, keyword string) ([]listing, error) {
	first, total, err := s.listingPage(ctx, s.searchURL(keyword, 0))
	if err != nil {
		return nil, err
	}
	pages := min(s.pages, (total+pageSize-1)/pageSize)
	if pages <= 1 {
		return first, nil
	}

	rest := make([][]listing, pages-1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for p := 1; p < pages; p++ {
		g.Go(func() error {
			items, _, err := s.listingPage(gctx, s.searchURL(keyword, p*pageSize))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Printf("scraper=stepstone keyword=%q page=%d status=error err=%v", keyword, p, err)
				return nil
			}
			rest[p-1] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := first
	for _, items := range rest {
		out = append(out, items...)
	}
	return out, nil
}

func (s *Stepstone) listingPage(ctx context.Context, pageURL string) ([]listing, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	c := s.newCollector()
	if len(s.cookies) > 0 {
		if err := c.SetCookies(s.baseURL, s.cookies); err != nil {
			return nil, 0, err
		}
	}

	var items []listing
	total := 0
	c.OnHTML(selTotalResults, func(e *colly.HTMLElement) {
		n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(e.Text), ".", ""))
		if err == nil {
			total = n
		}
	})
	c.OnHTML(selListingItem, func(e *colly.HTMLElement) {
		href := e.ChildAttr(selListingLink, "href")
		if href == "" {
			return
		}
		link := normalizeURL(e.Request.AbsoluteURL(href))
		if link == "" {
			return
		}
		items = append(items, listing{link: link, salary: cleanText(e.ChildText(selListingPay))})
	})

	if err := visit(c, pageURL); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		total = len(items)
	}
	return items, total, nil
}

func (s *Stepstone) detailPage(ctx context.Context, link string) (detail, error) {
	if err := ctx.Err(); err != nil {
		return detail{}, err
	}
	c := s.newCollector()

	var d detail
	var industries []string
	c.OnHTML(selCompany, func(e *colly.HTMLElement) { d.raw.Company = cleanText(e.Text) })
	c.OnHTML(selTitle, func(e *colly.HTMLElement) { d.raw.Title = cleanText(e.Text) })
	c.OnHTML(selLocation, func(e *colly.HTMLElement) { d.raw.Location = cleanText(e.Text) })
	c.OnHTML(selContractType, func(e *colly.HTMLElement) { d.raw.ContractType = cleanText(e.Text) })
	c.OnHTML(selWorkType, func(e *colly.HTMLElement) { d.raw.WorkType = cleanText(e.Text) })
	c.OnHTML(selContent, func(e *colly.HTMLElement) {
		if d.raw.Content == "" {
			d.raw.Content = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(selIndustry, func(e *colly.HTMLElement) { industries = append(industries, cleanText(e.Text)) })
	c.OnHTML(selCompanyLink, func(e *colly.HTMLElement) {
		if d.companyLink == "" {
			d.companyLink = normalizeURL(e.Request.AbsoluteURL(e.Attr("href")))
		}
	})
	c.OnHTML(selHeaderScript, func(e *colly.HTMLElement) {
		if m := onlineDate.FindStringSubmatch(e.Text); m != nil {
			d.raw.ReleaseDate = m[1]
		}
	})

	if err := visit(c, link); err != nil {
		return detail{}, err
	}
	d.raw.Industry = strings.Join(industries, "|")
	return d, nil
}

// companySize reads the second meta entry of a company page. Entries that
// are links (the company website) are not sizes.
func (s *Stepstone) companySize(ctx context.Context, link string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := s.newCollector()

	var meta []string
	c.OnHTML(selCompanyMeta, func(e *colly.HTMLElement) { meta = append(meta, cleanText(e.Text)) })
	if err := visit(c, link); err != nil {
		return "", err
	}
	if len(meta) > 1 && !strings.Contains(meta[1], "http") {
		return meta[1], nil
	}
	return "", nil
}
