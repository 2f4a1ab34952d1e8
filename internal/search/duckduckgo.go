package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/util"
)

// DuckDuckGo queries the DuckDuckGo HTML endpoint and parses the result
// page. No API key is required; requests are rate limited and checked
// against robots.txt.
type DuckDuckGo struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
	robots     *util.RobotsChecker // nil disables the robots check
}

// DuckDuckGoOptions configures the search client
type DuckDuckGoOptions struct {
	BaseURL           string // override for testing; default https://html.duckduckgo.com
	Timeout           time.Duration
	UserAgent         string
	MaxBodyBytes      int64
	RequestsPerSecond float64
	BurstSize         int
	RespectRobots     bool
}

// NewDuckDuckGo creates a new DuckDuckGo search client
func NewDuckDuckGo(opts DuckDuckGoOptions) *DuckDuckGo {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://html.duckduckgo.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 2_000_000
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.BurstSize <= 0 {
		opts.BurstSize = 3
	}

	var robots *util.RobotsChecker
	if opts.RespectRobots {
		robots = util.NewRobotsChecker(opts.UserAgent, opts.Timeout)
	}

	return &DuckDuckGo{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBodyBytes,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.BurstSize),
		robots:     robots,
	}
}

// Search retrieves up to maxResults documents for the query
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	searchURL := fmt.Sprintf("%s/html/?q=%s", d.baseURL, url.QueryEscape(query))

	if d.robots != nil && !d.robots.IsAllowed(ctx, searchURL) {
		return nil, fmt.Errorf("search endpoint disallowed by robots.txt")
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	results, err := parseResults(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// parseResults extracts search results from the DuckDuckGo HTML page. Each
// result block carries a result__a anchor (title + redirect link) and a
// result__snippet element.
func parseResults(page string) ([]model.SearchResult, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var results []model.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "result__body") {
			if r, ok := parseResultBlock(n); ok {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

// parseResultBlock extracts one result from a result__body subtree
func parseResultBlock(block *html.Node) (model.SearchResult, bool) {
	var r model.SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				r.Title = strings.TrimSpace(textContent(n))
				r.Href = resolveRedirect(attr(n, "href"))
			case hasClass(n, "result__snippet"):
				r.Body = strings.TrimSpace(textContent(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(block)

	return r, r.Title != ""
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
